// Package toolchain locates the native Windows build toolchain: a Visual
// Studio installation, the MSVC compiler (cl) and CMake. Probing is a plain
// ordered scan over known install paths; nothing is cached across runs.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Info holds the detected toolchain identity
type Info struct {
	// InstallPath is the Visual Studio install directory, empty when no
	// known install was found (not an error by itself)
	InstallPath string

	// Compiler is the compiler executable name
	Compiler string

	// Version is the detected compiler version, "unknown" when undetectable
	Version string
}

// Found reports whether a Visual Studio installation was located
func (i Info) Found() bool {
	return i.InstallPath != ""
}

// Label returns the toolchain identity used in build directory names,
// e.g. "cl-19.38.33130" or "cl-2022"
func (i Info) Label() string {
	return fmt.Sprintf("%s-%s", i.Compiler, i.Version)
}

// DefaultInstallCandidates is the ordered list of known Visual Studio
// install directories; the first existing one wins.
var DefaultInstallCandidates = []string{
	`C:\Program Files\Microsoft Visual Studio\2022\Community`,
	`C:\Program Files\Microsoft Visual Studio\2022\Professional`,
	`C:\Program Files\Microsoft Visual Studio\2022\Enterprise`,
	`C:\Program Files (x86)\Microsoft Visual Studio\2022\Community`,
	`C:\Program Files\Microsoft Visual Studio\2019\Community`,
	`C:\Program Files\Microsoft Visual Studio\2019\Professional`,
}

// versionPattern matches the version in the cl banner, e.g.
// "Microsoft (R) C/C++ Optimizing Compiler Version 19.38.33130 for x64"
var versionPattern = regexp.MustCompile(`Version (\d+\.\d+\.\d+)`)

// Locator probes the filesystem and PATH for the toolchain.
// The probe functions are injectable for tests and default to the real ones.
type Locator struct {
	Candidates []string

	pathExists     func(string) bool
	lookPath       func(string) (string, error)
	combinedOutput func(name string, args ...string) ([]byte, error)
}

// NewLocator creates a Locator probing the default install candidates
func NewLocator() *Locator {
	return &Locator{
		Candidates: DefaultInstallCandidates,
		pathExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		lookPath: exec.LookPath,
		combinedOutput: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		},
	}
}

// FindInstall returns the first existing candidate install directory,
// or "" when none exists
func (l *Locator) FindInstall() string {
	for _, candidate := range l.Candidates {
		if l.pathExists(candidate) {
			return candidate
		}
	}
	return ""
}

// CompilerAvailable reports whether cl can be invoked at all. This is
// distinct from version extraction: cl exits non-zero when run without
// arguments but still counts as available.
func (l *Locator) CompilerAvailable() bool {
	_, err := l.lookPath("cl")
	return err == nil
}

// CMakeAvailable reports whether cmake runs successfully
func (l *Locator) CMakeAvailable() bool {
	_, err := l.combinedOutput("cmake", "--version")
	return err == nil
}

// Locate probes for the toolchain and returns its identity.
// Absence of any install is an empty result, not an error.
func (l *Locator) Locate() Info {
	install := l.FindInstall()
	return Info{
		InstallPath: install,
		Compiler:    "cl",
		Version:     l.compilerVersion(install),
	}
}

// compilerVersion asks cl for its banner and extracts the version. The
// banner goes to stderr and cl exits non-zero without arguments, so the
// output is parsed regardless of exit status. When cl cannot be invoked,
// the version is inferred from the install path's year, else "unknown".
func (l *Locator) compilerVersion(installPath string) string {
	out, _ := l.combinedOutput("cl")
	if match := versionPattern.FindSubmatch(out); match != nil {
		return string(match[1])
	}

	switch {
	case strings.Contains(installPath, "2022"):
		return "2022"
	case strings.Contains(installPath, "2019"):
		return "2019"
	}
	return "unknown"
}
