package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vertexnova/vnekit/internal/config"
	"github.com/vertexnova/vnekit/internal/format"
	"github.com/vertexnova/vnekit/internal/toolchain"
)

var doctorHeadingStyle = lipgloss.NewStyle().Bold(true)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required external tools are available",
	Long: `Check the local environment for everything the build and format
commands need: a Visual Studio installation, the MSVC compiler (cl),
CMake, clang-format, and the project style file. Each check is
reported individually; the command exits non-zero when any fails.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	fileCfg, err := config.Load(projectRoot)
	if err != nil {
		return err
	}

	locator := toolchain.NewLocator()
	failures := 0

	fmt.Fprintln(out, doctorHeadingStyle.Render("Build toolchain"))

	if install := locator.FindInstall(); install != "" {
		reportOK(out, "Visual Studio install: %s", install)
	} else {
		failures++
		reportFail(out, "no Visual Studio installation found in the known locations")
	}

	if locator.CompilerAvailable() {
		tc := locator.Locate()
		reportOK(out, "cl available (version %s)", tc.Version)
	} else {
		failures++
		reportFail(out, "cl not found on PATH; run from a Developer Command Prompt")
	}

	if locator.CMakeAvailable() {
		reportOK(out, "cmake available")
	} else {
		failures++
		reportFail(out, "cmake not found on PATH")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, doctorHeadingStyle.Render("Formatting"))

	tool := format.NewClangFormat(fileCfg.Format.FallbackStyle)
	if err := tool.Check(); err == nil {
		reportOK(out, "clang-format available")
	} else {
		failures++
		reportFail(out, "clang-format not found on PATH")
	}

	styleFile := filepath.Join(projectRoot, ".clang-format")
	if _, err := os.Stat(styleFile); err == nil {
		reportOK(out, ".clang-format present at %s", styleFile)
	} else {
		// Fallback style keeps formatting working, so this is informational
		reportOK(out, "no .clang-format, fallback style %q will be used", fileCfg.Format.FallbackStyle)
	}

	fmt.Fprintln(out)
	if failures > 0 {
		return fmt.Errorf("%d environment check(s) failed", failures)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

func reportOK(out io.Writer, msg string, args ...any) {
	fmt.Fprintf(out, "  ✓ "+msg+"\n", args...)
}

func reportFail(out io.Writer, msg string, args ...any) {
	fmt.Fprintf(out, "  ✗ "+msg+"\n", args...)
}
