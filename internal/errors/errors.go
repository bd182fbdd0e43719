package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Toolchain/environment errors (TOOL-001 to TOOL-099)
	ErrCodeCompilerEnvMissing ErrorCode = "TOOL-001"
	ErrCodeCMakeMissing       ErrorCode = "TOOL-002"
	ErrCodeFormatterMissing   ErrorCode = "TOOL-003"

	// Build pipeline errors (BUILD-001 to BUILD-099)
	ErrCodeConfigureFailed ErrorCode = "BUILD-001"
	ErrCodeCompileFailed   ErrorCode = "BUILD-002"
	ErrCodeTestsFailed     ErrorCode = "BUILD-003"
	ErrCodeBuildDirFailed  ErrorCode = "BUILD-004"

	// Formatting errors (FMT-001 to FMT-099)
	ErrCodeUnsupportedFileType ErrorCode = "FMT-001"
	ErrCodeFormatFileFailed    ErrorCode = "FMT-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeTargetNotFound  ErrorCode = "IO-001"
	ErrCodeConfigUnmarshal ErrorCode = "IO-002"
)

// VneError represents an enhanced error with code, suggestions, and documentation
type VneError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *VneError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *VneError) Unwrap() error {
	return e.Cause
}

// New creates a new VneError
func New(code ErrorCode, message string) *VneError {
	return &VneError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new VneError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *VneError {
	return &VneError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *VneError) WithSuggestion(suggestion string) *VneError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *VneError) WithSuggestions(suggestions ...string) *VneError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *VneError) WithDocs(url string) *VneError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewCompilerEnvMissingError reports that cl is not invocable from this shell.
// The install path, when known, is used to point at the matching VsDevCmd.bat.
func NewCompilerEnvMissingError(installPath string) *VneError {
	err := New(ErrCodeCompilerEnvMissing, "Visual Studio compiler (cl) is not available in this environment")
	if installPath != "" {
		err = err.
			WithSuggestion(fmt.Sprintf("Found Visual Studio at: %s", installPath)).
			WithSuggestion("Run this command from a Visual Studio Developer Command Prompt").
			WithSuggestion(fmt.Sprintf("Or initialize the environment with: %s\\Common7\\Tools\\VsDevCmd.bat", installPath))
	} else {
		err = err.
			WithSuggestion("Install Visual Studio 2019 or 2022 with the C++ workload").
			WithSuggestion("Run this command from a Visual Studio Developer Command Prompt")
	}
	return err
}

// NewCMakeMissingError creates a cmake-not-found error
func NewCMakeMissingError() *VneError {
	return New(ErrCodeCMakeMissing, "CMake not found in PATH").
		WithSuggestion("Install CMake from https://cmake.org/download/").
		WithSuggestion("Run 'cmake --version' to verify the installation")
}

// NewFormatterMissingError creates a clang-format-not-found error
func NewFormatterMissingError() *VneError {
	return New(ErrCodeFormatterMissing, "clang-format not found").
		WithSuggestion("Ubuntu/Debian: sudo apt install clang-format").
		WithSuggestion("macOS: brew install clang-format").
		WithSuggestion("Windows: install LLVM from https://releases.llvm.org/")
}

// NewTargetNotFoundError creates a missing target path error
func NewTargetNotFoundError(path string) *VneError {
	return New(ErrCodeTargetNotFound, fmt.Sprintf("target not found: %s", path)).
		WithSuggestion("Check that the path exists and is spelled correctly")
}

// NewUnsupportedFileTypeError creates an unsupported extension error
func NewUnsupportedFileTypeError(path string, supported []string) *VneError {
	return New(ErrCodeUnsupportedFileType, fmt.Sprintf("%s is not a supported source file type", path)).
		WithSuggestion("Supported extensions: " + strings.Join(supported, ", "))
}
