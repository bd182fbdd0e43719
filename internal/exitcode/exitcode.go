package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/vertexnova/vnekit/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution (including deliberate cancellation)
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// EnvironmentError indicates a required external tool is missing
	EnvironmentError = 3

	// BuildError indicates a configure or compile stage failure
	BuildError = 4

	// FormatError indicates a formatting failure
	FormatError = 5

	// Interrupted indicates the run was interrupted by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var vneErr *errors.VneError
	if stderrors.As(err, &vneErr) {
		switch {
		case strings.HasPrefix(string(vneErr.Code), "TOOL-"):
			return EnvironmentError
		case strings.HasPrefix(string(vneErr.Code), "BUILD-"):
			return BuildError
		case strings.HasPrefix(string(vneErr.Code), "FMT-"):
			return FormatError
		case strings.HasPrefix(string(vneErr.Code), "IO-"):
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case EnvironmentError:
		return "Required external tool missing"
	case BuildError:
		return "Build stage failed"
	case FormatError:
		return "Formatting failed"
	case Interrupted:
		return "Interrupted by signal"
	default:
		return "Unknown error"
	}
}
