package format

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vertexnova/vnekit/internal/errors"
)

// Tool is the external formatter invoked per file in in-place-edit mode
type Tool interface {
	// Check verifies the formatter is invocable at all
	Check() error

	// Format rewrites one file in place
	Format(ctx context.Context, file string) error
}

type clangFormat struct {
	fallbackStyle string

	combinedOutput func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewClangFormat returns a Tool backed by clang-format. A project
// .clang-format file takes precedence (--style=file); fallbackStyle is the
// named built-in style used when none is present.
func NewClangFormat(fallbackStyle string) Tool {
	return &clangFormat{
		fallbackStyle: fallbackStyle,
		combinedOutput: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

func (c *clangFormat) Check() error {
	if _, err := c.combinedOutput(context.Background(), "clang-format", "--version"); err != nil {
		return errors.NewFormatterMissingError()
	}
	return nil
}

func (c *clangFormat) Format(ctx context.Context, file string) error {
	args := []string{"-i", "--style=file", "--fallback-style=" + c.fallbackStyle, file}
	out, err := c.combinedOutput(ctx, "clang-format", args...)
	if err != nil {
		cause := err
		if diag := strings.TrimSpace(string(out)); diag != "" {
			cause = fmt.Errorf("%w: %s", err, diag)
		}
		return errors.Wrap(errors.ErrCodeFormatFileFailed, "formatting "+file, cause)
	}
	return nil
}
