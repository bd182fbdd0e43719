package pipeline

import (
	"context"
	"os"
	"os/exec"
)

// Runner invokes an external tool and blocks until it exits. The build
// tools stream their own output, so nothing is captured here; the only
// signal is the exit status.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec that inherits the
// process's stdout and stderr
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
