// Package format orchestrates the external code formatter over a
// discovered set of source files. Files are processed one at a time in
// discovery order; the first failure halts the remaining batch.
package format

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/vertexnova/vnekit/internal/log"
)

// Options controls one formatting run
type Options struct {
	// DryRun reports the intended work without touching any file
	DryRun bool
}

// Runner drives the formatter over a file set
type Runner struct {
	Tool   Tool
	Logger *log.Logger
	Out    io.Writer
}

// Run formats the given files in order. An empty set succeeds trivially;
// a dry run reports the count and stops; the formatter is verified before
// any file is touched. The first per-file failure is returned immediately,
// leaving the remaining files unprocessed.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) error {
	if len(files) == 0 {
		fmt.Fprintln(r.Out, "No source files found to format.")
		return nil
	}

	fmt.Fprintf(r.Out, "Found %d source files to format.\n", len(files))

	if opts.DryRun {
		fmt.Fprintln(r.Out, "DRY RUN - No files will be modified.")
		return nil
	}

	if err := r.Tool.Check(); err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintf(r.Out, "Formatting: %s\n", file)

		before, hashErr := hashFile(file)

		if err := r.Tool.Format(ctx, file); err != nil {
			fmt.Fprintf(r.Out, "  ✗ Error formatting %s\n", file)
			r.Logger.WithError(err).Error("formatting failed", "file", file)
			return err
		}

		if hashErr == nil {
			if after, err := hashFile(file); err == nil && after == before {
				fmt.Fprintln(r.Out, "  ✓ Already formatted")
				continue
			}
		}
		fmt.Fprintln(r.Out, "  ✓ Formatted successfully")
	}

	return nil
}

// hashFile computes the blake3 digest of a file, used to tell rewritten
// files apart from ones clang-format left byte-identical
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	hasher := blake3.New()
	if _, err := hasher.Write(data); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
