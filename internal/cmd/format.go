package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vertexnova/vnekit/internal/config"
	"github.com/vertexnova/vnekit/internal/discover"
	"github.com/vertexnova/vnekit/internal/format"
	"github.com/vertexnova/vnekit/internal/log"
)

var (
	fileFlag   string
	dryRunFlag bool
)

var formatCmd = &cobra.Command{
	Use:   "format [folder]",
	Short: "Format C/C++ sources with clang-format",
	Long: `Format C/C++ source files in place using clang-format.

Give either a folder to walk recursively or a single file with --file,
never both. A .clang-format file at the project root takes precedence;
without one the configured fallback style is used.

Examples:
  vnekit format src/vertexnova
  vnekit format src/vertexnova --dry-run
  vnekit format --file src/vertexnova/template/template.cpp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&fileFlag, "file", "", "format a single file instead of a folder")
	formatCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "report what would be formatted without changing anything")

	rootCmd.AddCommand(formatCmd)
}

// validateFormatTarget enforces the folder-XOR-file contract
func validateFormatTarget(args []string, file string) error {
	if len(args) == 0 && file == "" {
		return fmt.Errorf("invalid argument: specify a folder or --file")
	}
	if len(args) > 0 && file != "" {
		return fmt.Errorf("invalid argument: a folder and --file are mutually exclusive")
	}
	return nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := log.DefaultLogger()
	out := cmd.OutOrStdout()

	if err := validateFormatTarget(args, fileFlag); err != nil {
		return err
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	fileCfg, err := config.Load(projectRoot)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "VneTemplate Clang Formatter")
	fmt.Fprintln(out, "========================================")

	styleFile := filepath.Join(projectRoot, ".clang-format")
	if _, err := os.Stat(styleFile); err == nil {
		fmt.Fprintf(out, "Style file: %s\n", styleFile)
	} else {
		logger.Warn("no .clang-format found, using fallback style",
			"style", fileCfg.Format.FallbackStyle)
	}
	fmt.Fprintln(out)

	var files []string
	if fileFlag != "" {
		files, err = discover.Single(fileFlag)
	} else {
		files, err = discover.Walk(args[0], fileCfg.Format.Exclude)
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(out, "Source files found:")
		for _, file := range files {
			fmt.Fprintf(out, "  %s\n", file)
		}
		fmt.Fprintln(out)
	}

	runner := &format.Runner{
		Tool:   format.NewClangFormat(fileCfg.Format.FallbackStyle),
		Logger: logger,
		Out:    out,
	}

	if err := runner.Run(cmd.Context(), files, format.Options{DryRun: dryRunFlag}); err != nil {
		fmt.Fprintln(out, "\n✗ Formatting failed!")
		return err
	}

	fmt.Fprintln(out, "\n✓ Formatting completed successfully!")
	return nil
}
