package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vertexnova/vnekit/internal/log"
)

var (
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "vnekit",
	Short: "Developer tooling for the VneTemplate C++ project",
	Long: `vnekit drives the day-to-day developer workflows of the VneTemplate
C++ project: building with the Visual Studio toolchain and CMake, and
formatting sources with clang-format. It orchestrates those external
tools and reports their exit status; it does not replace them.`,
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format (text or json)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg := log.DefaultConfig()
		if verbose {
			cfg.Level = log.LevelDebug
		}
		cfg.Format = log.ParseFormat(logFormat)
		log.SetDefaultLogger(log.New(cfg))
	}
}
