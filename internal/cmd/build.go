package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vertexnova/vnekit/internal/config"
	"github.com/vertexnova/vnekit/internal/errors"
	"github.com/vertexnova/vnekit/internal/log"
	"github.com/vertexnova/vnekit/internal/pipeline"
	"github.com/vertexnova/vnekit/internal/toolchain"
	"github.com/vertexnova/vnekit/internal/tui"
)

var (
	buildTypeFlag   string
	actionFlag      string
	jobsFlag        int
	cleanFlag       bool
	interactiveFlag bool
)

var buildCmd = &cobra.Command{
	Use:   "build [project-root]",
	Short: "Build the project with Visual Studio and CMake",
	Long: `Build the project for Windows: locate the Visual Studio toolchain,
configure with CMake, compile, and optionally run the tests with ctest.

Stages run strictly in order and the first configure or compile failure
aborts the run. Test failures are reported as warnings and do not fail
the build. Defaults can be set in .vnekit.yaml at the project root;
flags override the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildTypeFlag, "build-type", "t", "", "CMake build type: Debug, Release, RelWithDebInfo, MinSizeRel")
	buildCmd.Flags().StringVarP(&actionFlag, "action", "a", "", "action: configure, build, configure_and_build, test")
	buildCmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 0, "number of parallel build jobs")
	buildCmd.Flags().BoolVar(&cleanFlag, "clean", false, "remove the build directory before configuring")
	buildCmd.Flags().BoolVar(&interactiveFlag, "interactive", false, "prompt for the build configuration first")

	rootCmd.AddCommand(buildCmd)
}

// buildFlags carries the flag values plus whether each was set explicitly,
// so file-configured defaults are only overridden by flags actually given
type buildFlags struct {
	buildType    string
	buildTypeSet bool
	action       string
	actionSet    bool
	jobs         int
	jobsSet      bool
	clean        bool
	interactive  bool
}

// assembleBuildConfig layers the pipeline configuration: built-in defaults,
// then .vnekit.yaml, then explicit flags
func assembleBuildConfig(fileCfg *config.Config, f buildFlags) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	if fileCfg.Build.Type != "" {
		cfg.BuildType = pipeline.BuildType(fileCfg.Build.Type)
	}
	if fileCfg.Build.Jobs > 0 {
		cfg.Jobs = fileCfg.Build.Jobs
	}
	if fileCfg.Build.Generator != "" {
		cfg.Generator = fileCfg.Build.Generator
	}
	if fileCfg.Build.Architecture != "" {
		cfg.Architecture = fileCfg.Build.Architecture
	}
	if fileCfg.Build.Tests != nil {
		cfg.Tests = *fileCfg.Build.Tests
	}

	if f.buildTypeSet {
		bt, err := pipeline.ParseBuildType(f.buildType)
		if err != nil {
			return cfg, err
		}
		cfg.BuildType = bt
	}
	if f.actionSet {
		action, err := pipeline.ParseAction(f.action)
		if err != nil {
			return cfg, err
		}
		cfg.Action = action
	}
	if f.jobsSet {
		cfg.Jobs = f.jobs
	}
	cfg.Clean = f.clean
	cfg.Interactive = f.interactive

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := log.DefaultLogger()
	out := cmd.OutOrStdout()

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		projectRoot = args[0]
	}
	if projectRoot, err = filepath.Abs(projectRoot); err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	fileCfg, err := config.Load(projectRoot)
	if err != nil {
		return err
	}

	cfg, err := assembleBuildConfig(fileCfg, buildFlags{
		buildType:    buildTypeFlag,
		buildTypeSet: cmd.Flags().Changed("build-type"),
		action:       actionFlag,
		actionSet:    cmd.Flags().Changed("action"),
		jobs:         jobsFlag,
		jobsSet:      cmd.Flags().Changed("jobs"),
		clean:        cleanFlag,
		interactive:  interactiveFlag,
	})
	if err != nil {
		return err
	}

	if cfg.Interactive {
		adjusted, confirmed, err := tui.ConfigureBuild(cfg)
		if err != nil {
			return err
		}
		if !confirmed {
			// Deliberate cancellation, not an error
			fmt.Fprintln(out, "Build cancelled.")
			return nil
		}
		cfg = adjusted
	}

	locator := toolchain.NewLocator()
	if !locator.CompilerAvailable() {
		return errors.NewCompilerEnvMissingError(locator.FindInstall())
	}
	if !locator.CMakeAvailable() {
		return errors.NewCMakeMissingError()
	}

	tc := locator.Locate()
	fmt.Fprintf(out, "Windows :: %s\n", tc.Label())
	logger.Debug("toolchain located",
		"install_path", tc.InstallPath,
		"compiler", tc.Compiler,
		"version", tc.Version)

	p := &pipeline.Pipeline{
		Config:      cfg,
		ProjectRoot: projectRoot,
		BuildDir:    pipeline.BuildDirFor(projectRoot, cfg.BuildType, tc),
		Toolchain:   tc,
		Runner:      pipeline.NewRunner(),
		Logger:      logger,
		Out:         out,
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Build completed successfully ===")
	fmt.Fprintf(out, "Build directory: %s\n", result.BuildDir)
	return nil
}
