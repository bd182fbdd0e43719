// Package tui provides the interactive build configuration pre-step. On a
// terminal it renders huh forms; with piped stdin it falls back to plain
// numbered menus so scripted input keeps working.
package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vertexnova/vnekit/internal/pipeline"
	"github.com/vertexnova/vnekit/internal/ux"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	summaryStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// actionLabels is the interactive action menu. The standalone "build"
// action is flag-only; interactively it folds into configure-and-build.
var actionChoices = []struct {
	label  string
	action pipeline.Action
}{
	{"Configure only", pipeline.ActionConfigure},
	{"Configure and build", pipeline.ActionConfigureAndBuild},
	{"Configure, build, and test", pipeline.ActionTest},
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ConfigureBuild runs the interactive pre-step: prompt for build type,
// action, clean flag and job count with the current values as defaults,
// then show a summary and ask for confirmation. Returns the adjusted
// configuration and whether the operator confirmed; declining is a
// deliberate cancellation, not an error.
func ConfigureBuild(cfg pipeline.Config) (pipeline.Config, bool, error) {
	if IsInteractive() {
		return configureWithForm(cfg)
	}
	adjusted, confirmed := ConfigureWithPrompts(os.Stdin, os.Stdout, cfg)
	return adjusted, confirmed, nil
}

func configureWithForm(cfg pipeline.Config) (pipeline.Config, bool, error) {
	buildType := cfg.BuildType
	action := menuAction(cfg.Action)
	clean := cfg.Clean
	jobs := strconv.Itoa(cfg.Jobs)

	buildTypeOptions := make([]huh.Option[pipeline.BuildType], 0, len(pipeline.BuildTypes()))
	for _, bt := range pipeline.BuildTypes() {
		buildTypeOptions = append(buildTypeOptions, huh.NewOption(string(bt), bt))
	}

	actionOptions := make([]huh.Option[pipeline.Action], 0, len(actionChoices))
	for _, choice := range actionChoices {
		actionOptions = append(actionOptions, huh.NewOption(choice.label, choice.action))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[pipeline.BuildType]().
			Title("Select Build Type").
			Options(buildTypeOptions...).
			Value(&buildType),
		huh.NewSelect[pipeline.Action]().
			Title("Select Action").
			Options(actionOptions...).
			Value(&action),
		huh.NewConfirm().
			Title("Clean build directory before starting?").
			Value(&clean),
		huh.NewInput().
			Title("Number of parallel jobs").
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil || n < 1 {
					return fmt.Errorf("enter a positive integer")
				}
				return nil
			}).
			Value(&jobs),
	))

	if err := form.Run(); err != nil {
		return cfg, false, fmt.Errorf("prompt failed: %w", err)
	}

	cfg.BuildType = buildType
	cfg.Action = action
	cfg.Clean = clean
	if n, err := strconv.Atoi(jobs); err == nil {
		cfg.Jobs = n
	}

	printSummary(os.Stdout, cfg)

	proceed := true
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Proceed?").Value(&proceed),
	))
	if err := confirm.Run(); err != nil {
		return cfg, false, fmt.Errorf("prompt failed: %w", err)
	}

	return cfg, proceed, nil
}

// ConfigureWithPrompts is the plain numbered-menu variant used with piped
// stdin; exported so the flow is testable without a terminal.
func ConfigureWithPrompts(in io.Reader, out io.Writer, cfg pipeline.Config) (pipeline.Config, bool) {
	p := ux.NewPrompter(in, out)

	buildTypes := pipeline.BuildTypes()
	buildTypeNames := make([]string, 0, len(buildTypes))
	defaultBuildType := 0
	for i, bt := range buildTypes {
		buildTypeNames = append(buildTypeNames, string(bt))
		if bt == cfg.BuildType {
			defaultBuildType = i
		}
	}
	cfg.BuildType = buildTypes[p.Select("Select Build Type:", buildTypeNames, defaultBuildType)]

	actionNames := make([]string, 0, len(actionChoices))
	defaultAction := 0
	for i, choice := range actionChoices {
		actionNames = append(actionNames, choice.label)
		if choice.action == menuAction(cfg.Action) {
			defaultAction = i
		}
	}
	cfg.Action = actionChoices[p.Select("Select Action:", actionNames, defaultAction)].action

	cfg.Clean = p.Confirm("Clean build directory before starting?", cfg.Clean)
	cfg.Jobs = p.Int("Number of parallel jobs", cfg.Jobs)

	printSummary(out, cfg)
	return cfg, p.Confirm("Proceed?", true)
}

// menuAction maps the flag-only "build" action onto its menu equivalent
func menuAction(a pipeline.Action) pipeline.Action {
	if a == pipeline.ActionBuild {
		return pipeline.ActionConfigureAndBuild
	}
	return a
}

func printSummary(out io.Writer, cfg pipeline.Config) {
	fmt.Fprintln(out, titleStyle.Render("=== Configuration Summary ==="))
	fmt.Fprintln(out, summaryStyle.Render(cfg.Summary()))
}
