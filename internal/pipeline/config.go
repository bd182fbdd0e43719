package pipeline

import (
	"fmt"
	"strings"
)

// BuildType is the CMake build type handed to configure and compile
type BuildType string

const (
	Debug          BuildType = "Debug"
	Release        BuildType = "Release"
	RelWithDebInfo BuildType = "RelWithDebInfo"
	MinSizeRel     BuildType = "MinSizeRel"
)

// BuildTypes returns all valid build types in menu order
func BuildTypes() []BuildType {
	return []BuildType{Debug, Release, RelWithDebInfo, MinSizeRel}
}

// ParseBuildType validates a build type string
func ParseBuildType(s string) (BuildType, error) {
	for _, bt := range BuildTypes() {
		if s == string(bt) {
			return bt, nil
		}
	}
	return "", fmt.Errorf("invalid build type %q (valid: %s)", s, joinBuildTypes())
}

func joinBuildTypes() string {
	names := make([]string, 0, len(BuildTypes()))
	for _, bt := range BuildTypes() {
		names = append(names, string(bt))
	}
	return strings.Join(names, ", ")
}

// Action selects which pipeline stages run
type Action string

const (
	ActionConfigure         Action = "configure"
	ActionBuild             Action = "build"
	ActionConfigureAndBuild Action = "configure_and_build"
	ActionTest              Action = "test"
)

// Actions returns all valid actions
func Actions() []Action {
	return []Action{ActionConfigure, ActionBuild, ActionConfigureAndBuild, ActionTest}
}

// ParseAction validates an action string
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if s == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid action %q (valid: configure, build, configure_and_build, test)", s)
}

// Stage is a single step of the build pipeline
type Stage string

const (
	StagePrepare   Stage = "prepare"
	StageConfigure Stage = "configure"
	StageCompile   Stage = "compile"
	StageTest      Stage = "test"
)

// Config is the immutable build configuration. It is assembled once from
// flags, the project config file and the optional interactive pre-step,
// then passed unchanged through the pipeline.
type Config struct {
	BuildType   BuildType
	Action      Action
	Jobs        int
	Clean       bool
	Interactive bool

	// Generator and Architecture parameterize the CMake configure call
	Generator    string
	Architecture string

	// Tests toggles the VNE_TEMPLATE_TESTS cache entry
	Tests bool
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		BuildType:    Debug,
		Action:       ActionConfigureAndBuild,
		Jobs:         10,
		Generator:    "Visual Studio 17 2022",
		Architecture: "x64",
		Tests:        true,
	}
}

// Validate checks the configuration for consistency
func (c Config) Validate() error {
	if _, err := ParseBuildType(string(c.BuildType)); err != nil {
		return err
	}
	if _, err := ParseAction(string(c.Action)); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("invalid argument: jobs must be a positive integer, got %d", c.Jobs)
	}
	return nil
}

// Stages returns the stages the configured action runs, in order.
// Every action starts with prepare and configure; test failures later
// in the chain are non-fatal while configure and compile failures abort.
func (c Config) Stages() []Stage {
	stages := []Stage{StagePrepare, StageConfigure}
	switch c.Action {
	case ActionBuild, ActionConfigureAndBuild:
		stages = append(stages, StageCompile)
	case ActionTest:
		stages = append(stages, StageCompile, StageTest)
	}
	return stages
}

// Summary returns the configuration as operator-facing key/value lines
func (c Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Type: %s\n", c.BuildType)
	fmt.Fprintf(&b, "Action: %s\n", c.Action)
	fmt.Fprintf(&b, "Clean: %v\n", c.Clean)
	fmt.Fprintf(&b, "Jobs: %d", c.Jobs)
	return b.String()
}
