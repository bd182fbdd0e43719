package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertexnova/vnekit/internal/config"
	"github.com/vertexnova/vnekit/internal/pipeline"
)

func TestAssembleBuildConfigDefaults(t *testing.T) {
	cfg, err := assembleBuildConfig(config.Default(), buildFlags{})
	require.NoError(t, err)

	assert.Equal(t, pipeline.Debug, cfg.BuildType)
	assert.Equal(t, pipeline.ActionConfigureAndBuild, cfg.Action)
	assert.Equal(t, 10, cfg.Jobs)
	assert.False(t, cfg.Clean)
	assert.False(t, cfg.Interactive)
}

func TestAssembleBuildConfigFileOverrides(t *testing.T) {
	tests := false
	fileCfg := config.Default()
	fileCfg.Build.Type = "Release"
	fileCfg.Build.Jobs = 4
	fileCfg.Build.Tests = &tests

	cfg, err := assembleBuildConfig(fileCfg, buildFlags{})
	require.NoError(t, err)

	assert.Equal(t, pipeline.Release, cfg.BuildType)
	assert.Equal(t, 4, cfg.Jobs)
	assert.False(t, cfg.Tests)
}

func TestAssembleBuildConfigFlagsWinOverFile(t *testing.T) {
	fileCfg := config.Default()
	fileCfg.Build.Type = "Release"
	fileCfg.Build.Jobs = 4

	cfg, err := assembleBuildConfig(fileCfg, buildFlags{
		buildType:    "MinSizeRel",
		buildTypeSet: true,
		action:       "test",
		actionSet:    true,
		jobs:         2,
		jobsSet:      true,
		clean:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, pipeline.MinSizeRel, cfg.BuildType)
	assert.Equal(t, pipeline.ActionTest, cfg.Action)
	assert.Equal(t, 2, cfg.Jobs)
	assert.True(t, cfg.Clean)
}

func TestAssembleBuildConfigUnsetFlagsDoNotOverride(t *testing.T) {
	// Zero flag values with the Set bits clear must leave file values alone
	fileCfg := config.Default()
	fileCfg.Build.Jobs = 6

	cfg, err := assembleBuildConfig(fileCfg, buildFlags{jobs: 0, jobsSet: false})
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Jobs)
}

func TestAssembleBuildConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		flags buildFlags
	}{
		{"bad build type", buildFlags{buildType: "Fastest", buildTypeSet: true}},
		{"bad action", buildFlags{action: "deploy", actionSet: true}},
		{"zero jobs", buildFlags{jobs: 0, jobsSet: true}},
		{"negative jobs", buildFlags{jobs: -3, jobsSet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assembleBuildConfig(config.Default(), tt.flags)
			assert.Error(t, err)
		})
	}
}
