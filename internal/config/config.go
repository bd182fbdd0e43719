// Package config loads the optional .vnekit.yaml project configuration.
// Values from the file override built-in defaults; command-line flags
// override both.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vertexnova/vnekit/internal/errors"
)

// FileName is the project configuration file looked up at the project root
const FileName = ".vnekit.yaml"

// Config represents the complete .vnekit.yaml configuration
type Config struct {
	Build  BuildConfig  `yaml:"build,omitempty"`
	Format FormatConfig `yaml:"format,omitempty"`
}

// BuildConfig holds defaults for the build pipeline
type BuildConfig struct {
	// Type is the default CMake build type
	Type string `yaml:"type,omitempty"`

	// Jobs is the default parallel job count handed to the build driver
	Jobs int `yaml:"jobs,omitempty"`

	// Generator is the CMake generator
	Generator string `yaml:"generator,omitempty"`

	// Architecture is the generator platform (-A)
	Architecture string `yaml:"architecture,omitempty"`

	// Tests toggles the VNE_TEMPLATE_TESTS cache entry at configure time
	Tests *bool `yaml:"tests,omitempty"`
}

// FormatConfig holds settings for the formatting pipeline
type FormatConfig struct {
	// FallbackStyle is used when no .clang-format file is present
	FallbackStyle string `yaml:"fallback_style,omitempty"`

	// Exclude adds directory names to the built-in exclusion set
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	tests := true
	return &Config{
		Build: BuildConfig{
			Type:         "Debug",
			Jobs:         10,
			Generator:    "Visual Studio 17 2022",
			Architecture: "x64",
			Tests:        &tests,
		},
		Format: FormatConfig{
			FallbackStyle: "Google",
		},
	}
}

// Load reads .vnekit.yaml from the project root, merged over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(projectRoot string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(projectRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfigUnmarshal, "read config file", err)
	}

	// Expand environment variables in the config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigUnmarshal, "unmarshal "+FileName, err)
	}

	return cfg, nil
}
