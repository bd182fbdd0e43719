package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vertexnova/vnekit/internal/toolchain"
)

// ManifestName is the run manifest written into the build directory
const ManifestName = "vnekit-run.json"

// StageRecord is one stage entry in the run manifest
type StageRecord struct {
	Stage    string `json:"stage"`
	Duration string `json:"duration"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// ToolchainRecord captures the toolchain identity of a run
type ToolchainRecord struct {
	InstallPath string `json:"install_path,omitempty"`
	Compiler    string `json:"compiler"`
	Version     string `json:"version"`
}

// RunManifest records one build run for later inspection. It lives inside
// the build directory alongside the generated build files.
type RunManifest struct {
	RunID       string          `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	BuildType   string          `json:"build_type"`
	Action      string          `json:"action"`
	Jobs        int             `json:"jobs"`
	Clean       bool            `json:"clean"`
	Toolchain   ToolchainRecord `json:"toolchain"`
	Stages      []StageRecord   `json:"stages"`
	Succeeded   bool            `json:"succeeded"`
	TestsFailed bool            `json:"tests_failed,omitempty"`
}

// NewManifest builds a run manifest from a pipeline result
func NewManifest(cfg Config, tc toolchain.Info, result *Result, succeeded bool) *RunManifest {
	manifest := &RunManifest{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		BuildType: string(cfg.BuildType),
		Action:    string(cfg.Action),
		Jobs:      cfg.Jobs,
		Clean:     cfg.Clean,
		Toolchain: ToolchainRecord{
			InstallPath: tc.InstallPath,
			Compiler:    tc.Compiler,
			Version:     tc.Version,
		},
		Succeeded:   succeeded,
		TestsFailed: result.TestsFailed,
	}

	for _, sr := range result.Stages {
		record := StageRecord{
			Stage:    string(sr.Stage),
			Duration: sr.Duration.String(),
			OK:       sr.Err == nil,
		}
		if sr.Err != nil {
			record.Error = sr.Err.Error()
		}
		manifest.Stages = append(manifest.Stages, record)
	}

	return manifest
}

// Save writes the manifest into dir as vnekit-run.json, overwriting the
// record of any previous run
func (m *RunManifest) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
