package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vneerrors "github.com/vertexnova/vnekit/internal/errors"
	"github.com/vertexnova/vnekit/internal/log"
	"github.com/vertexnova/vnekit/internal/toolchain"
)

// call records one external invocation seen by the fake runner
type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls    []call
	failWith map[string]error // keyed by executable name + first arg
}

func (f *fakeRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	key := name
	if len(args) > 0 {
		key = name + " " + args[0]
	}
	if err, ok := f.failWith[key]; ok {
		return err
	}
	return nil
}

// invoked returns the executables invoked, with cmake disambiguated into
// configure vs compile by its first argument
func (f *fakeRunner) invoked() []string {
	var out []string
	for _, c := range f.calls {
		switch {
		case c.name == "cmake" && len(c.args) > 0 && c.args[0] == "--build":
			out = append(out, "cmake-build")
		case c.name == "cmake":
			out = append(out, "cmake-configure")
		default:
			out = append(out, c.name)
		}
	}
	return out
}

func testPipeline(t *testing.T, cfg Config, runner Runner) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	tc := toolchain.Info{Compiler: "cl", Version: "2022"}
	var out bytes.Buffer
	return &Pipeline{
		Config:      cfg,
		ProjectRoot: root,
		BuildDir:    BuildDirFor(root, cfg.BuildType, tc),
		Toolchain:   tc,
		Runner:      runner,
		Logger:      log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: &out}),
		Out:         &out,
	}, &out
}

func TestBuildDirFor(t *testing.T) {
	tc := toolchain.Info{Compiler: "cl", Version: "19.38.33130"}
	dir := BuildDirFor("/proj", Release, tc)
	assert.Equal(t, filepath.Join("/proj", "build", "Release", "build-windows-cl-19.38.33130"), dir)
}

func TestConfigureOnlyNeverCompilesOrTests(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionConfigure
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"cmake-configure"}, runner.invoked())
}

func TestTestActionRunsFullChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionTest
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"cmake-configure", "cmake-build", "ctest"}, runner.invoked())
	assert.False(t, result.TestsFailed)
}

func TestConfigureFailureIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionTest
	runner := &fakeRunner{failWith: map[string]error{"cmake -G": fmt.Errorf("exit status 1")}}
	p, _ := testPipeline(t, cfg, runner)

	_, err := p.Run(context.Background())
	require.Error(t, err)

	var vneErr *vneerrors.VneError
	require.ErrorAs(t, err, &vneErr)
	assert.Equal(t, vneerrors.ErrCodeConfigureFailed, vneErr.Code)
	// compile and test must never have been attempted
	assert.Equal(t, []string{"cmake-configure"}, runner.invoked())
}

func TestCompileFailurePreventsTests(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionTest
	runner := &fakeRunner{failWith: map[string]error{"cmake --build": fmt.Errorf("exit status 1")}}
	p, _ := testPipeline(t, cfg, runner)

	_, err := p.Run(context.Background())
	require.Error(t, err)

	var vneErr *vneerrors.VneError
	require.ErrorAs(t, err, &vneErr)
	assert.Equal(t, vneerrors.ErrCodeCompileFailed, vneErr.Code)
	assert.NotContains(t, runner.invoked(), "ctest")
}

func TestTestFailureIsNonFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionTest
	runner := &fakeRunner{failWith: map[string]error{"ctest -C": fmt.Errorf("exit status 8")}}
	p, out := testPipeline(t, cfg, runner)

	result, err := p.Run(context.Background())
	require.NoError(t, err, "a test stage failure must not fail the run")

	assert.True(t, result.TestsFailed)
	assert.Contains(t, out.String(), "Warning: Some tests failed")
}

func TestCleanEmptiesBuildDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionConfigure
	cfg.Clean = true
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	// simulate leftovers from a previous run
	stale := filepath.Join(p.BuildDir, "CMakeCache.txt")
	require.NoError(t, os.MkdirAll(p.BuildDir, 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(stale)
	assert.True(t, os.IsNotExist(statErr), "clean run must remove prior contents")
}

func TestIncrementalPreservesBuildDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Action = ActionConfigure
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	kept := filepath.Join(p.BuildDir, "CMakeCache.txt")
	require.NoError(t, os.MkdirAll(p.BuildDir, 0o755))
	require.NoError(t, os.WriteFile(kept, []byte("cache"), 0o644))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(kept)
	assert.NoError(t, statErr, "incremental run must preserve prior contents")
}

func TestConfigureArgsTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BuildType = Release
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, runner.calls)
	configure := runner.calls[0]
	assert.Equal(t, p.BuildDir, configure.dir, "configure runs inside the build directory")

	joined := strings.Join(configure.args, " ")
	for _, want := range []string{
		`-G Visual Studio 17 2022`,
		`-A x64`,
		`-DCMAKE_BUILD_TYPE=Release`,
		`-DCMAKE_C_COMPILER=cl`,
		`-DCMAKE_CXX_COMPILER=cl`,
		`-DVNE_TEMPLATE_TESTS=ON`,
	} {
		assert.Contains(t, joined, want)
	}
	assert.Equal(t, p.ProjectRoot, configure.args[len(configure.args)-1], "project root is the final argument")
}

func TestManifestWritten(t *testing.T) {
	cfg := DefaultConfig()
	runner := &fakeRunner{}
	p, _ := testPipeline(t, cfg, runner)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(p.BuildDir, ManifestName))
	require.NoError(t, err)

	var manifest RunManifest
	require.NoError(t, json.Unmarshal(data, &manifest))

	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, "Debug", manifest.BuildType)
	assert.True(t, manifest.Succeeded)
	require.Len(t, manifest.Stages, 3)
	assert.Equal(t, "prepare", manifest.Stages[0].Stage)
	assert.True(t, manifest.Stages[1].OK)
}
