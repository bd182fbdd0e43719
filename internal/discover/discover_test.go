package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vneerrors "github.com/vertexnova/vnekit/internal/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// test\n"), 0o644))
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"logging.cpp", true},
		{"logging.h", true},
		{"template.hpp", true},
		{"legacy.c", true},
		{"view.mm", true},
		{"view.m", true},
		{"LOGGING.CPP", true}, // extension match is case-insensitive
		{"readme.md", false},
		{"script.py", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSourceFile(tt.path))
		})
	}
}

func TestWalkCollectsAndPrunes(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "src", "logging.cpp"))
	writeFile(t, filepath.Join(root, "include", "logging.h"))
	writeFile(t, filepath.Join(root, "src", "notes.txt"))
	// excluded directories, including one nested deep
	writeFile(t, filepath.Join(root, "build", "gen.cpp"))
	writeFile(t, filepath.Join(root, "src", "deep", ".git", "hook.c"))
	writeFile(t, filepath.Join(root, "src", "deep", "CMakeFiles", "probe.c"))

	files, err := Walk(root, nil)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(root, "include", "logging.h"))
	assert.Contains(t, files, filepath.Join(root, "src", "logging.cpp"))
}

func TestWalkExtraExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "third_party", "vendored.cpp"))
	writeFile(t, filepath.Join(root, "src", "main.cpp"))

	files, err := Walk(root, []string{"third_party"})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "src", "main.cpp"), files[0])
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)

	var vneErr *vneerrors.VneError
	require.ErrorAs(t, err, &vneErr)
	assert.Equal(t, vneerrors.ErrCodeTargetNotFound, vneErr.Code)
}

func TestSingle(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "logging.cpp")
	txt := filepath.Join(root, "notes.txt")
	writeFile(t, src)
	writeFile(t, txt)

	t.Run("accepts recognized extension", func(t *testing.T) {
		files, err := Single(src)
		require.NoError(t, err)
		assert.Equal(t, []string{src}, files)
	})

	t.Run("rejects unrecognized extension", func(t *testing.T) {
		_, err := Single(txt)
		var vneErr *vneerrors.VneError
		require.ErrorAs(t, err, &vneErr)
		assert.Equal(t, vneerrors.ErrCodeUnsupportedFileType, vneErr.Code)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := Single(filepath.Join(root, "missing.cpp"))
		var vneErr *vneerrors.VneError
		require.ErrorAs(t, err, &vneErr)
		assert.Equal(t, vneerrors.ErrCodeTargetNotFound, vneErr.Code)
	})
}
