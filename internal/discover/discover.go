// Package discover finds C/C++ source files for the formatting pipeline.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vertexnova/vnekit/internal/errors"
)

// Extensions is the recognized set of source file extensions
var Extensions = []string{".h", ".cpp", ".mm", ".m", ".hpp", ".c"}

// excludedDirs are directory names never descended into: build artifacts,
// version-control metadata, dependency caches and compiled-object caches
var excludedDirs = map[string]struct{}{
	"build":        {},
	".git":         {},
	"node_modules": {},
	"CMakeFiles":   {},
	"__pycache__":  {},
}

// IsSourceFile reports whether the path has a recognized source extension
// (case-insensitive)
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether a directory name is pruned during the walk
func Excluded(name string, extra []string) bool {
	if _, ok := excludedDirs[name]; ok {
		return true
	}
	for _, e := range extra {
		if name == e {
			return true
		}
	}
	return false
}

// Walk collects every recognized source file under root, pruning excluded
// directory names at any depth. Traversal is lexical, so the resulting
// order is deterministic. extraExcludes adds project-configured names to
// the built-in exclusion set.
func Walk(root string, extraExcludes []string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errors.NewTargetNotFoundError(root)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && Excluded(d.Name(), extraExcludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Single validates an explicitly named file and returns it as a one-element
// set. The file must exist and carry a recognized extension.
func Single(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewTargetNotFoundError(path)
	}
	if !IsSourceFile(path) {
		return nil, errors.NewUnsupportedFileTypeError(path, Extensions)
	}
	return []string{path}, nil
}
