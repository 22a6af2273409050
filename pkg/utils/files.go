package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo returns the absolute form of relPath and the directory that
// contains it.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}

// ResolveOutputDir anchors a relative output directory at baseDir.
func ResolveOutputDir(baseDir, dir string) string {
	if dir == "" {
		dir = "output"
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(baseDir, dir)
}

// OutputPath joins dir, name and an extension that includes its dot.
func OutputPath(dir, name, ext string) string {
	return filepath.Join(dir, name+ext)
}

// Stem is the file name of path without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteOutput creates the parent directory of path and writes source to it,
// ending the file with a newline.
func WriteOutput(path, source string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
