package triage

import (
	"fmt"
	"os"
	"path/filepath"
)

// MoveInto moves file into dir (created if absent) under its own base name
// and returns the new path. A file already present under that name is
// replaced rather than treated as an error.
func MoveInto(file, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	dest := filepath.Join(dir, filepath.Base(file))
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		return "", fmt.Errorf("move %s: %s is a directory", file, dest)
	}
	if err := os.Rename(file, dest); err != nil {
		return "", fmt.Errorf("move %s: %w", file, err)
	}
	return dest, nil
}

// exists reports whether path is present as a non-directory.
func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
