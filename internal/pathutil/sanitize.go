package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects paths that resolve to symlinks. New files in existing
// directories are accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	abs, info, err := lstatAbs(path)
	if err != nil {
		return "", err
	}
	if info != nil && info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	}
	return abs, nil
}

// SanitizeOutputDir is SanitizeOutputPath for a directory that partition
// files are written into. The directory may not exist yet; if it does it
// must be a real directory.
func SanitizeOutputDir(dir string) (string, error) {
	abs, err := SanitizeOutputPath(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("pathutil: not a directory: %s", abs)
		}
	case os.IsNotExist(err):
		// Created by the writer.
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
	return abs, nil
}

// lstatAbs returns the cleaned absolute form of path and its Lstat info,
// or nil info when nothing exists there yet.
func lstatAbs(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", nil, fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}
	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		return abs, info, nil
	case os.IsNotExist(err):
		return abs, nil, nil
	default:
		return "", nil, fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
}
