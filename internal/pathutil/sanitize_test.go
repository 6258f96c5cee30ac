package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layout creates a directory holding a regular file "child.yaml", a
// directory "parts", and symlinks to both.
func layout(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "child.yaml"), []byte("swagger: \"2.0\"\n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "parts"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(dir, "child.yaml"), filepath.Join(dir, "child-link.yaml")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "parts"), filepath.Join(dir, "parts-link")))
	return dir
}

func TestSanitizeOutputPath(t *testing.T) {
	dir := layout(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{"existing file", filepath.Join(dir, "child.yaml"), filepath.Join(dir, "child.yaml"), ""},
		{"new file", filepath.Join(dir, "pets.json"), filepath.Join(dir, "pets.json"), ""},
		{"dot-dot is cleaned", filepath.Join(dir, "parts", "..", "store.yaml"), filepath.Join(dir, "store.yaml"), ""},
		{"directory", filepath.Join(dir, "parts"), filepath.Join(dir, "parts"), ""},
		{"symlinked file", filepath.Join(dir, "child-link.yaml"), "", "refusing to write to symlink"},
		{"symlinked directory", filepath.Join(dir, "parts-link"), "", "refusing to write to symlink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeOutputPath(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeOutputPath_Relative(t *testing.T) {
	got, err := SanitizeOutputPath("child.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	assert.Equal(t, "child.yaml", filepath.Base(got))
}

func TestSanitizeOutputDir(t *testing.T) {
	dir := layout(t)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing directory", filepath.Join(dir, "new-parts"), ""},
		{"existing directory", filepath.Join(dir, "parts"), ""},
		{"regular file", filepath.Join(dir, "child.yaml"), "not a directory"},
		{"symlinked directory", filepath.Join(dir, "parts-link"), "refusing to write to symlink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeOutputDir(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, got)
		})
	}
}
