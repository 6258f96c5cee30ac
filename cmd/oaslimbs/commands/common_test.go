package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslimbs/internal/testutil"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/writer"
)

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		output  string
		source  parser.SourceFormat
		want    writer.Format
		wantErr bool
	}{
		{"flag wins", "json", "out.yaml", parser.SourceFormatYAML, writer.FormatJSON, false},
		{"yml alias", "yml", "", parser.SourceFormatJSON, writer.FormatYAML, false},
		{"output extension", "", "out.json", parser.SourceFormatYAML, writer.FormatJSON, false},
		{"source json", "", "", parser.SourceFormatJSON, writer.FormatJSON, false},
		{"source yaml", "", "", parser.SourceFormatYAML, writer.FormatYAML, false},
		{"unknown source", "", "out.txt", parser.SourceFormatUnknown, writer.FormatYAML, false},
		{"bad flag", "toml", "", parser.SourceFormatYAML, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFormat(tt.flag, tt.output, tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	input := writePetstore(t)

	t.Run("new file", func(t *testing.T) {
		out := filepath.Join(filepath.Dir(input), "child.yaml")
		got, err := ValidateOutputPath(out, []string{input})
		require.NoError(t, err)
		assert.Equal(t, out, got)
	})

	t.Run("overwrites input", func(t *testing.T) {
		_, err := ValidateOutputPath(input, []string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("stdin and url inputs are skipped", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "child.yaml")
		_, err := ValidateOutputPath(out, []string{StdinFilePath, "https://example.com/api.yaml"})
		assert.NoError(t, err)
	})

	t.Run("symlink", func(t *testing.T) {
		link := filepath.Join(t.TempDir(), "link.yaml")
		require.NoError(t, os.Symlink(input, link))
		_, err := ValidateOutputPath(link, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output path")
	})
}

func TestParseSpec(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		result, err := ParseSpec(writePetstore(t), parser.NopLogger{})
		require.NoError(t, err)
		assert.Equal(t, "2.0", result.Version)
		assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	})

	t.Run("stdin", func(t *testing.T) {
		withStdin(t, testutil.PetstoreYAML, func() {
			result, err := ParseSpec(StdinFilePath, parser.NopLogger{})
			require.NoError(t, err)
			assert.False(t, result.IsFile())
		})
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseSpec(filepath.Join(t.TempDir(), "missing.yaml"), parser.NopLogger{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing ")
	})
}

func TestOutputSpecStats(t *testing.T) {
	var buf bytes.Buffer
	OutputSpecStats(&buf, parser.GetDocumentStats(testutil.Petstore()))
	out := buf.String()
	assert.Contains(t, out, "Paths: 4\n")
	assert.Contains(t, out, "Operations: 5\n")
	assert.Contains(t, out, "Definitions: 6\n")
}
