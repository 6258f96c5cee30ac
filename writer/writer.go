// Package writer serializes document trees as JSON or YAML.
//
// JSON output is indented with two spaces. YAML output never uses anchors
// or aliases and does not wrap long lines. Both keep the member order of
// the tree.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/subset"
)

// Format is an output serialization format.
type Format string

const (
	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"
	// FormatYAML is block-style YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. Matching is case-insensitive and
// "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", &oaserrors.UnsupportedFormatError{Format: s}
	}
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Marshal serializes doc in format.
func Marshal(doc *document.Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := document.MarshalIndentJSON(doc, "  ")
		if err != nil {
			return nil, fmt.Errorf("writer: failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Dump(document.ToYAML(doc),
			yaml.WithIndent(2),
			yaml.WithLineWidth(-1),
			yaml.WithUnicode(true),
		)
		if err != nil {
			return nil, fmt.Errorf("writer: failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		return nil, &oaserrors.UnsupportedFormatError{Format: string(format)}
	}
}

// Write serializes doc in format to w.
func Write(w io.Writer, doc *document.Node, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writer: failed to write output: %w", err)
	}
	return nil
}

// WriteFile serializes doc in format to path with mode 0600.
func WriteFile(path string, doc *document.Node, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", path, err)
	}
	return nil
}

// WriteDir writes each result to "<dir>/<name>.<ext>", creating dir if
// needed, and returns the written paths in result order. Nothing is
// written when the format is unsupported.
func WriteDir(dir string, results []subset.Result, format Format) ([]string, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(results))
	for _, r := range results {
		path := filepath.Join(dir, r.Name+"."+format.Extension())
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return paths, fmt.Errorf("writer: failed to create directory: %w", err)
		}
		if err := WriteFile(path, r.Document, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
