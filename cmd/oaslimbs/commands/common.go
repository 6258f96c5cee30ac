// Package commands provides CLI command handlers for oaslimbs.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/erraggy/oaslimbs"
	"github.com/erraggy/oaslimbs/internal/cliutil"
	"github.com/erraggy/oaslimbs/internal/pathutil"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/writer"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// commandContext returns a context cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// ParseSpec loads the parent document from a file, URL or stdin. Parser
// warnings are passed to logger.
func ParseSpec(specPath string, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin), parser.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	for _, w := range result.Warnings {
		logger.Warn(w, "spec", FormatSpecPath(specPath))
	}
	return result, nil
}

// ResolveFormat picks the output format. An explicit flag wins, then the
// extension of outputPath, then the format of the source document.
// Anything else is YAML.
func ResolveFormat(flagValue, outputPath string, source parser.SourceFormat) (writer.Format, error) {
	if flagValue != "" {
		return writer.ParseFormat(flagValue)
	}
	if f, ok := writer.FormatFromPath(outputPath); ok {
		return f, nil
	}
	if source == parser.SourceFormatJSON {
		return writer.FormatJSON, nil
	}
	return writer.FormatYAML, nil
}

// ValidateOutputPath checks that outputPath is safe to write to and does not
// overwrite any of inputPaths. It returns the cleaned absolute path.
func ValidateOutputPath(outputPath string, inputPaths []string) (string, error) {
	cleaned, err := pathutil.SanitizeOutputPath(outputPath)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath || parser.IsURL(inputPath) {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return "", fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if cleaned == absInputPath {
			return "", fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return cleaned, nil
}

// OutputSpecHeader writes the common specification header.
func OutputSpecHeader(w io.Writer, specPath string, result *parser.ParseResult) {
	cliutil.Writef(w, "oaslimbs version: %s\n", oaslimbs.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "Swagger Version: %s\n", result.Version)
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
}

// OutputSpecStats writes the statistics of a document.
func OutputSpecStats(w io.Writer, stats parser.DocumentStats) {
	cliutil.Writef(w, "Paths: %d\n", stats.PathCount)
	cliutil.Writef(w, "Operations: %d\n", stats.OperationCount)
	cliutil.Writef(w, "Definitions: %d\n", stats.DefinitionCount)
	cliutil.Writef(w, "Parameters: %d\n", stats.ParameterCount)
	cliutil.Writef(w, "Responses: %d\n", stats.ResponseCount)
}
