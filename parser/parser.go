package parser

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oaslimbs"
	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
	"go.yaml.in/yaml/v4"
)

const (
	// MaxFileSize is the maximum size (in bytes) of a source document.
	MaxFileSize = 10 * 1024 * 1024 // 10MB

	// SwaggerVersion is the only "swagger" value with the section shape
	// oaslimbs understands.
	SwaggerVersion = "2.0"
)

// Parser loads OpenAPI 2.0 documents into document trees.
type Parser struct {
	// InsecureSkipVerify disables TLS certificate verification for URL sources
	InsecureSkipVerify bool
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	// When set, InsecureSkipVerify is ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum source size in bytes. 0 means MaxFileSize.
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oaslimbs.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return MaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a parsed document and metadata about its source.
//
// Callers should treat Document as read-only: extraction never mutates its
// input, and the same tree may be shared by concurrent extractions. Use
// Copy to obtain an independent tree.
type ParseResult struct {
	// SourcePath is the path or URL the document was read from.
	// For bytes and readers it is "ParseBytes.<format>" or "ParseReader.<format>".
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the value of the top-level "swagger" member, if any
	Version string
	// Document is the parsed document tree
	Document *document.Node
	// Warnings contains non-fatal issues found while loading
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats

	localPath string
}

// IsFile reports whether the document was read from a local file.
func (pr *ParseResult) IsFile() bool {
	return pr.localPath != ""
}

// Dir returns the directory of the local file the document was read
// from, or "" for other sources.
func (pr *ParseResult) Dir() string {
	if pr.localPath == "" {
		return ""
	}
	return filepath.Dir(pr.localPath)
}

// Copy returns a deep copy of the ParseResult.
func (pr *ParseResult) Copy() *ParseResult {
	if pr == nil {
		return nil
	}
	cp := *pr
	cp.Document = pr.Document.Clone()
	if pr.Warnings != nil {
		cp.Warnings = append([]string(nil), pr.Warnings...)
	}
	return &cp
}

// Parse parses a document from a file path or URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var (
		data     []byte
		err      error
		format   SourceFormat
		loadTime time.Duration
	)

	loadStart := time.Now()
	if IsURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = formatFromURL(specPath, contentType)
	} else {
		data, err = p.readFile(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = formatFromName(specPath)
	}
	isFile := !IsURL(specPath)

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	res.SourcePath = specPath
	res.LoadTime = loadTime
	if isFile {
		res.localPath = specPath
	}
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses a document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parseBytes(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a document from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// ParseDocument wraps an already decoded tree in a ParseResult after
// running the same structural checks as the other entry points.
func (p *Parser) ParseDocument(doc *document.Node) (*ParseResult, error) {
	res := &ParseResult{
		SourcePath:   "ParseDocument",
		SourceFormat: SourceFormatUnknown,
		Document:     doc,
	}
	if err := p.finish(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Parser) readFile(specPath string) ([]byte, error) {
	info, err := os.Stat(specPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxFileSize() {
		return nil, p.sizeError(specPath, info.Size())
	}
	data, err := os.ReadFile(specPath) //nolint:gosec // user-provided input path
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

func (p *Parser) sizeError(source string, size int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        p.maxFileSize(),
		Actual:       size,
		Message:      fmt.Sprintf("%s is too large", source),
	}
}

// parseBytes decodes data and runs the structural checks.
func (p *Parser) parseBytes(data []byte, source string) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, p.sizeError(source, int64(len(data)))
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: "invalid JSON or YAML",
			Cause:   err,
		}
	}
	doc, err := document.FromYAML(&root)
	if err != nil {
		var (
			perr *oaserrors.ParseError
			lerr *oaserrors.ResourceLimitError
		)
		switch {
		case errors.As(err, &perr):
			perr.Path = source
			return nil, perr
		case errors.As(err, &lerr):
			return nil, lerr
		}
		return nil, &oaserrors.ParseError{
			Path:  source,
			Cause: err,
		}
	}

	res := &ParseResult{
		SourcePath:   source,
		SourceFormat: sniffFormat(data),
		Document:     doc,
		SourceSize:   int64(len(data)),
	}
	if err := p.finish(res); err != nil {
		return nil, err
	}
	return res, nil
}

// finish validates the document shape and fills in version and stats.
func (p *Parser) finish(res *ParseResult) error {
	doc := res.Document
	if !doc.IsObject() {
		return &oaserrors.ParseError{
			Path:    res.SourcePath,
			Message: fmt.Sprintf("document root must be an object, got %s", doc.Kind()),
		}
	}
	if paths, ok := doc.Get("paths"); ok && !paths.IsObject() {
		return &oaserrors.ParseError{
			Path:    res.SourcePath,
			Message: fmt.Sprintf("paths must be an object, got %s", paths.Kind()),
		}
	}

	if v, ok := doc.Get("swagger"); ok {
		if s, isStr := v.Str(); isStr {
			res.Version = s
		} else {
			res.Version = fmt.Sprint(v.Value())
		}
	}
	switch {
	case res.Version == "":
		res.Warnings = append(res.Warnings, "document has no swagger version")
	case res.Version != SwaggerVersion:
		res.Warnings = append(res.Warnings, fmt.Sprintf("swagger version %q is not %s; extraction may be incomplete", res.Version, SwaggerVersion))
	}

	res.Stats = GetDocumentStats(doc)
	p.log().Debug("parsed document",
		"source", res.SourcePath,
		"format", res.SourceFormat,
		"size", FormatBytes(res.SourceSize),
		"paths", res.Stats.PathCount,
		"operations", res.Stats.OperationCount,
	)
	for _, w := range res.Warnings {
		p.log().Warn(w, "source", res.SourcePath)
	}
	return nil
}
