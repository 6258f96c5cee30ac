package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/walker"
)

const (
	// MaxCachedDocuments is the maximum number of documents a Context holds.
	// This prevents memory exhaustion from documents with many external references.
	MaxCachedDocuments = 100

	// RootName is the logical name of the root document.
	RootName = ""
)

// Loader fetches a document that was not registered with Register.
// name is the file part of a reference, exactly as written.
type Loader func(ctx context.Context, name string) (*document.Node, error)

// Context holds the documents that references may point into, keyed by
// logical name. The root document is registered under RootName.
//
// Registering a document publishes it under any name without touching the
// filesystem, so a parent document can be addressed as "parent.json" even
// when it was never written anywhere.
//
// A Context is not safe for concurrent use.
type Context struct {
	docs         map[string]*document.Node
	order        []string
	loader       Loader
	baseDir      string
	httpRefs     bool
	parseOpts    []parser.Option
	logger       parser.Logger
	maxDocuments int
}

// Option configures a Context.
type Option func(*Context)

// WithLoader sets the fallback used for unregistered document names.
// It replaces the filesystem loader installed by WithBaseDir.
func WithLoader(l Loader) Option {
	return func(c *Context) { c.loader = l }
}

// WithBaseDir enables loading unregistered documents from files below dir.
// References that escape dir are rejected.
func WithBaseDir(dir string) Option {
	return func(c *Context) {
		c.baseDir = dir
		if c.loader == nil {
			c.loader = c.loadFile
		}
	}
}

// WithHTTPRefs enables loading http(s) references through the parser.
// It is disabled by default for security (SSRF protection).
func WithHTTPRefs(enabled bool) Option {
	return func(c *Context) { c.httpRefs = enabled }
}

// WithParseOptions sets extra parser options used when loading documents,
// for example a custom HTTP client.
func WithParseOptions(opts ...parser.Option) Option {
	return func(c *Context) { c.parseOpts = append(c.parseOpts, opts...) }
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(c *Context) { c.logger = parser.OrNop(l) }
}

// WithMaxDocuments overrides MaxCachedDocuments. Values <= 0 keep the default.
func WithMaxDocuments(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxDocuments = n
		}
	}
}

// New creates a Context whose root document is root.
func New(root *document.Node, opts ...Option) *Context {
	c := &Context{
		docs:         make(map[string]*document.Node),
		logger:       parser.NopLogger{},
		maxDocuments: MaxCachedDocuments,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Register(RootName, root)
	return c
}

// Register publishes doc under name, replacing any previous document.
func (c *Context) Register(name string, doc *document.Node) {
	if _, exists := c.docs[name]; !exists {
		c.order = append(c.order, name)
	}
	c.docs[name] = doc
}

// Document returns the document registered or loaded under name.
func (c *Context) Document(name string) (*document.Node, bool) {
	doc, ok := c.docs[name]
	return doc, ok
}

// Names returns the logical names of all held documents in registration order.
func (c *Context) Names() []string {
	return append([]string(nil), c.order...)
}

// Get returns the node that pointer addresses in the document named file,
// loading the document if needed. The node is live: callers that modify
// it must clone it first.
func (c *Context) Get(ctx context.Context, file, pointer string) (*document.Node, error) {
	doc, err := c.load(ctx, file)
	if err != nil {
		return nil, err
	}
	p, err := document.ParsePointer(pointer)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: file + pointer, File: file, Message: "invalid JSON pointer", Cause: err}
	}
	n, err := document.Lookup(doc, p)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: file + pointer, File: file, Message: "dangling reference", Cause: err}
	}
	return n, nil
}

// Resolve walks every reference reachable from the root document, loading
// the documents they point into and following the references inside those
// documents in turn. It fails on the first reference whose target does not
// exist. Cycles are fine: each document is walked once.
func (c *Context) Resolve(ctx context.Context) error {
	queue := []string{RootName}
	walked := map[string]bool{RootName: true}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := queue[0]
		queue = queue[1:]

		doc, err := c.load(ctx, name)
		if err != nil {
			return err
		}
		refs, err := walker.CollectRefs(doc)
		if err != nil {
			return err
		}
		c.logger.Debug("resolving document", "document", displayName(name), "refs", len(refs.All))

		for _, ref := range refs.All {
			file, pointer := document.SplitRef(ref.Ref)
			if file == "" {
				file = name
			}
			if _, err := c.Get(ctx, file, pointer); err != nil {
				return withSource(err, displayName(name), ref.SourcePath)
			}
			if !walked[file] {
				walked[file] = true
				queue = append(queue, file)
			}
		}
	}
	return nil
}

// load returns the named document, fetching it through the loader once.
func (c *Context) load(ctx context.Context, name string) (*document.Node, error) {
	if doc, ok := c.docs[name]; ok {
		return doc, nil
	}
	if c.loader == nil && !(c.httpRefs && parser.IsURL(name)) {
		return nil, &oaserrors.ReferenceError{
			Ref:     name,
			File:    name,
			Message: "document is not registered and no loader is configured",
		}
	}
	if len(c.docs) >= c.maxDocuments {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(c.maxDocuments),
			Actual:       int64(len(c.docs)),
			Message:      "too many external references",
		}
	}

	var (
		doc *document.Node
		err error
	)
	if c.httpRefs && parser.IsURL(name) {
		doc, err = c.parse(parser.WithFilePath(name))
	} else {
		doc, err = c.loader(ctx, name)
	}
	if err != nil {
		var refErr *oaserrors.ReferenceError
		if errors.As(err, &refErr) {
			return nil, err
		}
		return nil, &oaserrors.ReferenceError{Ref: name, File: name, Message: "unreachable source", Cause: err}
	}
	c.logger.Debug("loaded document", "document", name)
	c.Register(name, doc)
	return doc, nil
}

// loadFile is the WithBaseDir loader.
func (c *Context) loadFile(_ context.Context, name string) (*document.Node, error) {
	if parser.IsURL(name) {
		return nil, &oaserrors.ReferenceError{Ref: name, File: name, Message: "HTTP references are disabled"}
	}

	filePath := name
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Clean(filepath.Join(c.baseDir, filePath))
	}

	absBase, err := filepath.Abs(c.baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolver: failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolver: failed to resolve file path: %w", err)
	}

	// filepath.Rel also fails for paths on different volumes
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return nil, &oaserrors.ReferenceError{Ref: name, File: name, IsPathTraversal: true}
	}

	return c.parse(parser.WithFilePath(absPath))
}

func (c *Context) parse(src parser.Option) (*document.Node, error) {
	opts := append([]parser.Option{src, parser.WithLogger(c.logger)}, c.parseOpts...)
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// withSource adds the location of the failing reference to err.
func withSource(err error, doc, path string) error {
	var refErr *oaserrors.ReferenceError
	if !errors.As(err, &refErr) {
		return err
	}
	cp := *refErr
	where := fmt.Sprintf("referenced from %s%s", doc, path)
	if cp.Message == "" {
		cp.Message = where
	} else {
		cp.Message = cp.Message + " (" + where + ")"
	}
	return &cp
}

func displayName(name string) string {
	if name == RootName {
		return "<root>"
	}
	return name
}
