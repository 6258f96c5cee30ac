package subset

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oaslimbs/bundler"
	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/extractor"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/resolver"
)

// DefaultAnchor is the name the parent is published under by Extract.
const DefaultAnchor = "parent.json"

// Config configures an extraction.
type Config struct {
	// Anchor is the logical name of the parent document used while
	// bundling. ExtractMany ignores it and anchors each bucket on its name.
	Anchor string
	// Properties lists the top-level members copied into each child.
	// Nil means extractor.DefaultProperties.
	Properties []string
	// Concurrency limits how many buckets ExtractMany runs at once.
	// Zero or less means no limit.
	Concurrency int
	// ResolverOptions are passed to the reference resolver.
	ResolverOptions []resolver.Option
	// Logger receives debug output. Defaults to parser.NopLogger.
	Logger parser.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Anchor: DefaultAnchor,
		Logger: parser.NopLogger{},
	}
}

// Option configures an extraction.
type Option func(*Config)

// WithAnchor sets the name the parent is published under.
func WithAnchor(anchor string) Option {
	return func(c *Config) { c.Anchor = anchor }
}

// WithProperties sets the top-level members copied into each child.
func WithProperties(names ...string) Option {
	return func(c *Config) { c.Properties = names }
}

// WithConcurrency limits how many buckets run at once.
func WithConcurrency(n int) Option {
	return func(c *Config) { c.Concurrency = n }
}

// WithResolverOptions adds options for the reference resolver.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(c *Config) { c.ResolverOptions = append(c.ResolverOptions, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Logger = parser.OrNop(cfg.Logger)
	return cfg
}

// Bucket names a set of selectors extracted together.
type Bucket struct {
	Name      string
	Selectors []string
}

// Result is the child document extracted for one bucket.
type Result struct {
	Name     string
	Document *document.Node
	Stats    parser.DocumentStats
}

// Extract builds the self-contained child of parent holding the
// operations named by selectors.
func Extract(ctx context.Context, parent *document.Node, selectors []string, opts ...Option) (*document.Node, error) {
	cfg := newConfig(opts)
	return extract(ctx, parent, selectors, cfg.Anchor, cfg)
}

func extract(ctx context.Context, parent *document.Node, selectors []string, anchor string, cfg Config) (*document.Node, error) {
	if parent == nil {
		return nil, fmt.Errorf("subset: nil parent document")
	}
	// Reject a bad anchor before any work is done.
	if err := bundler.ValidateAnchor(anchor); err != nil {
		return nil, err
	}

	ex := extractor.New()
	ex.Logger = cfg.Logger
	if cfg.Properties != nil {
		ex.Properties = cfg.Properties
	}
	child, err := ex.Extract(selectors, anchor, parent)
	if err != nil {
		return nil, err
	}

	err = bundler.IncludeDependencies(ctx, child, anchor, parent,
		bundler.WithResolverOptions(cfg.ResolverOptions...),
		bundler.WithBundleOptions(bundler.WithLogger(cfg.Logger)),
	)
	if err != nil {
		return nil, err
	}
	return child, nil
}

// ExtractMany extracts one child per bucket. Buckets run concurrently and
// results are returned in bucket order. Bucket names must be unique and
// non-empty since each child is anchored on its bucket's name.
func ExtractMany(ctx context.Context, parent *document.Node, buckets []Bucket, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts)
	if err := validateBuckets(buckets); err != nil {
		return nil, err
	}

	results := make([]Result, len(buckets))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i, b := range buckets {
		g.Go(func() error {
			log := cfg.Logger.With("bucket", b.Name)
			bcfg := cfg
			bcfg.Logger = log

			child, err := extract(gctx, parent, b.Selectors, b.Name, bcfg)
			if err != nil {
				return fmt.Errorf("subset: bucket %q: %w", b.Name, err)
			}
			stats := parser.GetDocumentStats(child)
			log.Debug("extracted bucket", "operations", stats.OperationCount, "definitions", stats.DefinitionCount)
			results[i] = Result{Name: b.Name, Document: child, Stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateBuckets(buckets []Bucket) error {
	seen := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if slices.Contains(seen, b.Name) {
			return &oaserrors.ConfigError{Option: "bucket", Value: b.Name, Message: "duplicate bucket name"}
		}
		seen = append(seen, b.Name)
	}
	return nil
}

// ExtractFromSource parses the parent described by parseOpts, for example
// parser.WithFilePath, and extracts selectors from it. References from the
// parent into sibling files are loaded relative to the parent's directory
// unless ResolverOptions configure otherwise.
func ExtractFromSource(ctx context.Context, selectors []string, parseOpts []parser.Option, opts ...Option) (*document.Node, error) {
	cfg := newConfig(opts)
	parseOpts = append([]parser.Option{parser.WithLogger(cfg.Logger)}, parseOpts...)
	result, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.ResolverOptions == nil {
		cfg.ResolverOptions = SourceResolverOptions(result)
	}
	return extract(ctx, result.Document, selectors, cfg.Anchor, cfg)
}

// SourceResolverOptions returns the resolver options that load sibling
// documents of a parsed file. It returns nil for sources that are not
// local files.
func SourceResolverOptions(result *parser.ParseResult) []resolver.Option {
	if result == nil || !result.IsFile() {
		return nil
	}
	return []resolver.Option{resolver.WithBaseDir(result.Dir())}
}
