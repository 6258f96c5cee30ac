package bundler

import (
	"context"
	"path"
	"strings"
	"unicode"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
	"github.com/erraggy/oaslimbs/resolver"
)

// IncludeConfig configures IncludeDependencies.
type IncludeConfig struct {
	bundleOpts   []Option
	resolverOpts []resolver.Option
}

// IncludeOption configures IncludeDependencies.
type IncludeOption func(*IncludeConfig)

// WithBundleOptions passes options through to Bundle.
func WithBundleOptions(opts ...Option) IncludeOption {
	return func(c *IncludeConfig) { c.bundleOpts = append(c.bundleOpts, opts...) }
}

// WithResolverOptions passes options through to resolver.New, for example
// resolver.WithBaseDir when the parent has references into sibling files.
func WithResolverOptions(opts ...resolver.Option) IncludeOption {
	return func(c *IncludeConfig) { c.resolverOpts = append(c.resolverOpts, opts...) }
}

// IncludeDependencies makes child self-contained. parent is published
// under anchor, every reference reachable from child is resolved, and the
// nodes child references in the parent are bundled into it. child is
// modified in place; parent is not.
//
// It fails with an *oaserrors.InvalidAnchorError when anchor cannot name a
// document, and with an *oaserrors.ReferenceError when a reference is
// dangling or names a document that cannot be loaded.
func IncludeDependencies(ctx context.Context, child *document.Node, anchor string, parent *document.Node, opts ...IncludeOption) error {
	if err := ValidateAnchor(anchor); err != nil {
		return err
	}
	cfg := &IncludeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	refs := resolver.New(child, cfg.resolverOpts...)
	refs.Register(anchor, parent)
	if err := refs.Resolve(ctx); err != nil {
		return err
	}
	return Bundle(ctx, child, []string{anchor}, refs, cfg.bundleOpts...)
}

// ValidateAnchor reports whether anchor can be used as a document name in
// references. An anchor must be non-empty, must not contain '#' or control
// characters, and must not climb out of the current directory.
func ValidateAnchor(anchor string) error {
	switch {
	case anchor == "":
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor is empty"}
	case strings.Contains(anchor, "#"):
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor must not contain '#'"}
	case strings.ContainsFunc(anchor, unicode.IsControl):
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor must not contain control characters"}
	case strings.TrimSpace(anchor) != anchor:
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor must not start or end with whitespace"}
	}
	clean := path.Clean(strings.ReplaceAll(anchor, `\`, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor escapes the current directory"}
	}
	if clean == "." || strings.HasSuffix(anchor, "/") {
		return &oaserrors.InvalidAnchorError{Anchor: anchor, Message: "anchor does not name a file"}
	}
	return nil
}
