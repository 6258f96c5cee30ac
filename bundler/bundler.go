package bundler

import (
	"context"
	"fmt"
	"slices"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/extractor"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/resolver"
	"github.com/erraggy/oaslimbs/walker"
)

// ExternalRef is a reference split into the file it names and the JSON
// Pointer inside that file.
type ExternalRef struct {
	File    string
	Pointer string
}

// String returns the reference as written.
func (r ExternalRef) String() string {
	return r.File + r.Pointer
}

// ParseExternalRef splits ref and reports whether it should be bundled:
// the file part must be non-empty and, when accepted is not empty, listed
// in accepted.
func ParseExternalRef(ref string, accepted []string) (ExternalRef, bool) {
	file, pointer := document.SplitRef(ref)
	if file == "" {
		return ExternalRef{}, false
	}
	if len(accepted) > 0 && !slices.Contains(accepted, file) {
		return ExternalRef{}, false
	}
	return ExternalRef{File: file, Pointer: pointer}, true
}

// Option configures a Bundle call.
type Option func(*config)

type config struct {
	logger   parser.Logger
	maxDepth int
}

// WithLogger sets the logger that receives one debug entry per bundled
// node.
func WithLogger(l parser.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxDepth bounds the nesting depth of the walked documents.
// Zero means walker.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.logger = parser.OrNop(cfg.logger)
	return cfg
}

// bundler holds the state of one Bundle call.
type bundler struct {
	ctx      context.Context
	root     *document.Node
	accepted []string
	refs     *resolver.Context
	cfg      *config

	inProgress map[string]bool
	done       map[string]bool
	err        error
}

// Bundle pulls every accepted external reference of child into child,
// recursively, and rewrites those references to local pointers. child is
// modified in place; refs supplies the referenced nodes, which are cloned
// before use.
//
// Bundle stops at the first node that cannot be fetched and returns that
// error. child may then be partially bundled.
func Bundle(ctx context.Context, child *document.Node, accepted []string, refs *resolver.Context, opts ...Option) error {
	if child == nil {
		return fmt.Errorf("bundler: nil document")
	}
	if refs == nil {
		return fmt.Errorf("bundler: nil resolver context")
	}
	b := &bundler{
		ctx:        ctx,
		root:       child,
		accepted:   accepted,
		refs:       refs,
		cfg:        newConfig(opts),
		inProgress: make(map[string]bool),
		done:       make(map[string]bool),
	}
	if err := b.bundle(child); err != nil {
		return err
	}
	return b.err
}

// bundle walks node and materialises each accepted reference found in it.
func (b *bundler) bundle(node *document.Node) error {
	return walker.Walk(node,
		walker.WithMaxDepth(b.cfg.maxDepth),
		walker.WithRefHandler(func(ref *walker.RefInfo) walker.Action {
			ext, ok := ParseExternalRef(ref.Ref, b.accepted)
			if !ok {
				return walker.Continue
			}
			ref.SetRef(ext.Pointer)
			if err := b.materialise(ext); err != nil {
				b.err = err
				return walker.Stop
			}
			return walker.Continue
		}),
	)
}

// materialise fetches the node ext points to, bundles it and sets it into
// the root document at ext.Pointer.
func (b *bundler) materialise(ext ExternalRef) error {
	key := ext.String()
	if b.inProgress[key] || b.done[key] {
		return nil
	}
	if err := b.ctx.Err(); err != nil {
		return err
	}

	target, err := b.refs.Get(b.ctx, ext.File, ext.Pointer)
	if err != nil {
		return err
	}
	target = target.Clone()
	if err := extractor.Reanchor(ext.File, target); err != nil {
		return fmt.Errorf("bundler: %w", err)
	}

	b.inProgress[key] = true
	err = b.bundle(target)
	delete(b.inProgress, key)
	if err != nil {
		return err
	}
	if b.err != nil {
		return b.err
	}

	p, err := document.ParsePointer(ext.Pointer)
	if err != nil {
		return fmt.Errorf("bundler: %s: %w", key, err)
	}
	if len(p) == 0 {
		return fmt.Errorf("bundler: %s: cannot bundle a whole document", key)
	}
	if err := document.SetAt(b.root, p, target); err != nil {
		return fmt.Errorf("bundler: %s: %w", key, err)
	}
	b.done[key] = true
	b.cfg.logger.Debug("bundled reference", "ref", key, "section", p[0])
	return nil
}
