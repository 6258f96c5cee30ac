package extractor

import (
	"fmt"
	"slices"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/selector"
	"github.com/erraggy/oaslimbs/walker"
)

// DefaultProperties lists the top-level members copied verbatim from the
// parent into every child. Vendor extensions are copied as well.
var DefaultProperties = []string{
	"swagger",
	"info",
	"host",
	"basePath",
	"schemes",
	"consumes",
	"produces",
	"securityDefinitions",
	"security",
	"tags",
	"externalDocs",
}

// KeyMatcher reports whether a member key should be copied.
type KeyMatcher func(key string) bool

// Extractor builds child documents.
type Extractor struct {
	// Properties lists the top-level members copied into the child.
	// Vendor extensions are always copied. Defaults to DefaultProperties.
	Properties []string
	// Logger receives debug output. Defaults to parser.NopLogger.
	Logger parser.Logger
	// MaxDepth bounds the nesting depth walked while re-anchoring.
	// Zero means walker.DefaultMaxDepth.
	MaxDepth int
}

// New creates an Extractor with the default properties.
func New() *Extractor {
	return &Extractor{
		Properties: slices.Clone(DefaultProperties),
		Logger:     parser.NopLogger{},
	}
}

// Extract resolves selectors against parent and builds the child anchored
// on anchor. The first selector that cannot be resolved aborts the call.
func (e *Extractor) Extract(selectors []string, anchor string, parent *document.Node) (*document.Node, error) {
	ids, err := selector.Resolve(selectors, parent)
	if err != nil {
		return nil, err
	}
	e.log().Debug("resolved selectors", "selectors", len(selectors), "operations", len(ids))
	return e.BuildChild(ids, anchor, parent)
}

// BuildChild builds a child holding the operations named by ids, which are
// "<method> <path>" identifiers. Identifiers that do not name an operation
// of parent are skipped, so an empty list yields a child with empty paths.
// Every local reference in the child is prefixed with anchor.
func (e *Extractor) BuildChild(ids []string, anchor string, parent *document.Node) (*document.Node, error) {
	src := parent.Clone()
	child := document.NewObject()

	CopyProperties(child, src, e.properties(), document.IsVendorExtensionKey)

	srcPaths, _ := src.Get("paths")
	childPaths := document.NewObject()
	child.Set("paths", childPaths)

	for _, id := range ids {
		method, path, ok := selector.ParseOperationID(id)
		if !ok {
			e.log().Debug("skipping malformed operation identifier", "id", id)
			continue
		}
		srcItem, ok := srcPaths.Get(path)
		if !ok {
			e.log().Debug("skipping unknown path", "id", id)
			continue
		}
		op, ok := srcItem.Get(method)
		if !ok || !document.IsHTTPMethod(method) {
			e.log().Debug("skipping unknown operation", "id", id)
			continue
		}

		item, ok := childPaths.Get(path)
		if !ok {
			item = document.NewObject()
			CopyProperties(item, srcItem, []string{"parameters"}, document.IsVendorExtensionKey)
			childPaths.Set(path, item)
		}
		item.Set(method, op)
	}

	if err := reanchor(anchor, child, e.MaxDepth); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}
	return child, nil
}

func (e *Extractor) properties() []string {
	if e.Properties == nil {
		return DefaultProperties
	}
	return e.Properties
}

func (e *Extractor) log() parser.Logger {
	return parser.OrNop(e.Logger)
}

// CopyProperties sets on dst every member of src whose key is listed in
// names or accepted by one of matchers. Members are copied in src order
// and are not cloned.
func CopyProperties(dst, src *document.Node, names []string, matchers ...KeyMatcher) {
	for _, key := range src.Keys() {
		if !slices.Contains(names, key) && !matchesAny(key, matchers) {
			continue
		}
		v, _ := src.Get(key)
		dst.Set(key, v)
	}
}

func matchesAny(key string, matchers []KeyMatcher) bool {
	for _, m := range matchers {
		if m(key) {
			return true
		}
	}
	return false
}

// Reanchor prefixes every local reference below node with anchor, turning
// "#/definitions/X" into anchor+"#/definitions/X". References that already
// name a file are left alone.
func Reanchor(anchor string, node *document.Node) error {
	return reanchor(anchor, node, 0)
}

func reanchor(anchor string, node *document.Node, maxDepth int) error {
	return walker.Walk(node,
		walker.WithMaxDepth(maxDepth),
		walker.WithRefHandler(func(ref *walker.RefInfo) walker.Action {
			if ref.IsLocal() {
				ref.SetRef(anchor + ref.Ref)
			}
			return walker.Continue
		}),
	)
}

// Extract resolves selectors and builds a child with a default Extractor.
func Extract(selectors []string, anchor string, parent *document.Node) (*document.Node, error) {
	return New().Extract(selectors, anchor, parent)
}

// BuildChild builds a child from operation identifiers with a default
// Extractor.
func BuildChild(ids []string, anchor string, parent *document.Node) (*document.Node, error) {
	return New().BuildChild(ids, anchor, parent)
}
