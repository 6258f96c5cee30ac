package walker

import (
	"fmt"
	"slices"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
)

// DefaultMaxDepth is the nesting depth at which a walk is aborted.
const DefaultMaxDepth = 500

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// NodeHandler is called for every node, before any more specific handler.
type NodeHandler func(node *document.Node, path string) Action

// ExtensionHandler is called for each x-* member of an object. Returning
// SkipChildren leaves the extension value unvisited.
type ExtensionHandler func(key string, value *document.Node, path string) Action

// Walker traverses document trees and calls handlers for each node.
type Walker struct {
	onNode      NodeHandler
	onRef       RefHandler
	onExtension ExtensionHandler

	maxDepth int
	stopped  bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: DefaultMaxDepth,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithNodeHandler sets the handler called for every node.
func WithNodeHandler(fn NodeHandler) Option {
	return func(w *Walker) { w.onNode = fn }
}

// WithRefHandler sets the handler called for each reference object.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) { w.onRef = fn }
}

// WithExtensionHandler sets the handler called for vendor extension members.
func WithExtensionHandler(fn ExtensionHandler) Option {
	return func(w *Walker) { w.onExtension = fn }
}

// WithMaxDepth sets the maximum nesting depth.
// If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses root and calls the registered handlers for each node.
// It returns a *oaserrors.ResourceLimitError when the tree is nested
// deeper than the configured maximum.
func Walk(root *document.Node, opts ...Option) error {
	if root == nil {
		return fmt.Errorf("walker: nil document")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.Walk(root)
}

// Walk traverses root with the walker's handlers.
func (w *Walker) Walk(root *document.Node) error {
	w.stopped = false
	return w.visit(root, "#", 0)
}

func (w *Walker) visit(n *document.Node, path string, depth int) error {
	if w.stopped {
		return nil
	}
	if depth > w.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(w.maxDepth),
			Actual:       int64(depth),
			Message:      fmt.Sprintf("document nested deeper than %d levels at %s", w.maxDepth, path),
		}
	}

	keys := n.Keys()
	items := slices.Clone(n.Items())

	if w.onNode != nil && !w.handleAction(w.onNode(n, path)) {
		return nil
	}

	if w.onRef != nil {
		if ref, ok := document.RefString(n); ok {
			info := &RefInfo{Ref: ref, SourcePath: path, Node: n}
			if !w.handleAction(w.onRef(info)) {
				return nil
			}
		}
	}

	switch n.Kind() {
	case document.KindObject:
		for _, key := range keys {
			child, ok := n.Get(key)
			if !ok {
				// removed by an earlier handler
				continue
			}
			childPath := path + "/" + document.EscapeToken(key)
			if w.onExtension != nil && document.IsVendorExtensionKey(key) {
				if !w.handleAction(w.onExtension(key, child, childPath)) {
					if w.stopped {
						return nil
					}
					continue
				}
			}
			if err := w.visit(child, childPath, depth+1); err != nil {
				return err
			}
			if w.stopped {
				return nil
			}
		}
	case document.KindArray:
		for i, item := range items {
			if err := w.visit(item, fmt.Sprintf("%s/%d", path, i), depth+1); err != nil {
				return err
			}
			if w.stopped {
				return nil
			}
		}
	}
	return nil
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
