package document

import (
	"fmt"
	"slices"
)

// Kind identifies the variant held by a Node.
type Kind uint8

const (
	// KindNull is an explicit null (or a nil *Node).
	KindNull Kind = iota
	// KindScalar holds a string, bool or number.
	KindScalar
	// KindObject holds ordered key/value members.
	KindObject
	// KindArray holds an ordered sequence of nodes.
	KindArray
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Node is one node of a document tree: an ordered object, an array, a
// scalar or null. The zero value is a null node.
//
// Objects remember the order in which keys were first set so documents are
// written back in source order.
//
// Concurrency: a Node is not safe for concurrent mutation. Read-only sharing
// of a tree across goroutines is safe.
type Node struct {
	kind   Kind
	keys   []string
	fields map[string]*Node
	items  []*Node
	value  any
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: KindObject, fields: make(map[string]*Node)}
}

// NewArray returns an array node holding items.
func NewArray(items ...*Node) *Node {
	return &Node{kind: KindArray, items: items}
}

// NewScalar returns a scalar node for v. A nil v yields a null node.
// Supported values are string, bool, int, int64, uint64 and float64.
func NewScalar(v any) *Node {
	if v == nil {
		return NewNull()
	}
	if i, ok := v.(int); ok {
		v = int64(i)
	}
	return &Node{kind: KindScalar, value: v}
}

// NewString returns a string scalar node.
func NewString(s string) *Node {
	return &Node{kind: KindScalar, value: s}
}

// NewNull returns a null node.
func NewNull() *Node {
	return &Node{kind: KindNull}
}

// Kind returns the node variant. A nil node is KindNull.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsObject reports whether n is an object.
func (n *Node) IsObject() bool { return n.Kind() == KindObject }

// IsArray reports whether n is an array.
func (n *Node) IsArray() bool { return n.Kind() == KindArray }

// IsScalar reports whether n is a scalar.
func (n *Node) IsScalar() bool { return n.Kind() == KindScalar }

// IsNull reports whether n is null or nil.
func (n *Node) IsNull() bool { return n.Kind() == KindNull }

// Get returns the member named key. It returns false when n is not an
// object or has no such member.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether n is an object with a member named key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Set sets the member named key, appending the key if it is new.
// Set panics if n is not an object.
func (n *Node) Set(key string, v *Node) {
	if !n.IsObject() {
		panic(fmt.Sprintf("document: Set(%q) on %s node", key, n.Kind()))
	}
	if v == nil {
		v = NewNull()
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
}

// Delete removes the member named key and reports whether it existed.
func (n *Node) Delete(key string) bool {
	if !n.IsObject() {
		return false
	}
	if _, ok := n.fields[key]; !ok {
		return false
	}
	delete(n.fields, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
	return true
}

// Keys returns a copy of the object keys in order, or nil for non-objects.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return slices.Clone(n.keys)
}

// Len returns the number of members of an object or items of an array.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindObject:
		return len(n.keys)
	case KindArray:
		return len(n.items)
	default:
		return 0
	}
}

// Items returns the items of an array. The returned slice must not be
// appended to; use Append.
func (n *Node) Items() []*Node {
	if !n.IsArray() {
		return nil
	}
	return n.items
}

// Index returns the i-th item of an array.
func (n *Node) Index(i int) (*Node, bool) {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// SetIndex replaces the i-th item of an array and reports success.
func (n *Node) SetIndex(i int, v *Node) bool {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return false
	}
	if v == nil {
		v = NewNull()
	}
	n.items[i] = v
	return true
}

// Append adds items to an array. Append panics if n is not an array.
func (n *Node) Append(items ...*Node) {
	if !n.IsArray() {
		panic(fmt.Sprintf("document: Append on %s node", n.Kind()))
	}
	n.items = append(n.items, items...)
}

// Value returns the scalar value, or nil for any other kind.
func (n *Node) Value() any {
	if !n.IsScalar() {
		return nil
	}
	return n.value
}

// Str returns the value of a string scalar.
func (n *Node) Str() (string, bool) {
	if !n.IsScalar() {
		return "", false
	}
	s, ok := n.value.(string)
	return s, ok
}

// Clone returns a deep copy of n. The copy shares no mutable state with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindObject:
		cp := &Node{
			kind:   KindObject,
			keys:   slices.Clone(n.keys),
			fields: make(map[string]*Node, len(n.fields)),
		}
		for k, v := range n.fields {
			cp.fields[k] = v.Clone()
		}
		return cp
	case KindArray:
		cp := &Node{kind: KindArray, items: make([]*Node, len(n.items))}
		for i, item := range n.items {
			cp.items[i] = item.Clone()
		}
		return cp
	default:
		// scalar values are immutable
		return &Node{kind: n.kind, value: n.value}
	}
}

// Interface converts n to plain Go values: map[string]any, []any, and the
// scalar types. Key order is lost.
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindObject:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.fields[k].Interface()
		}
		return m
	case KindArray:
		s := make([]any, len(n.items))
		for i, item := range n.items {
			s[i] = item.Interface()
		}
		return s
	case KindScalar:
		return n.value
	default:
		return nil
	}
}

// Equal reports whether a and b are deeply equal. Object key order is
// not significant; array order is.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindScalar:
		return a.value == b.value
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for k, av := range a.fields {
			bv, ok := b.fields[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
