package document

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Pointer is a parsed JSON Pointer (RFC 6901) made of unescaped tokens.
// The empty pointer addresses the document root.
type Pointer []string

// ParsePointer parses a URI-fragment pointer such as "#/definitions/Pet".
// Tokens are percent-decoded and then unescaped (~1 is '/', ~0 is '~').
func ParsePointer(s string) (Pointer, error) {
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("document: pointer %q must start with '#'", s)
	}
	s = strings.TrimPrefix(s, "#")
	if s == "" || s == "/" {
		return Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("document: pointer %q must start with '#/'", "#"+s)
	}
	parts := strings.Split(s[1:], "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		p[i] = UnescapeToken(part)
	}
	return p, nil
}

// MustParsePointer is like ParsePointer but panics on error.
// It is intended for constant pointers in tests and initializers.
func MustParsePointer(s string) Pointer {
	p, err := ParsePointer(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the "#"-prefixed pointer with escaped tokens.
func (p Pointer) String() string {
	if len(p) == 0 {
		return "#"
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// Child returns a new pointer with tok appended.
func (p Pointer) Child(tok string) Pointer {
	cp := make(Pointer, len(p), len(p)+1)
	copy(cp, p)
	return append(cp, tok)
}

// EscapeToken escapes a reference token per RFC 6901.
func EscapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// UnescapeToken unescapes a reference token per RFC 6901.
func UnescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// Lookup returns the node p addresses in root.
func Lookup(root *Node, p Pointer) (*Node, error) {
	current := root
	for i, tok := range p {
		switch current.Kind() {
		case KindObject:
			next, ok := current.Get(tok)
			if !ok {
				return nil, fmt.Errorf("document: %s not found (missing key: %s)", p[:i+1], tok)
			}
			current = next
		case KindArray:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("document: invalid array index %q in %s", tok, p[:i+1])
			}
			next, ok := current.Index(idx)
			if !ok {
				return nil, fmt.Errorf("document: array index %d out of bounds (length %d) in %s", idx, current.Len(), p[:i+1])
			}
			current = next
		default:
			return nil, fmt.Errorf("document: cannot traverse into %s at %s", current.Kind(), p[:i])
		}
	}
	return current, nil
}

// SetAt stores v at the location p addresses in root, creating missing
// intermediate objects. The root itself cannot be replaced.
func SetAt(root *Node, p Pointer, v *Node) error {
	if len(p) == 0 {
		return fmt.Errorf("document: cannot replace the document root")
	}
	current := root
	for i, tok := range p[:len(p)-1] {
		switch current.Kind() {
		case KindObject:
			next, ok := current.Get(tok)
			if !ok || next.IsNull() {
				next = NewObject()
				current.Set(tok, next)
			}
			current = next
		case KindArray:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("document: invalid array index %q in %s", tok, p[:i+1])
			}
			next, ok := current.Index(idx)
			if !ok {
				return fmt.Errorf("document: array index %d out of bounds (length %d) in %s", idx, current.Len(), p[:i+1])
			}
			current = next
		default:
			return fmt.Errorf("document: cannot create %s under %s", p, current.Kind())
		}
	}

	last := p[len(p)-1]
	switch current.Kind() {
	case KindObject:
		current.Set(last, v)
		return nil
	case KindArray:
		idx, err := strconv.Atoi(last)
		if err != nil {
			return fmt.Errorf("document: invalid array index %q in %s", last, p)
		}
		if !current.SetIndex(idx, v) {
			return fmt.Errorf("document: array index %d out of bounds (length %d) in %s", idx, current.Len(), p)
		}
		return nil
	default:
		return fmt.Errorf("document: cannot set %s under %s", p, current.Kind())
	}
}
