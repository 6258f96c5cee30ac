package selector

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaslimbs/document"
	"github.com/erraggy/oaslimbs/oaserrors"
)

// Kind is the classification of a selector.
type Kind int

const (
	// KindOperation is a "<method> <path>" selector naming one operation.
	KindOperation Kind = iota + 1
	// KindPath is a selector naming every operation of one path.
	KindPath
	// KindTag is a selector naming every operation carrying a tag.
	KindTag
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOperation:
		return "operation"
	case KindPath:
		return "path"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// OperationID formats the identifier of the operation at method and path.
func OperationID(method, path string) string {
	return method + " " + path
}

// ParseOperationID splits an operation identifier on its first space.
func ParseOperationID(id string) (method, path string, ok bool) {
	method, path, ok = strings.Cut(id, " ")
	if !ok || method == "" || path == "" {
		return "", "", false
	}
	return method, path, true
}

// Classify reports what sel names in doc. Checks run in the order
// operation, path, tag and stop at the first match, so a string that is
// both a path and a tag is a path.
func Classify(sel string, doc *document.Node) (Kind, error) {
	switch {
	case IsOperation(sel, doc):
		return KindOperation, nil
	case IsPath(sel, doc):
		return KindPath, nil
	case IsTag(sel, doc):
		return KindTag, nil
	default:
		return 0, &oaserrors.UnknownLimbError{Limb: sel}
	}
}

// IsPath reports whether sel starts with '/' and is a key of doc.paths.
func IsPath(sel string, doc *document.Node) bool {
	if !strings.HasPrefix(sel, "/") {
		return false
	}
	return paths(doc).Has(sel)
}

// IsOperation reports whether sel is "<method> <path>" where method is an
// HTTP verb that the path item at path defines.
func IsOperation(sel string, doc *document.Node) bool {
	method, path, ok := ParseOperationID(sel)
	if !ok || !document.IsHTTPMethod(method) || !IsPath(path, doc) {
		return false
	}
	item, _ := paths(doc).Get(path)
	return item.Has(method)
}

// IsTag reports whether any operation in doc carries tag.
func IsTag(tag string, doc *document.Node) bool {
	found := false
	eachOperation(doc, func(op Operation) bool {
		if op.HasTag(tag) {
			found = true
			return false
		}
		return true
	})
	return found
}

// OperationsForPath returns the identifiers of every operation of path,
// in document order.
func OperationsForPath(path string, doc *document.Node) ([]string, error) {
	item, ok := paths(doc).Get(path)
	if !ok {
		return nil, &oaserrors.UnknownPathError{Path: path}
	}
	var ids []string
	for _, key := range item.Keys() {
		if document.IsHTTPMethod(key) {
			ids = append(ids, OperationID(key, path))
		}
	}
	return ids, nil
}

// OperationsForTag returns the identifiers of every operation carrying
// tag, in document order.
func OperationsForTag(tag string, doc *document.Node) ([]string, error) {
	var ids []string
	eachOperation(doc, func(op Operation) bool {
		if op.HasTag(tag) {
			ids = append(ids, op.ID())
		}
		return true
	})
	if len(ids) == 0 {
		return nil, &oaserrors.NoOperationForTagError{Tag: tag}
	}
	return ids, nil
}

// Resolve expands selectors into operation identifiers, concatenating the
// expansion of each selector in order. The first selector that cannot be
// resolved aborts the call.
//
// An operation named by two selectors appears twice; building a child from
// the result is unaffected since the second copy overwrites the first.
func Resolve(selectors []string, doc *document.Node) ([]string, error) {
	var ids []string
	for _, sel := range selectors {
		kind, err := Classify(sel, doc)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindOperation:
			ids = append(ids, sel)
		case KindPath:
			ops, err := OperationsForPath(sel, doc)
			if err != nil {
				return nil, err
			}
			ids = append(ids, ops...)
		case KindTag:
			ops, err := OperationsForTag(sel, doc)
			if err != nil {
				return nil, err
			}
			ids = append(ids, ops...)
		}
	}
	return ids, nil
}

func paths(doc *document.Node) *document.Node {
	p, _ := doc.Get("paths")
	return p
}
