package selector

import (
	"slices"

	"github.com/erraggy/oaslimbs/document"
)

// Operation is one HTTP-method entry of a path item.
type Operation struct {
	Method string
	Path   string
	// Tags holds the operation's string tags in order. Non-string entries
	// are ignored.
	Tags []string
	Node *document.Node
}

// ID returns the "<method> <path>" identifier of the operation.
func (o Operation) ID() string {
	return OperationID(o.Method, o.Path)
}

// HasTag reports whether the operation carries tag exactly.
func (o Operation) HasTag(tag string) bool {
	return slices.Contains(o.Tags, tag)
}

// Multitags reports whether the operation carries more than one tag.
func (o Operation) Multitags() bool {
	return len(o.Tags) > 1
}

// Operations returns every operation of doc in document order.
func Operations(doc *document.Node) []Operation {
	var ops []Operation
	eachOperation(doc, func(op Operation) bool {
		ops = append(ops, op)
		return true
	})
	return ops
}

// eachOperation calls fn for each operation in document order until fn
// returns false.
func eachOperation(doc *document.Node, fn func(Operation) bool) {
	p := paths(doc)
	for _, path := range p.Keys() {
		item, _ := p.Get(path)
		for _, method := range item.Keys() {
			if !document.IsHTTPMethod(method) {
				continue
			}
			node, _ := item.Get(method)
			if !fn(Operation{Method: method, Path: path, Tags: tagsOf(node), Node: node}) {
				return
			}
		}
	}
}

func tagsOf(op *document.Node) []string {
	list, _ := op.Get("tags")
	var tags []string
	for _, item := range list.Items() {
		if s, ok := item.Str(); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// TagOperations groups the operations carrying one tag.
type TagOperations struct {
	Tag        string
	Operations []Operation
}

// TagsOperations groups operations by tag. Tags appear in the order they
// are first seen on an operation, and an operation with several tags is
// listed under each of them.
func TagsOperations(doc *document.Node) []TagOperations {
	var groups []TagOperations
	index := make(map[string]int)
	eachOperation(doc, func(op Operation) bool {
		for _, tag := range op.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(groups)
				index[tag] = i
				groups = append(groups, TagOperations{Tag: tag})
			}
			groups[i].Operations = append(groups[i].Operations, op)
		}
		return true
	})
	return groups
}

// Tags returns the tags used by operations, in first-seen order.
func Tags(doc *document.Node) []string {
	groups := TagsOperations(doc)
	tags := make([]string, len(groups))
	for i, g := range groups {
		tags[i] = g.Tag
	}
	return tags
}

// NotagOperations returns the operations with an absent or empty tags list.
func NotagOperations(doc *document.Node) []Operation {
	var ops []Operation
	eachOperation(doc, func(op Operation) bool {
		if len(op.Tags) == 0 {
			ops = append(ops, op)
		}
		return true
	})
	return ops
}

// MultitagsOperations returns the operations carrying more than one tag.
func MultitagsOperations(doc *document.Node) []Operation {
	var ops []Operation
	eachOperation(doc, func(op Operation) bool {
		if op.Multitags() {
			ops = append(ops, op)
		}
		return true
	})
	return ops
}
