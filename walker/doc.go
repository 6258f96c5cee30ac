// Package walker provides a generic traversal API for document trees.
//
// The walker visits every node of a [document.Node] tree in document order
// and dispatches to handlers for the node shapes that matter to reference
// processing: reference objects ({"$ref": ...}), vendor extension members
// (x-*) and, optionally, every node.
//
// # Quick Start
//
// Collect every reference in a document:
//
//	var refs []string
//	err := walker.Walk(doc,
//	    walker.WithRefHandler(func(ref *walker.RefInfo) walker.Action {
//	        refs = append(refs, ref.Ref)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Mutation
//
// Handlers may mutate the node they receive. Object keys and array items
// are snapshotted before a node's children are visited, so members added
// by a handler are not visited and removed members are skipped.
//
// # Paths
//
// Every handler receives the JSON Pointer of the node in URI-fragment form,
// for example "#/paths/~1pets/get".
package walker
