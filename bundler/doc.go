// Package bundler pulls externally referenced nodes into a document.
//
// Bundle walks a document and, for every reference of the form
// "<file>#<pointer>" whose file is accepted, copies the node it points to
// into the document at the same pointer and rewrites the reference to the
// local "#<pointer>". Nodes pulled in this way are bundled in turn, so the
// result is closed under reference reachability. References into files
// that are not accepted are left untouched.
//
// IncludeDependencies is the usual entry point after extraction. It
// publishes the parent document under the anchor name, resolves the
// child's references against it and bundles with the anchor as the only
// accepted file:
//
//	child, _ := extractor.Extract(selectors, "parent.json", parent)
//	if err := bundler.IncludeDependencies(ctx, child, "parent.json", parent); err != nil {
//		return err
//	}
//
// # Cycles
//
// Each (file, pointer) pair is fetched at most once per Bundle call. A
// reference back to a pair that is still being bundled is rewritten to
// its local pointer and not followed again, so self-referential and
// mutually recursive definitions terminate.
//
// Only the pointer is kept when a node is materialised. Two accepted files
// that both define "#/definitions/X" collide and the first one wins.
package bundler
