// Package resolver holds the documents that references may point into and
// verifies that every reference reachable from a root document resolves.
//
// A [Context] maps logical document names to trees. The root document is
// registered under [RootName]; other documents are published with
// [Context.Register] or loaded on demand through a [Loader]. Registration
// never touches the filesystem, which lets a caller address an in-memory
// parent document as "parent.json" from a child document.
//
//	ctx := resolver.New(child)
//	ctx.Register("parent.json", parent)
//	if err := ctx.Resolve(context.Background()); err != nil {
//	    // a dangling pointer or an unreachable document
//	}
//	pet, err := ctx.Get(context.Background(), "parent.json", "#/definitions/Pet")
//
// Failures are reported as *oaserrors.ReferenceError. Loading files through
// [WithBaseDir] rejects references that escape the base directory, and the
// number of held documents is bounded by [MaxCachedDocuments].
package resolver
