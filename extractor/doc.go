// Package extractor builds child documents holding a subset of the
// operations of a parent OpenAPI 2.0 document.
//
// A child is built in three steps. Selectors are resolved to operation
// identifiers with the selector package. The parent is cloned, and the
// allow-listed top-level members plus each selected path and operation
// are moved from the clone into a new document. Finally every local
// reference in the child is re-anchored so that it names the parent:
//
//	#/definitions/Pet  ->  parent.json#/definitions/Pet
//
// The child is not self-contained at this point. Pass it to
// bundler.IncludeDependencies to pull the referenced definitions,
// parameters and responses back in.
//
// # Quick Start
//
//	child, err := extractor.Extract([]string{"get /pets", "store"}, "parent.json", parent)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The parent document is never modified.
package extractor
