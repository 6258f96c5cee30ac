// Package selector classifies and expands selectors ("limbs") against a
// Swagger 2.0 document.
//
// A selector names one of:
//
//   - an operation, as "<method> <path>" (for example "get /pets")
//   - a path, as a key of the document's paths member (for example "/pets")
//   - a tag, as any string listed in some operation's tags
//
// [Classify] checks the three forms in that order and stops at the first
// match. [Resolve] expands a list of selectors into operation identifiers,
// failing fast with *oaserrors.UnknownLimbError, *oaserrors.UnknownPathError
// or *oaserrors.NoOperationForTagError.
//
// The package also enumerates operations by tag ([TagsOperations],
// [NotagOperations], [MultitagsOperations]) for tag partitioning.
package selector
