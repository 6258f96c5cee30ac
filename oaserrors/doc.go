// Package oaserrors provides structured error types for the oaslimbs library.
//
// Import path: github.com/erraggy/oaslimbs/oaserrors
//
// Every failure of selector resolution, extraction, bundling and output
// surfaces as one of these types, so callers can branch with [errors.Is] and
// inspect details with [errors.As].
//
// # Sentinel Errors
//
//   - [ErrUnknownLimb]: Matches [UnknownLimbError]
//   - [ErrUnknownPath]: Matches [UnknownPathError]
//   - [ErrNoOperationForTag]: Matches [NoOperationForTagError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: Matches [ReferenceError] with IsPathTraversal=true
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrInvalidAnchor]: Matches [InvalidAnchorError]
//   - [ErrUnsupportedFormat]: Matches [UnsupportedFormatError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrMultitagsOperations], [ErrNotagOperations]: strict tag partitioning
//
// # Usage Examples
//
//	child, err := subset.Extract(ctx, parent, []string{"pets"})
//	if errors.Is(err, oaserrors.ErrUnknownLimb) {
//	    // The selector named nothing in the parent document
//	}
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("dangling reference: %s\n", refErr.Ref)
//	}
package oaserrors
