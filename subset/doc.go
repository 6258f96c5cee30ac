// Package subset runs the whole extraction pipeline: resolve selectors,
// build the child, and bundle the child's dependencies back in.
//
// Extract produces one self-contained child. ExtractMany produces one child
// per named bucket of selectors, running the buckets concurrently; each
// bucket's child is anchored on the bucket name. The first failing bucket
// cancels the others and its error is returned, so a batch either succeeds
// as a whole or returns no documents.
//
//	child, err := subset.Extract(ctx, parent, []string{"get /pets", "/store/orders"})
//
//	results, err := subset.ExtractMany(ctx, parent, []subset.Bucket{
//		{Name: "pets", Selectors: []string{"pets"}},
//		{Name: "store", Selectors: []string{"store"}},
//	}, subset.WithConcurrency(4))
//
// The parent is only read, so one parent may be shared by any number of
// concurrent calls.
package subset
