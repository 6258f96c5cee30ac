package testutil

import (
	"github.com/google/go-cmp/cmp"

	"github.com/erraggy/oaslimbs/document"
)

// Diff returns a human-readable report of the differences between a and
// b, or "" when they are equal. Object key order is ignored.
func Diff(a, b *document.Node) string {
	return cmp.Diff(a.Interface(), b.Interface())
}
