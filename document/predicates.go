package document

import (
	"slices"
	"strings"
)

// RefKey is the member name that makes an object a reference node.
const RefKey = "$ref"

// HTTPMethods lists the operation keys of a path item, in the order they
// are enumerated when no document order is available.
var HTTPMethods = []string{"get", "put", "post", "delete", "head", "options", "patch"}

// IsHTTPMethod reports whether key names an operation of a path item.
func IsHTTPMethod(key string) bool {
	return slices.Contains(HTTPMethods, key)
}

// IsVendorExtensionKey reports whether key is a specification extension (x-*).
func IsVendorExtensionKey(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// IsReference reports whether n is an object with a string $ref member.
func IsReference(n *Node) bool {
	_, ok := RefString(n)
	return ok
}

// RefString returns the $ref value of a reference node.
func RefString(n *Node) (string, bool) {
	v, ok := n.Get(RefKey)
	if !ok {
		return "", false
	}
	return v.Str()
}

// IsLocalRef reports whether ref points into the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// SplitRef splits a reference into its file part and its "#"-prefixed
// pointer part. A ref without '#' is a whole-document reference and has
// pointer "#".
func SplitRef(ref string) (file, pointer string) {
	file, fragment, found := strings.Cut(ref, "#")
	if !found {
		return file, "#"
	}
	return file, "#" + fragment
}
