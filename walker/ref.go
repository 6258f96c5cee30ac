package walker

import "github.com/erraggy/oaslimbs/document"

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/definitions/Pet")
	Ref string

	// SourcePath is the JSON Pointer of the reference object
	SourcePath string

	// Node is the reference object itself. Handlers may rewrite its $ref.
	Node *document.Node
}

// IsLocal reports whether the reference points into the same document.
func (r *RefInfo) IsLocal() bool {
	return document.IsLocalRef(r.Ref)
}

// SetRef replaces the $ref value of the reference object.
func (r *RefInfo) SetRef(ref string) {
	r.Ref = ref
	r.Node.Set(document.RefKey, document.NewString(ref))
}

// RefHandler is called when a $ref is encountered during traversal.
// Return Stop to halt traversal, Continue to proceed.
type RefHandler func(ref *RefInfo) Action

// RefCollector holds references collected during a walk.
type RefCollector struct {
	// All contains all references in traversal order.
	All []*RefInfo

	// Local contains references into the same document.
	Local []*RefInfo

	// ByFile groups references to other documents by file name.
	ByFile map[string][]*RefInfo
}

// Files returns the referenced file names in first-seen order.
func (c *RefCollector) Files() []string {
	var files []string
	seen := make(map[string]bool, len(c.ByFile))
	for _, ref := range c.All {
		if ref.IsLocal() {
			continue
		}
		file, _ := document.SplitRef(ref.Ref)
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}
	return files
}

// CollectRefs walks root and collects every reference.
func CollectRefs(root *document.Node) (*RefCollector, error) {
	collector := &RefCollector{
		ByFile: make(map[string][]*RefInfo),
	}
	err := Walk(root,
		WithRefHandler(func(ref *RefInfo) Action {
			collector.All = append(collector.All, ref)
			if ref.IsLocal() {
				collector.Local = append(collector.Local, ref)
			} else {
				file, _ := document.SplitRef(ref.Ref)
				collector.ByFile[file] = append(collector.ByFile[file], ref)
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}
