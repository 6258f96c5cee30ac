package parser

import "github.com/erraggy/oaslimbs/document"

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount       int // Number of paths defined
	OperationCount  int // Total number of operations across all paths
	DefinitionCount int // Number of definitions
	ParameterCount  int // Number of top-level parameters
	ResponseCount   int // Number of top-level responses
	TagCount        int // Number of declared tags
}

// GetDocumentStats returns statistics for a document tree
func GetDocumentStats(doc *document.Node) DocumentStats {
	stats := DocumentStats{
		DefinitionCount: sectionLen(doc, "definitions"),
		ParameterCount:  sectionLen(doc, "parameters"),
		ResponseCount:   sectionLen(doc, "responses"),
		TagCount:        sectionLen(doc, "tags"),
	}

	paths, _ := doc.Get("paths")
	for _, p := range paths.Keys() {
		if document.IsVendorExtensionKey(p) {
			continue
		}
		stats.PathCount++
		item, _ := paths.Get(p)
		for _, key := range item.Keys() {
			if document.IsHTTPMethod(key) {
				stats.OperationCount++
			}
		}
	}
	return stats
}

func sectionLen(doc *document.Node, name string) int {
	section, _ := doc.Get(name)
	return section.Len()
}
