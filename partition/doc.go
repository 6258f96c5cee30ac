// Package partition splits a document into one child per tag.
//
// Limbs groups the operations of a document by tag and returns one
// subset.Bucket per tag, named by Slug(tag), plus an optional bucket for
// operations without tags. Split extracts every bucket with
// subset.ExtractMany.
//
// Operations with several tags land in every bucket they are tagged for.
// Config.MultitagsError turns that into a *MultitagsOperationsError, and
// Config.NotagError does the same for untagged operations. Both checks run
// before any extraction.
//
//	results, err := partition.Split(ctx, parent, partition.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	for _, r := range results {
//		fmt.Println(r.Name, r.Stats.OperationCount)
//	}
package partition
