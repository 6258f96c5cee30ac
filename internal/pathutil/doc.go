// Package pathutil validates output locations supplied by users and MCP
// clients before oaslimbs writes child documents to them.
//
// [SanitizeOutputPath] cleans a file path and refuses symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink or unresolvable path
//	}
//
// [SanitizeOutputDir] applies the same checks to the directory a tag split
// is written into and additionally rejects existing non-directories.
package pathutil
