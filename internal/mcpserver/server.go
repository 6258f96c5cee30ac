// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oaslimbs extraction as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/erraggy/oaslimbs"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/writer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oaslimbs MCP server: extracts self-contained subsets ("limbs") of Swagger 2.0 documents.

A limb is an operation ("get /pets"), a path ("/pets") or a tag ("pets"). Use limbs to list the tags of a document, classify to check what a limb names, extract to build one child document and split_tags to build one child per tag.

Configuration: all defaults are configurable via OASLIMBS_* environment variables set in your MCP client config.

Key settings:
- OASLIMBS_DEFAULT_FORMAT (default: yaml): output format when none is given
- OASLIMBS_DEFAULT_ANCHOR (default: parent.json): file name external references point at
- OASLIMBS_MAX_LIMBS (default: 100): maximum limbs per extract or classify call
- OASLIMBS_CONCURRENCY (default: 4): parallel buckets in split_tags
- OASLIMBS_CACHE_FILE_TTL (default: 15m), OASLIMBS_CACHE_URL_TTL (default: 5m)
- OASLIMBS_ALLOW_PRIVATE_IPS (default: false): allow URL inputs on private networks

Caching: parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change).`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaslimbs", Version: oaslimbs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract a self-contained child document from a Swagger 2.0 document. Limbs select operations (\"get /pets\"), paths (\"/pets\") or tags (\"pets\"). The child keeps the top-level properties of the parent and every definition, parameter and response its operations reference. Use output to write to a file instead of returning inline. Default format and anchor are configurable via OASLIMBS_DEFAULT_FORMAT and OASLIMBS_DEFAULT_ANCHOR.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "split_tags",
		Description: "Split a Swagger 2.0 document into one child document per tag, plus a bucket for untagged operations. Operations with several tags appear in each of their buckets. Use multitags_error or notag_error to fail on such operations instead. Use output_dir to write one file per bucket; otherwise documents are returned inline only when include_documents is set.",
	}, handleSplitTags)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify",
		Description: "Classify limbs against a Swagger 2.0 document. Reports whether each limb names an operation, a path or a tag, and the operations it expands to. Unknown limbs are reported per item rather than failing the call.",
	}, handleClassify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "limbs",
		Description: "List the tags of a Swagger 2.0 document with their operations, plus the untagged operations and the operations carrying several tags. Use offset/limit to paginate through tags.",
	}, handleLimbs)
}

// resolveFormat returns the requested format, or the configured default.
func resolveFormat(s string) (writer.Format, error) {
	if s == "" {
		return cfg.DefaultFormat, nil
	}
	return writer.ParseFormat(s)
}

// resolveAnchor returns the requested anchor, or the configured default.
func resolveAnchor(s string) string {
	if s == "" {
		return cfg.DefaultAnchor
	}
	return s
}

// checkLimbs validates the number of limbs in a request.
func checkLimbs(limbs []string) error {
	if len(limbs) == 0 {
		return fmt.Errorf("at least one limb is required")
	}
	if len(limbs) > cfg.MaxLimbs {
		return fmt.Errorf("too many limbs: got %d, maximum is %d; set OASLIMBS_MAX_LIMBS to increase",
			len(limbs), cfg.MaxLimbs)
	}
	return nil
}

// docStats is the document summary reported by the tools.
type docStats struct {
	PathCount       int `json:"path_count"`
	OperationCount  int `json:"operation_count"`
	DefinitionCount int `json:"definition_count"`
	ParameterCount  int `json:"parameter_count"`
	ResponseCount   int `json:"response_count"`
}

func newDocStats(s parser.DocumentStats) docStats {
	return docStats{
		PathCount:       s.PathCount,
		OperationCount:  s.OperationCount,
		DefinitionCount: s.DefinitionCount,
		ParameterCount:  s.ParameterCount,
		ResponseCount:   s.ResponseCount,
	}
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
