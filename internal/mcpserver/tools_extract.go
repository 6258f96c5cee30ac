package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslimbs/internal/pathutil"
	"github.com/erraggy/oaslimbs/parser"
	"github.com/erraggy/oaslimbs/selector"
	"github.com/erraggy/oaslimbs/subset"
	"github.com/erraggy/oaslimbs/writer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type extractInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The Swagger 2.0 document to extract from"`
	Limbs      []string  `json:"limbs"                jsonschema:"Operations (get /pets), paths (/pets) or tags (pets) to extract"`
	Anchor     string    `json:"anchor,omitempty"     jsonschema:"File name that references to the parent resolve against. Defaults to OASLIMBS_DEFAULT_ANCHOR"`
	Format     string    `json:"format,omitempty"     jsonschema:"Output format: json or yaml. Defaults to OASLIMBS_DEFAULT_FORMAT"`
	Properties []string  `json:"properties,omitempty" jsonschema:"Top-level properties copied from the parent. Defaults to swagger, info, host, basePath and the other document-wide members"`
	Output     string    `json:"output,omitempty"     jsonschema:"File path to write the child document. If omitted the result is returned inline."`
}

type extractOutput struct {
	Operations []string `json:"operations"`
	Stats      docStats `json:"stats"`
	Format     string   `json:"format"`
	WrittenTo  string   `json:"written_to,omitempty"`
	Document   string   `json:"document,omitempty"`
	Summary    string   `json:"summary"`
}

func handleExtract(ctx context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	if err := checkLimbs(input.Limbs); err != nil {
		return errResult(err), extractOutput{}, nil
	}
	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	opts := []subset.Option{
		subset.WithAnchor(resolveAnchor(input.Anchor)),
		subset.WithResolverOptions(subset.SourceResolverOptions(result)...),
	}
	if len(input.Properties) > 0 {
		opts = append(opts, subset.WithProperties(input.Properties...))
	}

	child, err := subset.Extract(ctx, result.Document, input.Limbs, opts...)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	ops := selector.Operations(child)
	output := extractOutput{
		Operations: make([]string, 0, len(ops)),
		Stats:      newDocStats(parser.GetDocumentStats(child)),
		Format:     string(format),
	}
	for _, op := range ops {
		output.Operations = append(output.Operations, op.ID())
	}
	output.Summary = buildExtractSummary(output.Stats)

	if input.Output != "" {
		cleanPath, pathErr := pathutil.SanitizeOutputPath(input.Output)
		if pathErr != nil {
			return errResult(fmt.Errorf("invalid output path: %w", pathErr)), extractOutput{}, nil
		}
		if err := writer.WriteFile(cleanPath, child, format); err != nil {
			return errResult(err), extractOutput{}, nil
		}
		output.WrittenTo = cleanPath
		return nil, output, nil
	}

	data, err := writer.Marshal(child, format)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

func buildExtractSummary(s docStats) string {
	return "Extracted " + formatCount(s.OperationCount, "operation") +
		" across " + formatCount(s.PathCount, "path") +
		" with " + formatCount(s.DefinitionCount, "definition") + "."
}
