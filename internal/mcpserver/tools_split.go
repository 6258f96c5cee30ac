package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslimbs/internal/pathutil"
	"github.com/erraggy/oaslimbs/partition"
	"github.com/erraggy/oaslimbs/subset"
	"github.com/erraggy/oaslimbs/writer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type splitInput struct {
	Spec             specInput `json:"spec"                        jsonschema:"The Swagger 2.0 document to split"`
	MultitagsError   bool      `json:"multitags_error,omitempty"   jsonschema:"Fail when an operation carries more than one tag"`
	NotagError       bool      `json:"notag_error,omitempty"       jsonschema:"Fail when an operation carries no tag"`
	NoNotag          bool      `json:"no_notag,omitempty"          jsonschema:"Do not build a bucket for untagged operations"`
	NotagName        string    `json:"notag_name,omitempty"        jsonschema:"Name of the bucket for untagged operations (default: default)"`
	Format           string    `json:"format,omitempty"            jsonschema:"Output format: json or yaml. Defaults to OASLIMBS_DEFAULT_FORMAT"`
	OutputDir        string    `json:"output_dir,omitempty"        jsonschema:"Directory to write one file per bucket"`
	IncludeDocuments bool      `json:"include_documents,omitempty" jsonschema:"Return each bucket document inline"`
}

type splitBucket struct {
	Name     string   `json:"name"`
	Limbs    []string `json:"limbs"`
	Stats    docStats `json:"stats"`
	File     string   `json:"file,omitempty"`
	Document string   `json:"document,omitempty"`
}

type splitOutput struct {
	BucketCount int           `json:"bucket_count"`
	Buckets     []splitBucket `json:"buckets,omitempty"`
	Format      string        `json:"format"`
	Summary     string        `json:"summary"`
}

func handleSplitTags(ctx context.Context, _ *mcp.CallToolRequest, input splitInput) (*mcp.CallToolResult, splitOutput, error) {
	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	var outDir string
	if input.OutputDir != "" {
		outDir, err = pathutil.SanitizeOutputDir(input.OutputDir)
		if err != nil {
			return errResult(fmt.Errorf("invalid output directory: %w", err)), splitOutput{}, nil
		}
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	pcfg := partition.DefaultConfig()
	pcfg.MultitagsError = input.MultitagsError
	pcfg.NotagError = input.NotagError
	pcfg.IncludeNotag = !input.NoNotag
	if input.NotagName != "" {
		pcfg.NotagName = input.NotagName
	}

	buckets, err := partition.Limbs(result.Document, pcfg)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}
	results, err := subset.ExtractMany(ctx, result.Document, buckets,
		subset.WithConcurrency(cfg.Concurrency),
		subset.WithResolverOptions(subset.SourceResolverOptions(result)...),
	)
	if err != nil {
		return errResult(err), splitOutput{}, nil
	}

	var files []string
	if outDir != "" {
		files, err = writer.WriteDir(outDir, results, format)
		if err != nil {
			return errResult(err), splitOutput{}, nil
		}
	}

	output := splitOutput{
		BucketCount: len(results),
		Buckets:     makeSlice[splitBucket](len(results)),
		Format:      string(format),
	}
	for i, r := range results {
		b := splitBucket{
			Name:  r.Name,
			Limbs: buckets[i].Selectors,
			Stats: newDocStats(r.Stats),
		}
		if files != nil {
			b.File = files[i]
		}
		if input.IncludeDocuments {
			data, err := writer.Marshal(r.Document, format)
			if err != nil {
				return errResult(err), splitOutput{}, nil
			}
			b.Document = string(data)
		}
		output.Buckets = append(output.Buckets, b)
	}
	output.Summary = buildSplitSummary(output, outDir)

	return nil, output, nil
}

func buildSplitSummary(output splitOutput, dir string) string {
	summary := "Split document into " + formatCount(output.BucketCount, "bucket") + "."
	if dir != "" {
		summary += " Wrote " + formatCount(output.BucketCount, "file") + "."
	}
	return summary
}
