package mcpserver

import (
	"context"

	"github.com/erraggy/oaslimbs/partition"
	"github.com/erraggy/oaslimbs/selector"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type limbsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The Swagger 2.0 document to list limbs of"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N tags"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of tags to return (default: OASLIMBS_LIST_LIMIT)"`
}

type tagLimb struct {
	Tag        string   `json:"tag"`
	Bucket     string   `json:"bucket"`
	Operations []string `json:"operations"`
}

type limbsOutput struct {
	TagCount  int       `json:"tag_count"`
	Returned  int       `json:"returned"`
	Tags      []tagLimb `json:"tags,omitempty"`
	Notag     []string  `json:"notag,omitempty"`
	Multitags []string  `json:"multitags,omitempty"`
	Summary   string    `json:"summary"`
}

func handleLimbs(_ context.Context, _ *mcp.CallToolRequest, input limbsInput) (*mcp.CallToolResult, limbsOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), limbsOutput{}, nil
	}
	doc := result.Document

	groups := selector.TagsOperations(doc)
	page := paginate(groups, input.Offset, input.Limit)

	output := limbsOutput{
		TagCount:  len(groups),
		Returned:  len(page),
		Tags:      makeSlice[tagLimb](len(page)),
		Notag:     operationIDs(selector.NotagOperations(doc)),
		Multitags: operationIDs(selector.MultitagsOperations(doc)),
	}
	for _, g := range page {
		output.Tags = append(output.Tags, tagLimb{
			Tag:        g.Tag,
			Bucket:     partition.Slug(g.Tag),
			Operations: operationIDs(g.Operations),
		})
	}

	output.Summary = "Found " + formatCount(output.TagCount, "tag") +
		", " + formatCount(len(output.Notag), "untagged operation") +
		" and " + formatCount(len(output.Multitags), "multi-tag operation") + "."
	return nil, output, nil
}

func operationIDs(ops []selector.Operation) []string {
	ids := makeSlice[string](len(ops))
	for _, op := range ops {
		ids = append(ids, op.ID())
	}
	return ids
}
