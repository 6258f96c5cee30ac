package mcpserver

import (
	"context"

	"github.com/erraggy/oaslimbs/selector"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type classifyInput struct {
	Spec  specInput `json:"spec"  jsonschema:"The Swagger 2.0 document to classify limbs against"`
	Limbs []string  `json:"limbs" jsonschema:"Limbs to classify"`
}

type classifyItem struct {
	Limb       string   `json:"limb"`
	Kind       string   `json:"kind,omitempty"`
	Operations []string `json:"operations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type classifyOutput struct {
	Items        []classifyItem `json:"items"`
	UnknownCount int            `json:"unknown_count"`
	Summary      string         `json:"summary"`
}

func handleClassify(_ context.Context, _ *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	if err := checkLimbs(input.Limbs); err != nil {
		return errResult(err), classifyOutput{}, nil
	}
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), classifyOutput{}, nil
	}

	output := classifyOutput{Items: make([]classifyItem, 0, len(input.Limbs))}
	for _, limb := range input.Limbs {
		item := classifyItem{Limb: limb}
		kind, err := selector.Classify(limb, result.Document)
		if err != nil {
			item.Error = err.Error()
			output.UnknownCount++
			output.Items = append(output.Items, item)
			continue
		}
		item.Kind = kind.String()
		// Classify succeeded, so Resolve cannot fail.
		item.Operations, _ = selector.Resolve([]string{limb}, result.Document)
		output.Items = append(output.Items, item)
	}

	output.Summary = "Classified " + formatCount(len(input.Limbs), "limb") + "."
	if output.UnknownCount > 0 {
		output.Summary += " " + formatCount(output.UnknownCount, "unknown limb") + "."
	}
	return nil, output, nil
}
