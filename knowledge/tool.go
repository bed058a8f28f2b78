package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kylemil/thoughtful-support/core/protocol"
	"github.com/kylemil/thoughtful-support/tools"
)

// ToolName is the registered name of the knowledge lookup tool.
const ToolName = "get_thoughtful_ai_info"

// notFoundContent is returned to the model when no entry clears the match
// threshold, prompting it to answer from general knowledge instead.
const notFoundContent = "No specific information found in the knowledge base."

// Tool returns the lookup tool definition presented to the model.
func (s *Store) Tool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolName,
		Description: "Retrieves information about Thoughtful AI's agents (EVA, CAM, PHIL) and their benefits. Use this tool when the user asks about Thoughtful AI, its products, or benefits.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-text question about Thoughtful AI products.",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Handler returns the tool handler backing the definition. A miss is a
// normal result, never a tool error.
func (s *Store) Handler() tools.Handler {
	return func(_ context.Context, raw json.RawMessage) (tools.Result, error) {
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return tools.Result{Content: "invalid arguments: " + err.Error(), IsError: true}, nil
		}
		if args.Query == "" {
			return tools.Result{Content: "query is required", IsError: true}, nil
		}

		result, ok := s.Lookup(args.Query)
		if !ok {
			return tools.Result{Content: notFoundContent}, nil
		}
		return tools.Result{
			Content: fmt.Sprintf("%s: %s", result.Entry.Topic, result.Entry.Description),
		}, nil
	}
}

// RegisterTool adds the lookup tool to the given registry.
func (s *Store) RegisterTool(r *tools.Registry) error {
	return r.Register(s.Tool(), s.Handler())
}
