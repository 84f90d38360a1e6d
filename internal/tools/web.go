package tools

import (
	"context"

	"github.com/shopmate-ai/shopmate/internal/agent"
)

// NewWebSearch returns a stub web search tool. It is registered so plans
// can reference it, but returns no live results yet.
// TODO: back this with a real search API once one is provisioned.
func NewWebSearch() agent.Tool {
	return agent.Tool{
		Name:        agent.ToolWebSearch,
		Description: "Search the web (stub, returns no results)",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"q": {"type": "string"},
				"top_k": {"type": "number"}
			},
			"required": ["q"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"results": []any{}}, nil
		},
	}
}
