package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/catalog"
	"github.com/shopmate-ai/shopmate/internal/prompts"
	"github.com/shopmate-ai/shopmate/internal/providers"
)

// NewQueryGenerate returns the text-to-SQL tool. The model is asked for a
// single SELECT wrapped in <SQL></SQL> tags; extraction happens downstream.
func NewQueryGenerate(llm providers.Client) agent.Tool {
	return agent.Tool{
		Name:        agent.ToolQueryGenerate,
		Description: "Generate a SQL query for a natural language question about the catalog",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"question": {"type": "string"}
			},
			"required": ["question"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			question, _ := args["question"].(string)

			system, err := prompts.Render("sql_generate", nil)
			if err != nil {
				return nil, err
			}

			wrapped, err := llm.Complete(ctx, providers.Request{
				System:      system,
				User:        question,
				Temperature: 0.2,
				MaxTokens:   1024,
			})
			if err != nil {
				return nil, fmt.Errorf("SQL generation failed: %w", err)
			}
			return map[string]any{"wrapped": wrapped}, nil
		},
	}
}

// NewQueryRun returns the guarded catalog execution tool.
func NewQueryRun(store *catalog.Store) agent.Tool {
	return agent.Tool{
		Name:        agent.ToolQueryRun,
		Description: "Execute a validated SELECT against the product catalog",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"query": {"type": "string"}
			},
			"required": ["query"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			query, _ := args["query"].(string)
			rows, columns, err := store.Query(ctx, query)
			if err != nil {
				return nil, err
			}
			return map[string]any{"rows": rows, "columns": columns}, nil
		},
	}
}

// NewVerbalize returns the tool that turns tabular results into a
// natural-language answer.
func NewVerbalize(llm providers.Client) agent.Tool {
	return agent.Tool{
		Name:        agent.ToolVerbalize,
		Description: "Describe tabular query results in plain language",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"question": {"type": "string"},
				"data": {"type": "array"}
			},
			"required": ["question", "data"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			question, _ := args["question"].(string)
			data, err := json.Marshal(args["data"])
			if err != nil {
				return nil, fmt.Errorf("failed to encode result data: %w", err)
			}

			system, err := prompts.Render("data_verbalize", nil)
			if err != nil {
				return nil, err
			}

			text, err := llm.Complete(ctx, providers.Request{
				System:      system,
				User:        fmt.Sprintf("QUESTION: %s\nDATA: %s", question, data),
				Temperature: 0.2,
			})
			if err != nil {
				return nil, fmt.Errorf("verbalization failed: %w", err)
			}
			return map[string]any{"text": text}, nil
		},
	}
}
