package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/faq"
	"github.com/shopmate-ai/shopmate/internal/prompts"
	"github.com/shopmate-ai/shopmate/internal/providers"
)

const defaultKnowledgeK = 3

// NewKnowledgeSearch returns the FAQ retrieval tool.
func NewKnowledgeSearch(index *faq.Index) agent.Tool {
	return agent.Tool{
		Name:        agent.ToolKnowledgeSearch,
		Description: "Retrieve the top-k FAQ entries relevant to the query",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"query": {"type": "string"},
				"k": {"type": "number"}
			},
			"required": ["query"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			query, _ := args["query"].(string)
			k := defaultKnowledgeK
			switch raw := args["k"].(type) {
			case float64:
				if raw > 0 {
					k = int(raw)
				}
			case int:
				if raw > 0 {
					k = raw
				}
			}
			items, err := index.Search(query, k)
			if err != nil {
				return nil, err
			}
			return map[string]any{"items": items}, nil
		},
	}
}

// NewKnowledgeAnswer returns the grounded FAQ answering tool. The answer
// is produced strictly from the retrieved context.
func NewKnowledgeAnswer(llm providers.Client) agent.Tool {
	return agent.Tool{
		Name:        agent.ToolKnowledgeAnswer,
		Description: "Answer the question using only the provided FAQ context",
		SchemaJSON: `{
			"type": "object",
			"properties": {
				"question": {"type": "string"},
				"context": {"type": "array"}
			},
			"required": ["question", "context"]
		}`,
		Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			question, _ := args["question"].(string)
			blob := contextBlob(args["context"])

			prompt, err := prompts.Render("faq_answer", map[string]string{
				"question": question,
				"context":  blob,
			})
			if err != nil {
				return nil, err
			}

			text, err := llm.Complete(ctx, providers.Request{User: prompt})
			if err != nil {
				return nil, fmt.Errorf("FAQ answer generation failed: %w", err)
			}
			return map[string]any{"text": text}, nil
		},
	}
}

// contextBlob concatenates the answer fields of retrieved entries.
func contextBlob(raw any) string {
	var answers []string
	switch items := raw.(type) {
	case []agent.KnowledgeItem:
		for _, item := range items {
			answers = append(answers, item.Answer)
		}
	case []any:
		for _, entry := range items {
			if m, ok := entry.(map[string]any); ok {
				if answer, ok := m["answer"].(string); ok {
					answers = append(answers, answer)
				}
			}
		}
	}
	return strings.Join(answers, " ")
}
