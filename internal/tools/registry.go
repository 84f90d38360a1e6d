// Package tools assembles the agent's tool registry from the domain
// services (FAQ index, product catalog, LLM client).
package tools

import (
	"fmt"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/catalog"
	"github.com/shopmate-ai/shopmate/internal/faq"
	"github.com/shopmate-ai/shopmate/internal/providers"
)

// ToolSet selects which tool groups are registered.
type ToolSet struct {
	Knowledge bool // knowledge_search, knowledge_answer
	Query     bool // query_generate, query_run, verbalize
	Web       bool // web_search
}

// DefaultToolSet enables everything.
func DefaultToolSet() ToolSet {
	return ToolSet{Knowledge: true, Query: true, Web: true}
}

// Deps carries the services the tools are built on.
type Deps struct {
	FAQ     *faq.Index
	Catalog *catalog.Store
	LLM     providers.Client
}

// NewToolRegistry creates a new agent.ToolRegistry based on the provided ToolSet.
func NewToolRegistry(deps Deps, set ToolSet) (agent.ToolRegistry, error) {
	reg := make(agent.ToolRegistry)

	if set.Knowledge {
		if deps.FAQ == nil {
			return nil, fmt.Errorf("knowledge tools require a FAQ index")
		}
		if deps.LLM == nil {
			return nil, fmt.Errorf("knowledge tools require an LLM client")
		}
		register(reg, NewKnowledgeSearch(deps.FAQ))
		register(reg, NewKnowledgeAnswer(deps.LLM))
	}

	if set.Query {
		if deps.Catalog == nil {
			return nil, fmt.Errorf("query tools require a catalog store")
		}
		if deps.LLM == nil {
			return nil, fmt.Errorf("query tools require an LLM client")
		}
		register(reg, NewQueryGenerate(deps.LLM))
		register(reg, NewQueryRun(deps.Catalog))
		register(reg, NewVerbalize(deps.LLM))
	}

	if set.Web {
		register(reg, NewWebSearch())
	}

	return reg, nil
}

func register(reg agent.ToolRegistry, tool agent.Tool) {
	reg[tool.Name] = tool
}
