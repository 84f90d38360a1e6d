package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecuteRegistryMiss(t *testing.T) {
	ag := makeAgent(t, nil)
	res := ag.execute(context.Background(), Action{Tool: "web_search", Args: map[string]any{}})

	msg, failed := errorField(res)
	if !failed {
		t.Fatal("expected error result for unregistered tool")
	}
	if msg != "Tool 'web_search' is not registered." {
		t.Errorf("message = %q", msg)
	}
}

func TestExecuteNormalizesReturnedError(t *testing.T) {
	reg := ToolRegistry{
		"boom": {Name: "boom", Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, errors.New("db unavailable")
		}},
	}
	ag, _ := New(reg)

	res := ag.execute(context.Background(), Action{Tool: "boom", Args: map[string]any{}})
	if msg, failed := errorField(res); !failed || msg != "db unavailable" {
		t.Errorf("result = %v", res)
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	reg := ToolRegistry{
		"panicky": {Name: "panicky", Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			panic("nil pointer somewhere deep")
		}},
	}
	ag, _ := New(reg)

	res := ag.execute(context.Background(), Action{Tool: "panicky", Args: map[string]any{}})
	msg, failed := errorField(res)
	if !failed || !strings.Contains(msg, "nil pointer somewhere deep") {
		t.Errorf("result = %v", res)
	}
}

func TestExecuteValidatesArgs(t *testing.T) {
	reg := ToolRegistry{
		"strict": {
			Name:       "strict",
			SchemaJSON: `{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`,
			Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				return map[string]any{}, nil
			},
		},
	}
	ag, _ := New(reg)

	res := ag.execute(context.Background(), Action{Tool: "strict", Args: map[string]any{}})
	if _, failed := errorField(res); !failed {
		t.Error("expected validation failure for missing required arg")
	}

	res = ag.execute(context.Background(), Action{Tool: "strict", Args: map[string]any{"query": "ok"}})
	if _, failed := errorField(res); failed {
		t.Errorf("unexpected failure: %v", res)
	}
}

func TestExecuteNilResultBecomesEmptyMap(t *testing.T) {
	reg := ToolRegistry{
		"quiet": {Name: "quiet", Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, nil
		}},
	}
	ag, _ := New(reg)

	res := ag.execute(context.Background(), Action{Tool: "quiet", Args: map[string]any{}})
	if res == nil {
		t.Fatal("execute returned nil map")
	}
	if _, failed := errorField(res); failed {
		t.Errorf("unexpected error: %v", res)
	}
}

func TestChooseActionAbortsWithoutGeneratedQuery(t *testing.T) {
	ag := makeAgent(t, nil)
	plan := ag.buildPlan("puma shoes under 3000", map[string]any{})
	// query_generate already done but produced no usable query.
	plan.Steps[0].Status = StepCompleted
	st := &agentState{plan: plan}

	if _, ok := ag.chooseAction("puma shoes under 3000", map[string]any{}, st); ok {
		t.Error("selector must abort rather than run query_run with empty input")
	}
}
