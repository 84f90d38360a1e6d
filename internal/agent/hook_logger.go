package agent

import (
	"context"
	"log"
)

// LogHook logs loop progress via the standard logger.
type LogHook struct {
	NopHook
	Verbose bool
}

func (h LogHook) OnPlanCreated(_ context.Context, plan *Plan) {
	log.Printf("plan created: type=%s steps=%d clarifications=%d", plan.Type, len(plan.Steps), len(plan.Clarifications))
}

func (h LogHook) OnClarification(_ context.Context, _ *Plan, needs []string) {
	log.Printf("clarification required: %v", needs)
}

func (h LogHook) OnActionSelected(_ context.Context, _ *Plan, action Action) {
	if h.Verbose {
		log.Printf("action selected: tool=%s args=%v", action.Tool, action.Args)
	} else {
		log.Printf("action selected: tool=%s", action.Tool)
	}
}

func (h LogHook) OnToolResult(_ context.Context, plan *Plan, action Action, result map[string]any) {
	if msg, ok := result["error"].(string); ok {
		log.Printf("tool %s failed: %s", action.Tool, msg)
		return
	}
	if h.Verbose {
		log.Printf("tool %s ok (retries=%d)", action.Tool, plan.Retries)
	}
}

func (h LogHook) OnRefine(_ context.Context, _ *Plan, attempt int) {
	log.Printf("empty result set, refining query (attempt %d)", attempt)
}

func (h LogHook) OnDone(_ context.Context, res *Result) {
	log.Printf("turn done: %d tool calls", len(res.Trace))
}
