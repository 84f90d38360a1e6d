package agent

import (
	"context"
	"strings"
)

// Run executes one turn of the orchestration loop for a user goal and
// a preference snapshot. It always returns a well-formed Result: every
// failure is rendered into the final text, none propagates out.
//
// A fresh plan and state are allocated per call and never escape it;
// the host is responsible for serializing concurrent turns if the
// underlying tools are not reentrant.
func (a *Agent) Run(ctx context.Context, goal string, memory map[string]any) Result {
	if memory == nil {
		memory = map[string]any{}
	}

	plan := a.buildPlan(goal, memory)
	a.hooks.OnPlanCreated(ctx, plan)

	var trace []TraceRecord
	var toolOrder []string

	// Missing prerequisites short-circuit straight to the finalizer.
	if len(plan.Clarifications) > 0 {
		a.hooks.OnClarification(ctx, plan, plan.Clarifications)
		res := a.finalize(goal, plan, toolOrder, trace, clarificationMessage(plan.Clarifications))
		a.hooks.OnDone(ctx, &res)
		return res
	}

	st := &agentState{plan: plan, stepIndex: -1}
	for i := 0; i < a.maxSteps; i++ {
		action, ok := a.chooseAction(goal, memory, st)
		if !ok {
			break
		}
		a.hooks.OnActionSelected(ctx, plan, action)

		result := a.execute(ctx, action)
		_, failed := errorField(result)

		trace = append(trace, TraceRecord{Tool: action.Tool, Args: action.Args, OK: !failed})
		toolOrder = append(toolOrder, action.Tool)
		st.lastResult = result

		a.reflect(ctx, action, st)
		a.hooks.OnToolResult(ctx, plan, action, result)

		if shouldStop(st) {
			break
		}
	}

	res := a.finalize(goal, plan, toolOrder, trace, "")
	a.hooks.OnDone(ctx, &res)
	return res
}

// shouldStop checks whether the goal is satisfied or unrecoverable.
// The loop additionally stops after maxSteps iterations regardless.
func shouldStop(st *agentState) bool {
	plan := st.plan
	if plan.Data.Err != "" {
		return true
	}
	switch plan.Type {
	case PlanFAQ:
		return plan.Data.Answer != ""
	case PlanDataQuery:
		return plan.Data.Verbalization != "" || plan.Data.NoMatches
	}
	return false
}

// finalize composes the user-facing text and the trace line. Text
// precedence: explicit override (clarification short-circuit), then a
// recorded error, then domain-specific success text, then a fallback.
func (a *Agent) finalize(goal string, plan *Plan, toolOrder []string, trace []TraceRecord, overrideText string) Result {
	data := &plan.Data
	text := overrideText

	switch {
	case text != "":
	case data.Err != "":
		text = "Sorry, something went wrong: " + data.Err
	case plan.Type == PlanFAQ:
		if data.Answer != "" {
			text = data.Answer
		} else {
			text = "I don't have an answer right now."
		}
	case plan.Type == PlanDataQuery:
		switch {
		case data.Verbalization != "":
			text = data.Verbalization
		case data.NoMatches:
			text = "No matches."
		default:
			text = "I'm still working on it, but I couldn't find matching products."
		}
	}
	if text == "" {
		text = "I don't have an answer right now."
	}

	updates := data.MemoryUpdates
	if updates == nil {
		updates = map[string]any{}
	}
	if trace == nil {
		trace = []TraceRecord{}
	}

	return Result{
		Text:          text + "\n" + formatTrace(toolOrder),
		Trace:         trace,
		Plan:          plan,
		Goal:          goal,
		MemoryUpdates: updates,
	}
}

// clarificationMessage asks for the missing constraints in check order.
func clarificationMessage(needs []string) string {
	var joined string
	if len(needs) <= 2 {
		joined = strings.Join(needs, " and ")
	} else {
		joined = strings.Join(needs[:len(needs)-1], ", ") + ", and " + needs[len(needs)-1]
	}
	return "Could you share the " + joined + " you're looking for?"
}

// formatTrace renders the trailing trace line for the turn.
func formatTrace(toolOrder []string) string {
	if len(toolOrder) == 0 {
		return "Trace: none"
	}
	return "Trace: " + strings.Join(toolOrder, " -> ")
}
