package agent

// chooseAction scans the plan steps in order and materializes the
// first pending step into a concrete action. It reports false when no
// step is pending, or when query_run would be invoked without a
// generated query, which aborts the turn rather than running with
// empty input.
func (a *Agent) chooseAction(goal string, memory map[string]any, st *agentState) (Action, bool) {
	plan := st.plan
	for idx := range plan.Steps {
		step := &plan.Steps[idx]
		if step.Status != StepPending {
			continue
		}

		var args map[string]any
		switch step.Tool {
		case ToolKnowledgeSearch:
			args = map[string]any{"query": goal, "k": 3}
		case ToolKnowledgeAnswer:
			args = map[string]any{"question": goal, "context": plan.Data.ItemsOrEmpty()}
		case ToolQueryGenerate:
			question := applyMemoryToQuestion(goal, memory)
			if plan.Data.RefineHint {
				question += " (If no products match, relax filters slightly and broaden the search.)"
			}
			args = map[string]any{"question": question}
		case ToolQueryRun:
			if plan.Data.Query == "" {
				return Action{}, false
			}
			args = map[string]any{"query": plan.Data.Query}
		case ToolVerbalize:
			args = map[string]any{"question": goal, "data": plan.Data.RowsOrEmpty()}
		default:
			continue
		}

		step.Status = StepInProgress
		st.stepIndex = idx
		return Action{Tool: step.Tool, Args: args, Index: idx}, true
	}
	return Action{}, false
}
