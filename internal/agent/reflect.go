package agent

import (
	"context"
	"regexp"
	"strings"
)

// Generated queries arrive wrapped in these markers; only the first
// occurrence is used and surrounding whitespace is trimmed.
var queryTagRe = regexp.MustCompile(`(?is)<SQL>(.*?)</SQL>`)

// reflect folds a tool result back into plan data, advances step
// status, and applies the one-shot refinement policy when a data
// query returns no rows. Errors are recorded as terminal; the
// termination check halts the loop on the next pass.
func (a *Agent) reflect(ctx context.Context, action Action, st *agentState) {
	plan := st.plan
	if action.Index >= 0 && action.Index < len(plan.Steps) {
		plan.Steps[action.Index].Status = StepCompleted
	}

	result := st.lastResult
	if result == nil {
		result = map[string]any{}
	}

	if msg, failed := errorField(result); failed {
		plan.Data.Err = msg
		return
	}

	switch action.Tool {
	case ToolKnowledgeSearch:
		plan.Data.Items = itemsField(result)
	case ToolKnowledgeAnswer:
		plan.Data.Answer, _ = result["text"].(string)
	case ToolQueryGenerate:
		wrapped, _ := result["wrapped"].(string)
		plan.Data.RawQuery = wrapped
		extracted, ok := ExtractQuery(wrapped)
		plan.Data.Query = extracted
		if !ok {
			plan.Data.Err = "The model did not return a valid SQL query."
		}
	case ToolQueryRun:
		rows := rowsField(result)
		plan.Data.Rows = rows
		plan.Data.Columns = columnsField(result)

		if len(rows) == 0 {
			if plan.Retries < 1 {
				plan.Retries++
				plan.Data.RefineHint = true
				resetQuerySteps(plan)
				a.hooks.OnRefine(ctx, plan, plan.Retries)
			} else {
				plan.Data.NoMatches = true
			}
		}
	case ToolVerbalize:
		plan.Data.Verbalization, _ = result["text"].(string)
	}
}

// resetQuerySteps rewinds the data-query steps for one refinement
// pass, discarding the artifacts the pass will regenerate.
func resetQuerySteps(plan *Plan) {
	for i := range plan.Steps {
		switch plan.Steps[i].Tool {
		case ToolQueryGenerate, ToolQueryRun, ToolVerbalize:
			plan.Steps[i].Status = StepPending
		}
	}
	plan.Data.Query = ""
	plan.Data.Rows = nil
	plan.Data.Verbalization = ""
}

// ExtractQuery pulls the first SQL statement out of a <SQL>...</SQL>
// wrapped payload. The match is case-insensitive and spans newlines.
func ExtractQuery(payload string) (string, bool) {
	m := queryTagRe.FindStringSubmatch(payload)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func itemsField(result map[string]any) []KnowledgeItem {
	switch v := result["items"].(type) {
	case []KnowledgeItem:
		return v
	case []any:
		items := make([]KnowledgeItem, 0, len(v))
		for _, raw := range v {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			item := KnowledgeItem{}
			item.Question, _ = m["question"].(string)
			item.Answer, _ = m["answer"].(string)
			item.Score, _ = m["score"].(float64)
			items = append(items, item)
		}
		return items
	default:
		return nil
	}
}

func rowsField(result map[string]any) []map[string]any {
	switch v := result["rows"].(type) {
	case []map[string]any:
		if v == nil {
			return []map[string]any{}
		}
		return v
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, raw := range v {
			if m, ok := raw.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		return rows
	default:
		return []map[string]any{}
	}
}

func columnsField(result map[string]any) []string {
	switch v := result["columns"].(type) {
	case []string:
		return v
	case []any:
		cols := make([]string, 0, len(v))
		for _, raw := range v {
			if s, ok := raw.(string); ok {
				cols = append(cols, s)
			}
		}
		return cols
	default:
		return nil
	}
}
