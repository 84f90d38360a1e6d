package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Brand tokens the prerequisite check and preference inference look
// for. Ordered so inference is deterministic when several match.
var brandHints = []string{"nike", "puma", "adidas", "reebok", "apple", "samsung"}

var (
	priceRe        = regexp.MustCompile(`\b\d{3,6}\b`)
	priceCeilingRe = regexp.MustCompile(`(?:under|below|less than)\s*(\d{3,6})`)
)

// buildPlan classifies the goal and produces the ordered step sequence
// plus any missing prerequisites. Preference inference runs regardless
// of whether clarification is required.
func (a *Agent) buildPlan(goal string, memory map[string]any) *Plan {
	lowered := strings.ToLower(goal)

	plan := &Plan{Type: a.classifier.Classify(goal)}

	switch plan.Type {
	case PlanDataQuery:
		plan.Steps = []Step{
			{Tool: ToolQueryGenerate, Status: StepPending},
			{Tool: ToolQueryRun, Status: StepPending},
			{Tool: ToolVerbalize, Status: StepPending},
		}
		plan.Clarifications = missingConstraints(lowered, memory)
	default:
		plan.Steps = []Step{
			{Tool: ToolKnowledgeSearch, Status: StepPending},
			{Tool: ToolKnowledgeAnswer, Status: StepPending},
		}
	}

	if updates := guessPreferences(lowered, memory); len(updates) > 0 {
		plan.Data.MemoryUpdates = updates
	}

	return plan
}

// missingConstraints reports which product constraints are absent from
// both the goal and the preference snapshot. Check order is fixed:
// brand before budget.
func missingConstraints(loweredGoal string, memory map[string]any) []string {
	brandKnown := mentions(loweredGoal, brandHints) || stringValue(memory["brand"]) != ""
	priceKnown := priceRe.MatchString(loweredGoal) || hasValue(memory["price_ceiling"])

	var needs []string
	if !brandKnown {
		needs = append(needs, "preferred brand")
	}
	if !priceKnown {
		needs = append(needs, "budget ceiling")
	}
	return needs
}

// guessPreferences extracts preference hints from the goal that the
// snapshot does not already carry. A price following "under", "below"
// or "less than" wins over the first bare 3-6 digit number.
func guessPreferences(loweredGoal string, memory map[string]any) map[string]any {
	updates := map[string]any{}

	if stringValue(memory["brand"]) == "" {
		for _, brand := range brandHints {
			if strings.Contains(loweredGoal, brand) {
				updates["brand"] = titleCase(brand)
				break
			}
		}
	}

	if !hasValue(memory["price_ceiling"]) {
		if m := priceCeilingRe.FindStringSubmatch(loweredGoal); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				updates["price_ceiling"] = n
			}
		} else if m := priceRe.FindString(loweredGoal); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				updates["price_ceiling"] = n
			}
		}
	}

	if len(updates) == 0 {
		return nil
	}
	return updates
}

// applyMemoryToQuestion annotates the goal with known preferences that
// are not already textually present.
func applyMemoryToQuestion(goal string, memory map[string]any) string {
	pieces := []string{goal}

	if brand := stringValue(memory["brand"]); brand != "" &&
		!strings.Contains(strings.ToLower(goal), strings.ToLower(brand)) {
		pieces = append(pieces, fmt.Sprintf("(Prefer brand %s)", brand))
	}
	if ceiling := memory["price_ceiling"]; hasValue(ceiling) &&
		!strings.Contains(goal, fmt.Sprint(ceiling)) {
		pieces = append(pieces, fmt.Sprintf("(Keep price under %v)", ceiling))
	}

	return strings.Join(pieces, " ")
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// hasValue reports whether a snapshot value is present and non-zero.
func hasValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
