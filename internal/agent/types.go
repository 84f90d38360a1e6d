// Package agent implements the per-turn orchestration loop:
// PLAN -> ACT -> OBSERVE -> REFLECT, bounded by a fixed step budget.
package agent

// PlanType classifies the user goal into one of the supported plans.
type PlanType string

const (
	PlanFAQ       PlanType = "faq"
	PlanDataQuery PlanType = "data_query"
)

// StepStatus tracks progress of a single planned tool invocation.
// Status only moves forward, except when the refinement policy
// explicitly resets data-query steps back to pending.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
)

// Tool names the core schedules. The registry must expose these.
const (
	ToolKnowledgeSearch = "knowledge_search"
	ToolKnowledgeAnswer = "knowledge_answer"
	ToolQueryGenerate   = "query_generate"
	ToolQueryRun        = "query_run"
	ToolVerbalize       = "verbalize"
	ToolWebSearch       = "web_search"
)

// Step is one planned tool invocation and its completion status.
type Step struct {
	Tool   string     `json:"tool"`
	Status StepStatus `json:"status"`
}

// KnowledgeItem is one retrieved FAQ entry used as answer context.
type KnowledgeItem struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// PlanData holds the artifacts accumulated while the plan executes.
// The fields are a closed set so invalid states stay unrepresentable;
// which fields are populated depends on the plan type.
type PlanData struct {
	Items         []KnowledgeItem  `json:"items,omitempty"`         // knowledge_search results
	Answer        string           `json:"answer,omitempty"`        // knowledge_answer final text
	RawQuery      string           `json:"raw_query,omitempty"`     // query_generate payload as returned
	Query         string           `json:"query,omitempty"`         // extracted SQL statement
	Rows          []map[string]any `json:"rows,omitempty"`          // query_run result rows
	Columns       []string         `json:"columns,omitempty"`       // query_run column names
	Verbalization string           `json:"verbalization,omitempty"` // verbalize final text
	Err           string           `json:"error,omitempty"`         // terminal error, halts the loop
	RefineHint    bool             `json:"refine_hint,omitempty"`   // set by the one-shot refinement
	NoMatches     bool             `json:"no_matches,omitempty"`    // set when the retry budget is spent
	MemoryUpdates map[string]any   `json:"memory_updates,omitempty"`
}

// ItemsOrEmpty returns the retrieved context, never nil.
func (d *PlanData) ItemsOrEmpty() []KnowledgeItem {
	if d.Items == nil {
		return []KnowledgeItem{}
	}
	return d.Items
}

// RowsOrEmpty returns the query result rows, never nil.
func (d *PlanData) RowsOrEmpty() []map[string]any {
	if d.Rows == nil {
		return []map[string]any{}
	}
	return d.Rows
}

// Plan is the structured intent classification plus the ordered step
// sequence for one turn. Step order is fixed at creation; the
// refinement policy may reset statuses but never reorders.
type Plan struct {
	Type           PlanType `json:"type"`
	Steps          []Step   `json:"steps"`
	Clarifications []string `json:"needs_clarification,omitempty"`
	Data           PlanData `json:"data"`
	Retries        int      `json:"retries"` // 0 or 1, the data-query refinement budget
}

// Action is the ephemeral selection handed from the action selector to
// the tool invoker.
type Action struct {
	Tool  string
	Args  map[string]any
	Index int
}

// TraceRecord is one executed action in the append-only turn trace.
type TraceRecord struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
	OK   bool           `json:"ok"`
}

// Result is what a turn returns to the host. Run always produces a
// well-formed Result; errors surface inside it, never as panics.
type Result struct {
	Text          string         `json:"text"`
	Trace         []TraceRecord  `json:"trace"`
	Plan          *Plan          `json:"plan"`
	Goal          string         `json:"goal"`
	MemoryUpdates map[string]any `json:"memory_updates"`
}

// agentState is the per-turn container owned exclusively by one Run
// call. It never escapes and is never shared across turns.
type agentState struct {
	plan       *Plan
	lastResult map[string]any
	stepIndex  int
}
