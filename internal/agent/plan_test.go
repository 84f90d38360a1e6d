package agent

import (
	"reflect"
	"testing"
)

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name string
		goal string
		want PlanType
	}{
		{"faq keyword", "What is your return policy?", PlanFAQ},
		{"data keyword", "show me cheap shoes", PlanDataQuery},
		{"faq wins over data", "refund on shoes I bought", PlanFAQ},
		{"no keyword defaults to faq", "hello there", PlanFAQ},
		{"case insensitive", "SHIPPING to Mumbai?", PlanFAQ},
		{"price keyword", "laptop price comparison", PlanDataQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.goal); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.goal, got, tt.want)
			}
		})
	}
}

func TestMissingConstraints(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		memory map[string]any
		want   []string
	}{
		{
			name: "both missing",
			goal: "show me something",
			want: []string{"preferred brand", "budget ceiling"},
		},
		{
			name: "brand in goal",
			goal: "show me nike options",
			want: []string{"budget ceiling"},
		},
		{
			name: "budget in goal",
			goal: "show me options under 2500",
			want: []string{"preferred brand"},
		},
		{
			name: "both in goal",
			goal: "puma under 2500",
			want: nil,
		},
		{
			name:   "brand from memory",
			goal:   "show me options under 2500",
			memory: map[string]any{"brand": "Reebok"},
			want:   nil,
		},
		{
			name:   "price from memory",
			goal:   "adidas options",
			memory: map[string]any{"price_ceiling": 4000},
			want:   nil,
		},
		{
			name: "two digit number is not a budget",
			goal: "puma size 42",
			want: []string{"budget ceiling"},
		},
		{
			name: "six digit number accepted",
			goal: "apple laptop under 120000",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memory := tt.memory
			if memory == nil {
				memory = map[string]any{}
			}
			got := missingConstraints(tt.goal, memory)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("missingConstraints(%q) = %v, want %v", tt.goal, got, tt.want)
			}
		})
	}
}

func TestGuessPreferences(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		memory map[string]any
		want   map[string]any
	}{
		{
			name: "brand and ceiling phrase",
			goal: "need puma shoes under 3000",
			want: map[string]any{"brand": "Puma", "price_ceiling": 3000},
		},
		{
			name: "bare number fallback",
			goal: "nike shoes 4500 budget",
			want: map[string]any{"brand": "Nike", "price_ceiling": 4500},
		},
		{
			name: "ceiling phrase wins over earlier number",
			goal: "size 400 adidas below 2000",
			want: map[string]any{"brand": "Adidas", "price_ceiling": 2000},
		},
		{
			name:   "known values are not re-inferred",
			goal:   "puma under 3000",
			memory: map[string]any{"brand": "Puma", "price_ceiling": 3000},
			want:   nil,
		},
		{
			name: "nothing to infer",
			goal: "what do you sell",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memory := tt.memory
			if memory == nil {
				memory = map[string]any{}
			}
			got := guessPreferences(tt.goal, memory)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("guessPreferences(%q) = %v, want %v", tt.goal, got, tt.want)
			}
		})
	}
}

func TestApplyMemoryToQuestion(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		memory map[string]any
		want   string
	}{
		{
			name:   "annotates missing brand and price",
			goal:   "running shoes",
			memory: map[string]any{"brand": "Puma", "price_ceiling": 3000},
			want:   "running shoes (Prefer brand Puma) (Keep price under 3000)",
		},
		{
			name:   "skips brand already present",
			goal:   "puma running shoes",
			memory: map[string]any{"brand": "Puma"},
			want:   "puma running shoes",
		},
		{
			name:   "skips price already present",
			goal:   "shoes under 3000",
			memory: map[string]any{"price_ceiling": 3000},
			want:   "shoes under 3000",
		},
		{
			name:   "no memory",
			goal:   "running shoes",
			memory: map[string]any{},
			want:   "running shoes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyMemoryToQuestion(tt.goal, tt.memory); got != tt.want {
				t.Errorf("applyMemoryToQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPlanSteps(t *testing.T) {
	ag := makeAgent(t, nil)

	plan := ag.buildPlan("What is your return policy?", map[string]any{})
	if plan.Type != PlanFAQ || len(plan.Steps) != 2 {
		t.Fatalf("faq plan = %+v", plan)
	}
	if plan.Steps[0].Tool != ToolKnowledgeSearch || plan.Steps[1].Tool != ToolKnowledgeAnswer {
		t.Errorf("faq step order = %v", plan.Steps)
	}

	plan = ag.buildPlan("puma shoes under 3000", map[string]any{})
	if plan.Type != PlanDataQuery || len(plan.Steps) != 3 {
		t.Fatalf("data plan = %+v", plan)
	}
	order := []string{ToolQueryGenerate, ToolQueryRun, ToolVerbalize}
	for i, want := range order {
		if plan.Steps[i].Tool != want || plan.Steps[i].Status != StepPending {
			t.Errorf("step[%d] = %+v, want pending %s", i, plan.Steps[i], want)
		}
	}
}
