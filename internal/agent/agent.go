package agent

import "fmt"

// DefaultMaxSteps bounds the loop as a guard against a classification
// or reflection bug leaving a step permanently pending.
const DefaultMaxSteps = 5

// Agent runs the orchestration loop against a fixed tool registry.
type Agent struct {
	tools      ToolRegistry
	classifier Classifier
	maxSteps   int
	hooks      Hooks
}

// Builder constructs an Agent with a fluent API.
type Builder struct {
	tools      ToolRegistry
	classifier Classifier
	maxSteps   int
	hooks      Hooks
}

// NewBuilder creates a builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{maxSteps: DefaultMaxSteps}
}

// WithTools sets the tool registry.
func (b *Builder) WithTools(reg ToolRegistry) *Builder {
	b.tools = reg
	return b
}

// WithClassifier substitutes the plan-type classifier.
func (b *Builder) WithClassifier(c Classifier) *Builder {
	b.classifier = c
	return b
}

// WithMaxSteps overrides the loop iteration bound.
func (b *Builder) WithMaxSteps(n int) *Builder {
	b.maxSteps = n
	return b
}

// WithHooks registers observability hooks.
func (b *Builder) WithHooks(hooks ...Hook) *Builder {
	b.hooks = append(b.hooks, hooks...)
	return b
}

// Build constructs the Agent instance.
func (b *Builder) Build() (*Agent, error) {
	if b.tools == nil {
		return nil, fmt.Errorf("tools not configured: use WithTools")
	}
	classifier := b.classifier
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	maxSteps := b.maxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Agent{
		tools:      b.tools,
		classifier: classifier,
		maxSteps:   maxSteps,
		hooks:      b.hooks,
	}, nil
}

// New constructs an Agent with the default classifier and step bound.
func New(reg ToolRegistry) (*Agent, error) {
	return NewBuilder().WithTools(reg).Build()
}
