package agent

import "context"

// Hook receives loop lifecycle notifications. Hooks observe; they must
// not mutate the plan.
type Hook interface {
	OnPlanCreated(ctx context.Context, plan *Plan)
	OnClarification(ctx context.Context, plan *Plan, needs []string)
	OnActionSelected(ctx context.Context, plan *Plan, action Action)
	OnToolResult(ctx context.Context, plan *Plan, action Action, result map[string]any)
	OnRefine(ctx context.Context, plan *Plan, attempt int)
	OnDone(ctx context.Context, res *Result)
}

// NopHook lets you implement only the hooks you need.
type NopHook struct{}

func (NopHook) OnPlanCreated(context.Context, *Plan)                          {}
func (NopHook) OnClarification(context.Context, *Plan, []string)              {}
func (NopHook) OnActionSelected(context.Context, *Plan, Action)               {}
func (NopHook) OnToolResult(context.Context, *Plan, Action, map[string]any)   {}
func (NopHook) OnRefine(context.Context, *Plan, int)                          {}
func (NopHook) OnDone(context.Context, *Result)                               {}

// Hooks fans out to every registered hook.
type Hooks []Hook

func (hs Hooks) OnPlanCreated(ctx context.Context, plan *Plan) {
	for _, h := range hs {
		h.OnPlanCreated(ctx, plan)
	}
}
func (hs Hooks) OnClarification(ctx context.Context, plan *Plan, needs []string) {
	for _, h := range hs {
		h.OnClarification(ctx, plan, needs)
	}
}
func (hs Hooks) OnActionSelected(ctx context.Context, plan *Plan, action Action) {
	for _, h := range hs {
		h.OnActionSelected(ctx, plan, action)
	}
}
func (hs Hooks) OnToolResult(ctx context.Context, plan *Plan, action Action, result map[string]any) {
	for _, h := range hs {
		h.OnToolResult(ctx, plan, action, result)
	}
}
func (hs Hooks) OnRefine(ctx context.Context, plan *Plan, attempt int) {
	for _, h := range hs {
		h.OnRefine(ctx, plan, attempt)
	}
}
func (hs Hooks) OnDone(ctx context.Context, res *Result) {
	for _, h := range hs {
		h.OnDone(ctx, res)
	}
}
