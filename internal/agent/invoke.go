package agent

import (
	"context"
	"fmt"
)

// execute invokes a selected action against the registry. Every
// failure mode (unknown tool, invalid args, returned error, panic)
// comes back as a result carrying an "error" field; execute never
// raises to the loop.
func (a *Agent) execute(ctx context.Context, action Action) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(fmt.Sprint(r))
		}
	}()

	tool, ok := a.tools[action.Tool]
	if !ok {
		return errorResult(fmt.Sprintf("Tool '%s' is not registered.", action.Tool))
	}

	if err := tool.ValidateArgs(action.Args); err != nil {
		return errorResult(err.Error())
	}

	out, err := tool.Fn(ctx, action.Args)
	if err != nil {
		return errorResult(err.Error())
	}
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// errorField extracts the failure message from a tool result, if any.
func errorField(result map[string]any) (string, bool) {
	v, ok := result["error"]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
