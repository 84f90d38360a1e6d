package agent

import (
	"context"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ToolFunc is the capability contract consumed by the loop: a
// string-keyed argument mapping in, a string-keyed result mapping out.
// Failures may surface either as a returned error or as an "error"
// field in the result; the invoker normalizes both to the latter.
type ToolFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

type Tool struct {
	Name        string
	Description string
	SchemaJSON  string // optional JSON schema for argument validation
	Fn          ToolFunc
}

// ValidateArgs validates the provided arguments against the tool's
// JSON schema. Tools without a schema accept any arguments.
func (t Tool) ValidateArgs(args map[string]any) error {
	if t.SchemaJSON == "" {
		return nil
	}
	schemaLoader := gojsonschema.NewStringLoader(t.SchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		msg := ""
		for i, verr := range result.Errors() {
			if i > 0 {
				msg += "; "
			}
			msg += verr.String()
		}
		return fmt.Errorf("tool %s validation failed: %s", t.Name, msg)
	}
	return nil
}

// ToolRegistry is the host-supplied mapping from tool name to
// implementation, constructed once and treated as immutable.
type ToolRegistry map[string]Tool

// Names returns the registered tool names, for diagnostics.
func (r ToolRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}
