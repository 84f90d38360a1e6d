// Package prompts holds the registry of LLM prompt templates used by
// the assistant. Placeholders use {{key}} syntax.
package prompts

import (
	"fmt"
	"strings"
	"sync"
)

// Prompt is a named template with metadata.
type Prompt struct {
	ID          string   // Unique identifier (e.g., "sql_generate", "faq_answer")
	Content     string   // The actual prompt text
	Description string   // Human-readable description
	Tags        []string // Tags for categorization (e.g., ["sql", "catalog"])
}

// Registry maps prompt IDs to templates.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]*Prompt
}

var defaultRegistry *Registry
var defaultRegistryOnce sync.Once

// DefaultRegistry returns the process-wide prompt registry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		prompts: make(map[string]*Prompt),
	}
}

// Register adds a prompt, replacing any existing prompt with the same ID.
func (r *Registry) Register(p *Prompt) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts[p.ID] = p
}

// Get retrieves a prompt by ID.
func (r *Registry) Get(id string) (*Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", id)
	}
	return p, nil
}

// Render substitutes the given variables into the prompt template.
func (r *Registry) Render(id string, vars map[string]string) (string, error) {
	p, err := r.Get(id)
	if err != nil {
		return "", err
	}

	result := p.Content
	for key, value := range vars {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), value)
	}
	return result, nil
}

// Render renders a prompt from the default registry.
func Render(id string, vars map[string]string) (string, error) {
	return DefaultRegistry().Render(id, vars)
}
