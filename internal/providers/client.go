// Package providers contains LLM client implementations behind a
// provider-agnostic completion interface.
package providers

import "context"

// Request is a single chat-completion call: one system prompt and one
// user message. The tools in this codebase never need multi-turn
// history; each call is self-contained.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Client abstracts the chosen SDK (OpenAI, Anthropic, compatible APIs).
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
