// Package smalltalk answers queries outside FAQ and catalog scope.
package smalltalk

import (
	"context"
	"fmt"

	"github.com/shopmate-ai/shopmate/internal/prompts"
	"github.com/shopmate-ai/shopmate/internal/providers"
)

// Responder produces casual conversation replies.
type Responder struct {
	llm providers.Client
}

// New creates a small-talk responder.
func New(llm providers.Client) *Responder {
	return &Responder{llm: llm}
}

// Talk answers a small-talk query.
func (r *Responder) Talk(ctx context.Context, query string) (string, error) {
	prompt, err := prompts.Render("small_talk", map[string]string{"question": query})
	if err != nil {
		return "", err
	}

	reply, err := r.llm.Complete(ctx, providers.Request{User: prompt})
	if err != nil {
		return "", fmt.Errorf("small talk failed: %w", err)
	}
	return reply, nil
}
