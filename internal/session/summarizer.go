package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopmate-ai/shopmate/internal/providers"
)

// Summarizer handles LLM-based summarization for sessions.
type Summarizer struct {
	llm providers.Client
}

// NewSummarizer creates a new session summarizer.
func NewSummarizer(llm providers.Client) *Summarizer {
	return &Summarizer{llm: llm}
}

// GenerateTitle generates a short 3-5 word title for the session.
func (s *Summarizer) GenerateTitle(ctx context.Context, turns []Turn) (string, error) {
	if len(turns) == 0 {
		return DefaultTitle, nil
	}

	systemPrompt := "You are a helpful assistant. Generate a short, concise title (3-5 words) for this conversation based on what the user wanted. Do not use quotes or punctuation."

	// The first few turns are enough to determine the intent
	limit := 10
	if len(turns) < limit {
		limit = len(turns)
	}

	userPrompt := fmt.Sprintf("Conversation:\n%s\n\nGenerate Title:", renderTranscript(turns[:limit]))

	title, err := s.llm.Complete(ctx, providers.Request{
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: 0.3,
		MaxTokens:   20,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate title: %w", err)
	}

	return strings.TrimSpace(title), nil
}

// GenerateSummary generates a context summary for the next session.
func (s *Summarizer) GenerateSummary(ctx context.Context, turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "", nil
	}

	systemPrompt := "You represent the memory of a shopping assistant. Summarize the following conversation to preserve context for a future session. Focus on: stated preferences (brand, budget), products discussed, and unresolved questions. Be concise."

	userPrompt := fmt.Sprintf("Summarize this conversation:\n\n%s", renderTranscript(turns))

	summary, err := s.llm.Complete(ctx, providers.Request{
		System:      systemPrompt,
		User:        userPrompt,
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

// renderTranscript flattens turns into a readable "role: content" log.
func renderTranscript(turns []Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}
