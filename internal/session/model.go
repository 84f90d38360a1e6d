// Package session persists conversation transcripts.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle marks a session that has not been named yet.
const DefaultTitle = "New Session"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Trace     string    `json:"trace,omitempty"` // Tool trace for assistant turns
	CreatedAt time.Time `json:"created_at"`
}

// Session represents a persistent conversation.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     []Turn    `json:"turns"`
	Summary   string    `json:"summary,omitempty"` // Context injection for the next session
}

// SessionMeta is a lightweight representation for listing in the UI.
type SessionMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Summary   string    `json:"summary,omitempty"`
}

// New creates an empty session with a fresh ID.
func New() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a turn and bumps UpdatedAt.
func (s *Session) Append(role Role, content, trace string) {
	s.Turns = append(s.Turns, Turn{
		Role:      role,
		Content:   content,
		Trace:     trace,
		CreatedAt: time.Now(),
	})
	s.UpdatedAt = time.Now()
}
