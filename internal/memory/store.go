// Package memory persists user preferences across conversation turns.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a JSON-file-backed preference store. Keys are preference
// names (e.g. "brand", "price_ceiling").
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]any
}

// NewStore creates a store backed by the given file. The file is loaded
// if it exists; a missing file means an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]any),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse memory file: %w", err)
	}
	return s, nil
}

// Get fetches a subset of memory items. Missing keys map to nil.
func (s *Store) Get(keys []string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(keys))
	for _, key := range keys {
		out[key] = s.data[key]
	}
	return out
}

// Snapshot returns a copy of the whole store.
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Set persists preference key/value pairs.
func (s *Store) Set(pairs map[string]any) error {
	if len(pairs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range pairs {
		s.data[k] = v
	}
	return s.flush()
}

// flush writes the store to disk. Caller holds the lock.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	return nil
}
