package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	tmpDir := t.TempDir()

	store := NewStore(tmpDir)

	sess := New()
	sess.Title = "Puma shoes under 3000"
	sess.Append(RoleUser, "show me puma shoes under 3000", "")
	sess.Append(RoleAssistant, "Here are two options.", "Trace: query_generate -> query_run -> verbalize")

	// Test Save
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify file existence
	expectedPath := filepath.Join(tmpDir, "sessions", sess.ID+".json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("Expected session file to exist at %s", expectedPath)
	}

	// Test Load
	loaded, err := store.Load(sess.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != sess.ID {
		t.Errorf("Expected ID %s, got %s", sess.ID, loaded.ID)
	}
	if len(loaded.Turns) != 2 {
		t.Errorf("Expected 2 turns, got %d", len(loaded.Turns))
	}
	if loaded.Turns[1].Trace == "" {
		t.Error("assistant trace not persisted")
	}

	// Test List
	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 session in list, got %d", len(list))
	}
	if list[0].Title != sess.Title {
		t.Errorf("Expected title %s, got %s", sess.Title, list[0].Title)
	}
}

func TestStoreListEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	list, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(list))
	}
}

func TestStoreListOrdersByRecency(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewStore(tmpDir)

	older := New()
	older.Title = "older"
	older.UpdatedAt = time.Now().Add(-time.Hour)

	newer := New()
	newer.Title = "newer"

	if err := store.Save(older); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(newer); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Title != "newer" {
		t.Errorf("list order = %v", list)
	}
}

func TestNewSessionsGetDistinctIDs(t *testing.T) {
	a, b := New(), New()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids = %q, %q", a.ID, b.ID)
	}
}
