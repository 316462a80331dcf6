package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

// TestStore is a JSON expenses file in a per-test temporary directory.
type TestStore struct {
	Store *storage.JSONStore
	t     *testing.T
	Path  string
}

// SetupTestStore creates a store seeded with expenses. With no expenses the
// file is not created.
func SetupTestStore(t *testing.T, expenses map[int]model.Expense) *TestStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), storage.DefaultFileName)
	store, err := storage.NewJSONStore(path)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if len(expenses) > 0 {
		if err := store.Save(context.Background(), expenses); err != nil {
			t.Fatalf("failed to seed test store: %v", err)
		}
	}

	return &TestStore{Store: store, Path: path, t: t}
}

// Reopen returns a new store over the same file.
func (s *TestStore) Reopen() *storage.JSONStore {
	s.t.Helper()
	store, err := storage.NewJSONStore(s.Path)
	if err != nil {
		s.t.Fatalf("failed to reopen test store: %v", err)
	}
	return store
}

// MustLoad loads the file through a fresh store or fails the test.
func (s *TestStore) MustLoad() *service.Snapshot {
	s.t.Helper()
	snapshot, err := s.Reopen().Load(context.Background())
	if err != nil {
		s.t.Fatalf("failed to load test store: %v", err)
	}
	return snapshot
}

// Contents returns the raw file contents, or "" when it does not exist.
func (s *TestStore) Contents() string {
	s.t.Helper()
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		s.t.Fatalf("failed to read test store: %v", err)
	}
	return string(data)
}
