package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
)

// DefaultFileName is the expense file used when no path is configured.
const DefaultFileName = "expense_tracker.json"

// expenseRecord is the on-disk shape of one expense.
type expenseRecord struct {
	ID           int            `json:"id"`
	Description  string         `json:"description"`
	Amount       float64        `json:"amount"`
	CreationDate string         `json:"creationDate"`
	Category     model.Category `json:"category"`
}

// JSONStore implements service.Storage on top of a single JSON file.
type JSONStore struct {
	path string
}

var _ service.Storage = (*JSONStore)(nil)

// NewJSONStore creates a store for the file at path. The file does not
// have to exist yet.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &JSONStore{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads every persisted expense. A missing or empty file yields an
// empty snapshot.
func (s *JSONStore) Load(ctx context.Context) (*service.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := &service.Snapshot{Expenses: make(map[int]model.Expense)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Expense file not found, starting empty", "path", s.path)
		return snapshot, nil
	}
	if err != nil {
		return nil, &Error{Op: "read", Path: s.path, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot, nil
	}

	var records map[string]expenseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &Error{Op: "read", Path: s.path, Err: err}
	}

	for key, rec := range records {
		expense, err := decodeRecord(key, rec)
		if err != nil {
			return nil, &Error{Op: "read", Path: s.path, Err: err}
		}
		snapshot.Expenses[expense.ID] = expense
		snapshot.LastID = max(snapshot.LastID, expense.ID)
	}

	slog.Debug("Loaded expenses",
		"path", s.path,
		"count", len(snapshot.Expenses),
		"last_id", snapshot.LastID)

	return snapshot, nil
}

// Save replaces the file with the full collection. The data is written to
// a temporary file in the same directory and renamed over the target, so a
// crash mid-write leaves the previous contents in place.
func (s *JSONStore) Save(ctx context.Context, expenses map[int]model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return &Error{Op: "write", Path: s.path, Err: err}
	}

	data, err := encodeExpenses(expenses)
	if err != nil {
		return &Error{Op: "write", Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &Error{Op: "write", Path: s.path, Err: err}
	}

	slog.Debug("Saved expenses", "path", s.path, "count", len(expenses))
	return nil
}

func decodeRecord(key string, rec expenseRecord) (model.Expense, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return model.Expense{}, fmt.Errorf("invalid expense key %q: %w", key, err)
	}
	// "01" and "+1" would otherwise both load as id 1.
	if strconv.Itoa(id) != key {
		return model.Expense{}, fmt.Errorf("invalid expense key %q: not a canonical id", key)
	}
	if id != rec.ID {
		return model.Expense{}, fmt.Errorf("expense key %q does not match id %d", key, rec.ID)
	}
	if err := validateRecord(rec); err != nil {
		return model.Expense{}, fmt.Errorf("expense %d: %w", rec.ID, err)
	}

	created, err := time.Parse(model.DateLayout, rec.CreationDate)
	if err != nil {
		return model.Expense{}, fmt.Errorf("expense %d: invalid creationDate: %w", rec.ID, err)
	}

	return model.Expense{
		ID:          rec.ID,
		Description: rec.Description,
		Amount:      rec.Amount,
		Category:    rec.Category,
		CreatedAt:   created,
	}, nil
}

// encodeExpenses produces the same layout as json.MarshalIndent on the map
// with two-space indentation, but with keys in numeric rather than
// lexical order and without HTML escaping.
func encodeExpenses(expenses map[int]model.Expense) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")

	for i, id := range slices.Sorted(maps.Keys(expenses)) {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, "\n  %q: ", strconv.Itoa(id))

		e := expenses[id]
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("  ", "  ")
		if err := enc.Encode(expenseRecord{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			CreationDate: e.CreatedAt.Format(model.DateLayout),
			Category:     e.Category,
		}); err != nil {
			return nil, fmt.Errorf("encode expense %d: %w", id, err)
		}
		// Encode terminates each value with a newline.
		buf.Truncate(buf.Len() - 1)
	}

	if len(expenses) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
