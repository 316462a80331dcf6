package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := NewJSONStore(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleExpenses() map[int]model.Expense {
	return map[int]model.Expense{
		1:  {ID: 1, Description: "Lunch", Amount: 12.0, Category: model.CategoryFood, CreatedAt: date(2024, 3, 1)},
		2:  {ID: 2, Description: "Transporte", Amount: 5.75, Category: model.CategoryTransport, CreatedAt: date(2024, 3, 2)},
		3:  {ID: 3, Description: "Café & croissant", Amount: 2.50, Category: model.CategoryFood, CreatedAt: date(2024, 3, 2)},
		10: {ID: 10, Description: "Libro", Amount: 20.0, Category: model.CategoryEducation, CreatedAt: date(2023, 11, 30)},
	}
}

func TestNewJSONStore(t *testing.T) {
	_, err := NewJSONStore("  ")
	assert.ErrorIs(t, err, ErrEmptyString)

	store, err := NewJSONStore("data/expenses.json")
	require.NoError(t, err)
	assert.Equal(t, "data/expenses.json", store.Path())
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	store := setupStore(t)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Expenses)
	assert.NotNil(t, snapshot.Expenses)
	assert.Equal(t, 0, snapshot.LastID)
}

func TestJSONStore_LoadEmptyFile(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("\n  \n"), 0600))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Expenses)
	assert.Equal(t, 0, snapshot.LastID)
}

func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	want := sampleExpenses()

	require.NoError(t, store.Save(ctx, want))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, snapshot.Expenses)
	assert.Equal(t, 10, snapshot.LastID)
}

func TestJSONStore_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.Save(ctx, sampleExpenses()))

	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, snapshot.Expenses))

	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestJSONStore_FileFormat(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.Save(ctx, map[int]model.Expense{
		2: {ID: 2, Description: "Bus", Amount: 5.75, Category: model.CategoryTransport, CreatedAt: date(2024, 1, 2)},
		1: {ID: 1, Description: "Food & drink", Amount: 12, Category: model.CategoryFood, CreatedAt: date(2024, 1, 1)},
	}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	want := `{
  "1": {
    "id": 1,
    "description": "Food & drink",
    "amount": 12,
    "creationDate": "2024-01-01",
    "category": "FOOD"
  },
  "2": {
    "id": 2,
    "description": "Bus",
    "amount": 5.75,
    "creationDate": "2024-01-02",
    "category": "TRANSPORT"
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestJSONStore_SaveEmpty(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.Save(ctx, map[int]model.Expense{}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Expenses)
}

func TestJSONStore_KeysSortedNumerically(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.Save(ctx, sampleExpenses()))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Less(t, strings.Index(content, `"3": {`), strings.Index(content, `"10": {`))
}

func TestJSONStore_RecoversLastID(t *testing.T) {
	store := setupStore(t)
	content := `{
  "1": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"},
  "2": {"id": 2, "description": "b", "amount": 2, "creationDate": "2024-01-02", "category": "HOME"},
  "5": {"id": 5, "description": "c", "amount": 3, "creationDate": "2024-01-03", "category": "MISC"}
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Expenses, 3)
	assert.Equal(t, 5, snapshot.LastID)
	assert.Equal(t, date(2024, 1, 3), snapshot.Expenses[5].CreatedAt)
	assert.Equal(t, model.CategoryHome, snapshot.Expenses[2].Category)
}

func TestJSONStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"1": {"id": 1,`},
		{name: "not an object", content: `[1, 2, 3]`},
		{name: "non numeric key", content: `{"one": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"}}`},
		{name: "zero padded key", content: `{"1": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"}, "01": {"id": 1, "description": "b", "amount": 2, "creationDate": "2024-01-01", "category": "HOME"}}`},
		{name: "signed key", content: `{"+2": {"id": 2, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"}}`},
		{name: "key id mismatch", content: `{"2": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"}}`},
		{name: "epoch date", content: `{"1": {"id": 1, "description": "a", "amount": 1, "creationDate": 1704067200, "category": "FOOD"}}`},
		{name: "bad date", content: `{"1": {"id": 1, "description": "a", "amount": 1, "creationDate": "01/01/2024", "category": "FOOD"}}`},
		{name: "unknown category", content: `{"1": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "PETS"}}`},
		{name: "label instead of name", content: `{"1": {"id": 1, "description": "a", "amount": 1, "creationDate": "2024-01-01", "category": "Food & Dining"}}`},
		{name: "negative amount", content: `{"1": {"id": 1, "description": "a", "amount": -1, "creationDate": "2024-01-01", "category": "FOOD"}}`},
		{name: "empty description", content: `{"1": {"id": 1, "description": "", "amount": 1, "creationDate": "2024-01-01", "category": "FOOD"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0600))

			_, err := store.Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStorage)

			var storageErr *Error
			require.True(t, errors.As(err, &storageErr))
			assert.Equal(t, "read", storageErr.Op)
			assert.Equal(t, store.Path(), storageErr.Path)
			assert.Contains(t, err.Error(), store.Path())
		})
	}
}

func TestJSONStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewJSONStore(filepath.Join(blocker, DefaultFileName))
	require.NoError(t, err)

	err = store.Save(context.Background(), sampleExpenses())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)

	var storageErr *Error
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "write", storageErr.Op)
	assert.Contains(t, err.Error(), store.Path())
}

func TestJSONStore_SaveRejectsInvalidExpense(t *testing.T) {
	store := setupStore(t)
	err := store.Save(context.Background(), map[int]model.Expense{
		1: {ID: 1, Description: "", Amount: 1, Category: model.CategoryFood, CreatedAt: date(2024, 1, 1)},
	})
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrInvalidExpense)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestJSONStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Save(context.Background(), sampleExpenses()))
	require.NoError(t, store.Save(context.Background(), sampleExpenses()))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())
}

func TestJSONStore_CanceledContext(t *testing.T) {
	store := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = store.Save(ctx, sampleExpenses())
	assert.ErrorIs(t, err, context.Canceled)
}
