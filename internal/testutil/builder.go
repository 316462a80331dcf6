// Package testutil provides test utilities for seeding expense data.
//
// Example:
//
//	expenses := testutil.NewBuilder(t).
//		WithFixture(testutil.FixtureScenario).
//		On(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)).
//		With("Rent", 900, model.CategoryHome).
//		Build()
//
//	store := testutil.SetupTestStore(t, expenses)
package testutil

import (
	"maps"
	"testing"
	"time"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// DefaultDate is the creation date used until Builder.On changes it.
var DefaultDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// Builder accumulates expenses with sequentially assigned ids.
type Builder struct {
	t        *testing.T
	date     time.Time
	expenses map[int]model.Expense
	ids      *model.IDSequence
}

// NewBuilder returns an empty builder. Ids start at 1.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		t:        t,
		date:     DefaultDate,
		expenses: make(map[int]model.Expense),
		ids:      model.NewIDSequence(0),
	}
}

// On sets the creation date of the expenses added after it.
func (b *Builder) On(date time.Time) *Builder {
	b.date = date
	return b
}

// SkipTo makes the next expense take id. Ids may only move forward.
func (b *Builder) SkipTo(id int) *Builder {
	b.t.Helper()
	if id <= b.ids.Last() {
		b.t.Fatalf("id %d is not after last id %d", id, b.ids.Last())
	}
	b.ids.Reset(id - 1)
	return b
}

// With adds a valid expense or fails the test.
func (b *Builder) With(description string, amount float64, category model.Category) *Builder {
	b.t.Helper()
	expense, err := model.NewExpense(b.ids, description, amount, category, b.date)
	if err != nil {
		b.t.Fatalf("invalid test expense %q: %v", description, err)
	}
	b.expenses[expense.ID] = expense
	return b
}

// WithFixture adds every expense of f on the current date.
func (b *Builder) WithFixture(f Fixture) *Builder {
	b.t.Helper()
	for _, e := range f.Expenses {
		b.With(e.Description, e.Amount, e.Category)
	}
	return b
}

// Build returns a copy of the accumulated expenses keyed by id.
func (b *Builder) Build() map[int]model.Expense {
	return maps.Clone(b.expenses)
}
