// Package service defines the interfaces shared between the tracker and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// Snapshot is the full persisted state: every expense keyed by id, plus the
// highest id seen so new ids never collide with persisted ones.
type Snapshot struct {
	Expenses map[int]model.Expense
	LastID   int
}

// Storage defines the contract for our persistence layer.
// Save always replaces the whole persisted collection.
type Storage interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, expenses map[int]model.Expense) error
}

// CategoryTotal is the summed amount and count of matching expenses in one category.
type CategoryTotal struct {
	Category model.Category
	Count    int
	Amount   float64
}
