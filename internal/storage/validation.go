package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidExpense = errors.New("invalid expense")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpenses checks a collection before it is written.
func validateExpenses(expenses map[int]model.Expense) error {
	for id, e := range expenses {
		if id != e.ID {
			return fmt.Errorf("%w: key %d holds expense %d", ErrInvalidExpense, id, e.ID)
		}
		if err := validateExpense(e); err != nil {
			return fmt.Errorf("expense %d: %w", id, err)
		}
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(e model.Expense) error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidExpense)
	}
	if err := model.ValidateDescription(e.Description); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	if err := model.ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidExpense, string(e.Category))
	}
	if e.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation date", ErrInvalidExpense)
	}
	return nil
}

// validateRecord checks a decoded record before it becomes an expense.
// The category has already been checked by its UnmarshalText.
func validateRecord(rec expenseRecord) error {
	if rec.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidExpense)
	}
	if err := model.ValidateDescription(rec.Description); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	if err := model.ValidateAmount(rec.Amount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, err)
	}
	if rec.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExpense)
	}
	return nil
}
