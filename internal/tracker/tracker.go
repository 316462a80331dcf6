// Package tracker owns the in-memory expense collection and keeps it in
// sync with storage.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/query"
	"github.com/Veraticus/expense-tracker/internal/service"
	"github.com/shopspring/decimal"
)

// Tracker is the authoritative expense collection. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type Tracker struct {
	storage  service.Storage
	clock    func() time.Time
	expenses map[int]model.Expense
	ids      *model.IDSequence
}

// Config holds configuration options for the tracker.
type Config struct {
	// Clock stamps creation dates. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Clock: time.Now,
	}
}

// Draft is an expense that has not been assigned an id yet.
type Draft struct {
	// Date overrides the creation date. Zero means "today".
	Date        time.Time
	Description string
	Category    model.Category
	Amount      float64
}

// New loads the persisted expenses and returns a tracker over them.
func New(ctx context.Context, storage service.Storage) (*Tracker, error) {
	return NewWithConfig(ctx, storage, DefaultConfig())
}

// NewWithConfig is New with custom configuration.
func NewWithConfig(ctx context.Context, storage service.Storage, config Config) (*Tracker, error) {
	snapshot, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	if config.Clock == nil {
		config.Clock = time.Now
	}

	expenses := snapshot.Expenses
	if expenses == nil {
		expenses = make(map[int]model.Expense)
	}

	// Trust the keys over the reported LastID in case a Storage
	// implementation under-reports.
	lastID := snapshot.LastID
	for id := range expenses {
		lastID = max(lastID, id)
	}

	return &Tracker{
		storage:  storage,
		clock:    config.Clock,
		expenses: expenses,
		ids:      model.NewIDSequence(lastID),
	}, nil
}

// Add validates and records a new expense, then persists the collection.
func (t *Tracker) Add(ctx context.Context, description string, amount float64, category model.Category) (model.Expense, error) {
	prevID := t.ids.Last()

	expense, err := model.NewExpense(t.ids, description, amount, category, t.clock())
	if err != nil {
		return model.Expense{}, err
	}

	t.expenses[expense.ID] = expense
	if err := t.persist(ctx); err != nil {
		delete(t.expenses, expense.ID)
		t.ids.Reset(prevID)
		return model.Expense{}, err
	}

	slog.Debug("Added expense", "id", expense.ID, "category", expense.Category, "amount", expense.Amount)
	return expense, nil
}

// AddAll records several expenses with a single write. Every draft is
// validated before any of them is inserted; one invalid draft rejects the
// whole batch.
func (t *Tracker) AddAll(ctx context.Context, drafts []Draft) ([]model.Expense, error) {
	for i, d := range drafts {
		if err := validateDraft(d); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i, err)
		}
	}
	if len(drafts) == 0 {
		return nil, nil
	}

	prevID := t.ids.Last()
	added := make([]model.Expense, 0, len(drafts))
	for _, d := range drafts {
		now := d.Date
		if now.IsZero() {
			now = t.clock()
		}
		expense, err := model.NewExpense(t.ids, d.Description, d.Amount, d.Category, now)
		if err != nil {
			// Unreachable after validateDraft, but never leave a partial batch.
			t.rollback(added, prevID)
			return nil, err
		}
		t.expenses[expense.ID] = expense
		added = append(added, expense)
	}

	if err := t.persist(ctx); err != nil {
		t.rollback(added, prevID)
		return nil, err
	}

	slog.Debug("Added expenses", "count", len(added), "last_id", t.ids.Last())
	return added, nil
}

func validateDraft(d Draft) error {
	if err := model.ValidateDescription(d.Description); err != nil {
		return err
	}
	if err := model.ValidateAmount(d.Amount); err != nil {
		return err
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidCategory, string(d.Category))
	}
	return nil
}

func (t *Tracker) rollback(added []model.Expense, prevID int) {
	for _, e := range added {
		delete(t.expenses, e.ID)
	}
	t.ids.Reset(prevID)
}

// Update replaces the description of an existing expense.
func (t *Tracker) Update(ctx context.Context, id int, description string) error {
	expense, ok := t.expenses[id]
	if !ok {
		return notFound(id)
	}

	previous := expense
	if err := expense.UpdateDescription(description); err != nil {
		return err
	}

	t.expenses[id] = expense
	if err := t.persist(ctx); err != nil {
		t.expenses[id] = previous
		return err
	}

	slog.Debug("Updated expense", "id", id)
	return nil
}

// Delete removes an expense.
func (t *Tracker) Delete(ctx context.Context, id int) error {
	expense, ok := t.expenses[id]
	if !ok {
		return notFound(id)
	}

	delete(t.expenses, id)
	if err := t.persist(ctx); err != nil {
		t.expenses[id] = expense
		return err
	}

	slog.Debug("Deleted expense", "id", id)
	return nil
}

// Get returns the expense with the given id.
func (t *Tracker) Get(id int) (model.Expense, error) {
	expense, ok := t.expenses[id]
	if !ok {
		return model.Expense{}, notFound(id)
	}
	return expense, nil
}

// List returns the expenses matching q in q's order. The result is a copy.
func (t *Tracker) List(q query.Query) []model.Expense {
	return q.Apply(t.values())
}

// Summary returns the total amount of the expenses matching q, or 0 when
// nothing matches.
func (t *Tracker) Summary(q query.Query) float64 {
	total := decimal.Zero
	for _, e := range t.expenses {
		if q.Match(e) {
			total = total.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	f, _ := total.Float64()
	return f
}

// SummaryByCategory totals the matching expenses per category. Categories
// without matches are omitted; the rest follow catalog order.
func (t *Tracker) SummaryByCategory(q query.Query) []service.CategoryTotal {
	sums := make(map[model.Category]decimal.Decimal)
	counts := make(map[model.Category]int)
	for _, e := range t.expenses {
		if !q.Match(e) {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(decimal.NewFromFloat(e.Amount))
		counts[e.Category]++
	}

	var totals []service.CategoryTotal
	for _, c := range model.Categories() {
		if counts[c] == 0 {
			continue
		}
		amount, _ := sums[c].Float64()
		totals = append(totals, service.CategoryTotal{
			Category: c,
			Count:    counts[c],
			Amount:   amount,
		})
	}
	return totals
}

// Len returns the number of expenses.
func (t *Tracker) Len() int {
	return len(t.expenses)
}

// LastID returns the most recently assigned id.
func (t *Tracker) LastID() int {
	return t.ids.Last()
}

func (t *Tracker) values() []model.Expense {
	return slices.Collect(maps.Values(t.expenses))
}

func (t *Tracker) persist(ctx context.Context) error {
	if err := t.storage.Save(ctx, t.expenses); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	return nil
}

func notFound(id int) error {
	return fmt.Errorf("expense %d: %w", id, common.ErrNotFound)
}
