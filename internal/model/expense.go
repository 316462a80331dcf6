package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
)

// DateLayout is the calendar-date format used for display and persistence.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrEmptyDescription  = fmt.Errorf("%w: description cannot be empty", common.ErrValidation)
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be greater than zero", common.ErrValidation)
)

// Expense is one recorded spending event.
// ID and CreatedAt are fixed when the expense is constructed; only the
// description can change afterwards, through UpdateDescription.
type Expense struct {
	CreatedAt   time.Time
	Description string
	Category    Category
	Amount      float64
	ID          int
}

// IDSequence hands out expense ids. It replaces a process-wide counter:
// whoever owns the expense collection owns the sequence and seeds it from
// the highest persisted id.
type IDSequence struct {
	last int
}

// NewIDSequence returns a sequence whose next id is last+1.
func NewIDSequence(last int) *IDSequence {
	if last < 0 {
		last = 0
	}
	return &IDSequence{last: last}
}

// Next advances the sequence and returns the new id.
func (s *IDSequence) Next() int {
	s.last++
	return s.last
}

// Last returns the most recently assigned id, or the seed.
func (s *IDSequence) Last() int {
	return s.last
}

// Reset moves the sequence back to last. Used to undo an id that was
// handed out for a mutation that did not persist.
func (s *IDSequence) Reset(last int) {
	if last < 0 {
		last = 0
	}
	s.last = last
}

// DateOf truncates t to its calendar date, expressed as midnight UTC so
// that the date survives a round trip through DateLayout unchanged.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateDescription rejects empty or whitespace-only descriptions.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// ValidateAmount rejects zero, negative and non-finite amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: got %v", ErrNonPositiveAmount, amount)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrNonPositiveAmount, amount)
	}
	return nil
}

// NewExpense validates its input and, only if everything is valid, takes
// the next id from ids and stamps the calendar date of now.
func NewExpense(ids *IDSequence, description string, amount float64, category Category, now time.Time) (Expense, error) {
	if err := ValidateDescription(description); err != nil {
		return Expense{}, err
	}
	if err := ValidateAmount(amount); err != nil {
		return Expense{}, err
	}
	if !category.IsValid() {
		return Expense{}, fmt.Errorf("%w: %q", ErrInvalidCategory, string(category))
	}

	return Expense{
		ID:          ids.Next(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    category,
		CreatedAt:   DateOf(now),
	}, nil
}

// UpdateDescription replaces the description, applying the same rule as
// construction.
func (e *Expense) UpdateDescription(description string) error {
	if err := ValidateDescription(description); err != nil {
		return err
	}
	e.Description = strings.TrimSpace(description)
	return nil
}

// String renders the expense for log output.
func (e Expense) String() string {
	return fmt.Sprintf("#%d %s %s %.2f %q",
		e.ID,
		e.CreatedAt.Format(DateLayout),
		e.Category,
		e.Amount,
		e.Description)
}
