package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// Criterion is a single filter condition. The concrete types below are the
// complete set.
type Criterion interface {
	Match(e model.Expense) bool
	String() string
}

// ByCategory matches expenses whose category is one of Categories.
type ByCategory struct {
	Categories []model.Category
}

// Match implements Criterion.
func (c ByCategory) Match(e model.Expense) bool {
	return slices.Contains(c.Categories, e.Category)
}

func (c ByCategory) String() string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.String())
	}
	return fmt.Sprintf("category in [%s]", strings.Join(names, ","))
}

// ByMinAmount matches expenses with Amount >= the threshold.
type ByMinAmount struct {
	Amount float64
}

// Match implements Criterion.
func (c ByMinAmount) Match(e model.Expense) bool {
	return e.Amount >= c.Amount
}

func (c ByMinAmount) String() string {
	return fmt.Sprintf("amount >= %.2f", c.Amount)
}

// ByMonth matches expenses created in a given year and month.
type ByMonth struct {
	Month YearMonth
}

// Match implements Criterion.
func (c ByMonth) Match(e model.Expense) bool {
	return YearMonthOf(e.CreatedAt) == c.Month
}

func (c ByMonth) String() string {
	return "month = " + c.Month.String()
}

// ByYear matches expenses created in a given year.
type ByYear struct {
	Year int
}

// Match implements Criterion.
func (c ByYear) Match(e model.Expense) bool {
	return e.CreatedAt.Year() == c.Year
}

func (c ByYear) String() string {
	return fmt.Sprintf("year = %04d", c.Year)
}
