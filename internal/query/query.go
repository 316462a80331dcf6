// Package query builds the filter and sort applied to expenses when they
// are listed or summarized.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// SortKey selects the ordering of Apply's result.
type SortKey int

const (
	// SortByID orders by ascending id. It is the default.
	SortByID SortKey = iota
	// SortByAmountAsc orders by ascending amount.
	SortByAmountAsc
	// SortByAmountDesc orders by descending amount.
	SortByAmountDesc
)

func (k SortKey) String() string {
	switch k {
	case SortByAmountAsc:
		return "amount:asc"
	case SortByAmountDesc:
		return "amount:desc"
	default:
		return "id:asc"
	}
}

// Query is an immutable filter plus ordering. The zero value matches every
// expense and sorts by id. Builder methods return a new Query and leave the
// receiver untouched, so a base query can be shared and extended.
type Query struct {
	criteria []Criterion
	sort     SortKey
}

// New returns a query that matches everything.
func New() Query {
	return Query{}
}

func (q Query) with(c Criterion) Query {
	criteria := make([]Criterion, 0, len(q.criteria)+1)
	criteria = append(criteria, q.criteria...)
	criteria = append(criteria, c)
	return Query{criteria: criteria, sort: q.sort}
}

// ByCategory narrows the query to expenses in any of the given categories.
// Calling it with no categories leaves the query unchanged.
func (q Query) ByCategory(categories ...model.Category) Query {
	if len(categories) == 0 {
		return q
	}
	return q.with(ByCategory{Categories: slices.Clone(categories)})
}

// ByMinAmount narrows the query to expenses of at least amount.
func (q Query) ByMinAmount(amount float64) Query {
	return q.with(ByMinAmount{Amount: amount})
}

// ByMonth narrows the query to expenses created in the given month.
func (q Query) ByMonth(month YearMonth) Query {
	return q.with(ByMonth{Month: month})
}

// ByYear narrows the query to expenses created in the given year.
func (q Query) ByYear(year int) Query {
	return q.with(ByYear{Year: year})
}

// SortByAmount replaces the ordering with amount order. The filter is kept.
func (q Query) SortByAmount(ascending bool) Query {
	out := Query{criteria: q.criteria, sort: SortByAmountDesc}
	if ascending {
		out.sort = SortByAmountAsc
	}
	return out
}

// Criteria returns a copy of the filter criteria in the order they were added.
func (q Query) Criteria() []Criterion {
	return slices.Clone(q.criteria)
}

// Sort returns the ordering.
func (q Query) Sort() SortKey {
	return q.sort
}

// Match reports whether e satisfies every criterion.
func (q Query) Match(e model.Expense) bool {
	for _, c := range q.criteria {
		if !c.Match(e) {
			return false
		}
	}
	return true
}

// Compare orders a and b by the query's sort key. Equal amounts fall back
// to id order so results do not depend on map iteration order.
func (q Query) Compare(a, b model.Expense) int {
	switch q.sort {
	case SortByAmountAsc:
		if c := compareFloat(a.Amount, b.Amount); c != 0 {
			return c
		}
	case SortByAmountDesc:
		if c := compareFloat(b.Amount, a.Amount); c != 0 {
			return c
		}
	}
	return a.ID - b.ID
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Apply returns the matching expenses in sorted order. The input slice is
// not modified.
func (q Query) Apply(expenses []model.Expense) []model.Expense {
	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, q.Compare)
	return out
}

// String describes the query for logs, e.g. "category in [FOOD] and amount >= 10.00; sort id:asc".
func (q Query) String() string {
	if len(q.criteria) == 0 {
		return "all; sort " + q.sort.String()
	}
	parts := make([]string, 0, len(q.criteria))
	for _, c := range q.criteria {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%s; sort %s", strings.Join(parts, " and "), q.sort)
}
