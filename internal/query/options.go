package query

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/model"
)

// ErrInvalidSort is returned for an unknown sort direction.
var ErrInvalidSort = fmt.Errorf("%w: invalid sort direction", common.ErrValidation)

// Options holds the optional, still unparsed filter inputs a command
// collects from its flags. Empty fields are ignored.
type Options struct {
	MinAmount  *float64
	Month      string
	Year       string
	Sort       string
	Categories []string
}

// FromOptions parses opts and builds the corresponding query. Criteria are
// added in a fixed order: categories, minimum amount, month, year.
func FromOptions(opts Options) (Query, error) {
	q := New()

	if len(opts.Categories) > 0 {
		categories := make([]model.Category, 0, len(opts.Categories))
		for _, text := range opts.Categories {
			c, err := model.ParseCategory(text)
			if err != nil {
				return Query{}, err
			}
			categories = append(categories, c)
		}
		q = q.ByCategory(categories...)
	}

	if opts.MinAmount != nil {
		q = q.ByMinAmount(*opts.MinAmount)
	}

	if opts.Month != "" {
		ym, err := ParseYearMonth(opts.Month)
		if err != nil {
			return Query{}, err
		}
		q = q.ByMonth(ym)
	}

	if opts.Year != "" {
		year, err := ParseYear(opts.Year)
		if err != nil {
			return Query{}, err
		}
		q = q.ByYear(year)
	}

	switch strings.ToLower(strings.TrimSpace(opts.Sort)) {
	case "", "id":
	case "asc", "amount", "amount:asc":
		q = q.SortByAmount(true)
	case "desc", "amount:desc":
		q = q.SortByAmount(false)
	default:
		return Query{}, fmt.Errorf("%w: %q (expected asc or desc)", ErrInvalidSort, opts.Sort)
	}

	return q, nil
}
