package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/service"
)

// Column widths applied before tabwriter alignment.
const (
	CategoryWidth    = 16
	DescriptionWidth = 24
)

const ellipsis = "..."

// Truncate shortens text to at most limit runes. Longer text is cut to
// limit-3 runes followed by "...".
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= len(ellipsis) {
		return string(runes[:max(limit, 0)])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// WriteExpenseTable writes expenses as an aligned table in the given order.
func WriteExpenseTable(out io.Writer, expenses []model.Expense) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Description"),
		TableHeaderStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", CategoryWidth),
		strings.Repeat("-", DescriptionWidth),
		strings.Repeat("-", 10))

	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n",
			e.ID,
			e.CreatedAt.Format(model.DateLayout),
			Truncate(e.Category.DisplayName(), CategoryWidth),
			Truncate(e.Description, DescriptionWidth),
			e.Amount)
	}

	return w.Flush()
}

// WriteCategoryTotals writes one row per category total.
func WriteCategoryTotals(out io.Writer, totals []service.CategoryTotal) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Count"),
		TableHeaderStyle.Render("Total"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		strings.Repeat("-", CategoryWidth),
		strings.Repeat("-", 5),
		strings.Repeat("-", 10))

	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n",
			Truncate(t.Category.DisplayName(), CategoryWidth),
			t.Count,
			t.Amount)
	}

	return w.Flush()
}
