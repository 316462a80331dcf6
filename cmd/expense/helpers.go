package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/query"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/Veraticus/expense-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

// initTracker opens the configured expenses file.
func (a *app) initTracker(ctx context.Context) (*tracker.Tracker, error) {
	store, err := storage.NewJSONStore(a.config.StoragePath)
	if err != nil {
		return nil, err
	}
	return tracker.New(ctx, store)
}

// parseID parses a positional expense id. Numeric ids that were never
// assigned, such as 0, are left to the tracker to report as not found.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid expense id %q", arg), common.ErrValidation)
	}
	return id, nil
}

// queryFlags are the filter and sort flags shared by list and summary.
type queryFlags struct {
	month      string
	year       string
	sort       string
	categories []string
	minAmount  float64
}

func (f *queryFlags) register(cmd *cobra.Command, withSort bool) {
	cmd.Flags().StringArrayVarP(&f.categories, "category", "c", nil, "only this category (repeatable)")
	cmd.Flags().Float64VarP(&f.minAmount, "min-amount", "m", 0, "only amounts greater than or equal to this")
	cmd.Flags().StringVar(&f.month, "month", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVarP(&f.year, "year", "y", "", "only this year (YYYY)")
	if withSort {
		cmd.Flags().StringVar(&f.sort, "sort", "", "sort by amount (asc, desc)")
	}
}

func (f *queryFlags) query(cmd *cobra.Command) (query.Query, error) {
	opts := query.Options{
		Categories: f.categories,
		Month:      f.month,
		Year:       f.year,
		Sort:       f.sort,
	}
	if cmd.Flags().Changed("min-amount") {
		minAmount := f.minAmount
		opts.MinAmount = &minAmount
	}
	return query.FromOptions(opts)
}
