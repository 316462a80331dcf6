package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	var filters queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List expenses, optionally filtered and sorted by amount.

Filters combine: every flag given narrows the result.

Examples:
  expense list
  expense list -c food -c home --month 2024-03
  expense list -m 20 --sort desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := filters.query(cmd)
			if err != nil {
				return err
			}

			t, err := a.initTracker(cmd.Context())
			if err != nil {
				return err
			}

			slog.Debug("Listing expenses", "query", q.String())
			expenses := t.List(q)
			if len(expenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No expenses found"))
				return nil
			}

			return cli.WriteExpenseTable(cmd.OutOrStdout(), expenses)
		},
	}

	filters.register(cmd, true)
	return cmd
}
