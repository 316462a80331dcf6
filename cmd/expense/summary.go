package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func summaryCmd(a *app) *cobra.Command {
	var (
		filters    queryFlags
		byCategory bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the total of expenses",
		Long: `Show the total amount spent, optionally restricted with the same filters as list.

Examples:
  expense summary
  expense summary --month 2024-03
  expense summary -y 2024 --by-category`,
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

			slog.Debug("Summarizing expenses", "query", q.String())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Total expenses: %.2f", t.Summary(q))))

			if byCategory {
				totals := t.SummaryByCategory(q)
				if len(totals) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.TitleStyle.Render(cli.ChartIcon+" By category"))
				return cli.WriteCategoryTotals(out, totals)
			}
			return nil
		},
	}

	filters.register(cmd, false)
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "break the total down per category")
	return cmd
}
