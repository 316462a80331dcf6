package main

import (
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/spf13/cobra"
)

func addCmd(a *app) *cobra.Command {
	var (
		description string
		category    string
		amount      float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Long: `Record a new expense dated today.

Examples:
  expense add -d "Lunch" -a 12.50 -c food
  expense add --description "Bus pass" --amount 40 --category "Transportation"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}

			t, err := a.initTracker(cmd.Context())
			if err != nil {
				return err
			}

			expense, err := t.Add(cmd.Context(), description, amount, cat)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Expense added successfully (ID: %d)", expense.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what the money was spent on")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount spent, greater than zero")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or label (see expense categories)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
