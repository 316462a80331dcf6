package main

import (
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			t, err := a.initTracker(cmd.Context())
			if err != nil {
				return err
			}

			if err := t.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Expense %d deleted successfully", id)))
			return nil
		},
	}
}
