package main

import (
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func updateCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the description of an expense",
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

			if err := t.Update(cmd.Context(), id, description); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Expense %d updated successfully", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}
