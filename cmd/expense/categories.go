package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		Long:  `Display the available categories. Either column is accepted wherever a category is expected.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Label"))
			for _, c := range model.Categories() {
				fmt.Fprintf(w, "%s\t%s\n", c, cli.SubtleStyle.Render(c.DisplayName()))
			}

			return w.Flush()
		},
	}
}
