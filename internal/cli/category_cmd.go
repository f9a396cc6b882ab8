package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage event categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Category{
				UserID: app.User,
				Name:   strings.TrimSpace(args[0]),
				Color:  color,
			}
			if err := app.Categories.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", formatter.Bold(c.Name), c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #83a598")

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Categories.List(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No categories found."))
				return nil
			}

			headers := []string{"ID", "NAME", "COLOR"}
			rows := make([][]string, 0, len(list))
			for _, c := range list {
				color := formatter.Dim("--")
				if c.Color != "" {
					color = c.Color
				}
				rows = append(rows, []string{c.ID, formatter.StylePurple.Render(c.Name), color})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Categories", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
