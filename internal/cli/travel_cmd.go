package cli

import (
	"fmt"

	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTravelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "travel",
		Short: "Estimate travel between locations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "estimate FROM TO",
		Short: "Estimate travel time from one location to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Travel == nil {
				return fmt.Errorf("travel estimator is not configured")
			}
			info := app.Travel.Describe(cmd.Context(), args[0], args[1])
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTravel(info))
			return nil
		},
	})

	return cmd
}
