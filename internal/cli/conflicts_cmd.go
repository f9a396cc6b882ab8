package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConflictsCmd(a *App) *cobra.Command {
	var date string
	var fix, yes bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Find back-to-back events you cannot travel between in time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, a.now(), a.loc())
			if err != nil {
				return err
			}

			conflicts, err := a.Conflicts.DetectDayConflicts(ctx, a.User, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatConflicts(conflicts, a.loc()))
			if !fix || len(conflicts) == 0 {
				return nil
			}

			var fixes []app.FixResult
			for _, c := range conflicts {
				ok, err := confirm(a, yes,
					fmt.Sprintf("Move %q to %s?", c.Second.Title, c.SuggestedStart.In(a.loc()).Format("15:04")),
					c.Message)
				if errors.Is(err, errNotInteractive) {
					return fmt.Errorf("conflicts --fix: %w; pass --yes to apply every fix", err)
				}
				if err != nil {
					return err
				}
				if !ok {
					continue
				}

				res, err := a.Conflicts.ApplyFix(ctx, a.User, c)
				switch {
				case errors.Is(err, app.ErrNotFlexible), errors.Is(err, app.ErrOccurrence), errors.Is(err, app.ErrStaleConflict):
					fmt.Fprintf(out, "%s Skipped %s: %v\n", formatter.StyleYellow.Render("!"), c.Second.Title, err)
				case err != nil:
					return err
				default:
					fixes = append(fixes, *res)
				}
			}
			if len(fixes) > 0 {
				fmt.Fprintln(out, formatter.FormatFixes(fixes, a.loc()))
			}
			return nil
		},
	}

	addDayFlag(cmd.Flags(), &date)
	cmd.Flags().BoolVar(&fix, "fix", false, "Move the later event of each conflict to its suggested start")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply fixes without asking")

	return cmd
}

func newOptimizeCmd(a *App) *cobra.Command {
	var date string
	var apply, yes bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reorder flexible events to cut travel time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, a.now(), a.loc())
			if err != nil {
				return err
			}

			res, err := a.Conflicts.OptimizeDay(ctx, a.User, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatOptimize(res, a.loc()))
			if !apply || !res.Possible {
				return nil
			}

			ok, err := confirm(a, yes, "Apply the new order?",
				fmt.Sprintf("Moves %d events and saves %s of travel", len(res.Proposals), formatter.FormatDuration(res.Savings)))
			if errors.Is(err, errNotInteractive) {
				return fmt.Errorf("optimize --apply: %w; pass --yes to apply", err)
			}
			if err != nil || !ok {
				return err
			}

			fixes, err := a.Conflicts.ApplySequence(ctx, a.User, res.Proposals)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatFixes(fixes, a.loc()))
			return nil
		},
	}

	addDayFlag(cmd.Flags(), &date)
	cmd.Flags().BoolVar(&apply, "apply", false, "Move the events to the proposed order")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without asking")

	return cmd
}
