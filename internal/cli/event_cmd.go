package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/importer"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "ev"},
		Short:   "Manage calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventShowCmd(app),
		newEventMoveCmd(app),
		newEventRemoveCmd(app),
		newEventImportCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, start, location, description, categoryID, rule string
	var duration time.Duration
	var fixed bool
	var priority domain.Priority

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			startAt, err := parseDateTime(start, app.now(), app.loc())
			if err != nil {
				return err
			}
			if duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}

			e := &domain.Event{
				UserID:      app.User,
				Title:       strings.TrimSpace(title),
				Description: description,
				Start:       startAt.UTC(),
				End:         startAt.Add(duration).UTC(),
				Location:    location,
				Priority:    priority,
				Flexible:    !fixed,
				Status:      domain.EventPending,
				CategoryID:  categoryID,
				RRule:       rule,
			}
			if err := app.Events.Create(ctx, e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s (%s)\n",
				formatter.Bold(e.Title),
				formatter.HumanTime(e.Start.In(app.loc())),
				formatter.TruncID(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Event title")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time (YYYY-MM-DD HH:MM)")
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "Event length")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Where the event takes place")
	cmd.Flags().StringVar(&description, "description", "", "Event notes")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category ID")
	cmd.Flags().StringVar(&rule, "rrule", "", "Recurrence rule, e.g. FREQ=WEEKLY;BYDAY=MO")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "Never move this event when resolving conflicts")
	addPriorityFlag(cmd.Flags(), &priority, domain.PriorityMedium)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var date string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, app.now(), app.loc())
			if err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}

			events, err := app.Events.ListRange(ctx, app.User, day, day.AddDate(0, 0, days))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEventTable(events, categoryNames(cmd, app), app.loc()))
			return nil
		},
	}

	addDayFlag(cmd.Flags(), &date)
	cmd.Flags().IntVar(&days, "days", 1, "Number of days to show")

	return cmd
}

// categoryNames maps category IDs to names for display. Lookup failures
// only cost the category column.
func categoryNames(cmd *cobra.Command, app *App) map[string]string {
	names := make(map[string]string)
	if app.Categories == nil {
		return names
	}
	list, err := app.Categories.List(cmd.Context(), app.User)
	if err != nil {
		return names
	}
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.Get(ctx, app.User, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEvent(e, app.loc()))
			return nil
		},
	}
}

func newEventMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move an event to a new start time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			newStart, err := parseDateTime(to, app.now(), app.loc())
			if err != nil {
				return err
			}
			e, err := app.Events.Move(ctx, app.User, id, newStart.UTC())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n",
				formatter.Bold(e.Title), formatter.HumanTime(e.Start.In(app.loc())))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New start time (YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, app.User, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newEventImportCmd(app *App) *cobra.Command {
	var opts importer.Options

	cmd := &cobra.Command{
		Use:   "import FILE.ics",
		Short: "Import events from an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parsed, err := importer.LoadICS(args[0])
			if err != nil {
				return err
			}

			if errs := importer.ValidateEvents(parsed); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s %v\n", formatter.StyleRed.Render("✖"), e)
				}
				return fmt.Errorf("%s: %d validation errors, nothing imported", args[0], len(errs))
			}

			converted := importer.Convert(parsed, opts)
			res, err := app.Events.Import(ctx, app.User, converted.Events)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d events, %d already present\n", res.Created, res.Skipped)
			if converted.Overrides > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Ignored %d modified occurrences of recurring events", converted.Overrides)))
			}
			if converted.AllDay > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Skipped %d all-day events", converted.AllDay)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Flexible, "flexible", false, "Let the scheduler move imported events")
	cmd.Flags().BoolVar(&opts.SkipAllDay, "skip-all-day", false, "Leave out all-day events")
	cmd.Flags().StringVar(&opts.CategoryID, "category", "", "Category ID for imported events")

	return cmd
}
