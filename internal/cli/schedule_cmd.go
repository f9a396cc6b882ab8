package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(a *App) *cobra.Command {
	var at, location, categoryID, title string
	var duration time.Duration
	var days int
	var priority domain.Priority
	var constraint constraintFlags
	var create bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Find the best free slot for an event",
		Long: `Find the best free slot for an event of the given duration.

The preferred time is tried first. When it is busy, nearby slots over the
next --days days are scored on distance from the preferred time, time of
day, neighbouring events and travel between locations.

With --create and --title the event is added at the chosen slot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := a.now()

			preferred := now
			if at != "" {
				var err error
				preferred, err = parseDateTime(at, now, a.loc())
				if err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("days") && a.Config != nil {
				days = a.Config.Scheduling.SearchDays
			}
			if create && strings.TrimSpace(title) == "" {
				return fmt.Errorf("--create needs --title")
			}

			resp, err := a.Schedule.FindBestSlot(ctx, scheduleRequest{
				user:       a.User,
				duration:   duration,
				preferred:  preferred,
				priority:   priority,
				location:   location,
				categoryID: categoryID,
				constraint: constraint,
				days:       days,
			}.build())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSchedule(resp, a.loc()))
			if !resp.Success || !create {
				return nil
			}

			e := &domain.Event{
				UserID:     a.User,
				Title:      strings.TrimSpace(title),
				Start:      resp.ScheduledTime.UTC(),
				End:        resp.ScheduledTime.Add(duration).UTC(),
				Location:   location,
				Priority:   priority,
				Flexible:   true,
				Status:     domain.EventPending,
				CategoryID: categoryID,
			}
			if err := a.Events.Create(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nAdded %s (%s)\n", formatter.Bold(e.Title), formatter.TruncID(e.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.DurationVar(&duration, "duration", time.Hour, "Event length")
	f.StringVar(&at, "at", "", "Preferred start (YYYY-MM-DD HH:MM or HH:MM); defaults to now")
	f.IntVar(&days, "days", 7, "Days to search beyond the preferred day; 0 checks only the preferred slot")
	f.StringVarP(&location, "location", "l", "", "Where the event takes place")
	f.StringVar(&categoryID, "category", "", "Category ID")
	addPriorityFlag(f, &priority, domain.PriorityMedium)
	f.StringVar(&constraint.notBefore, "not-before", "", "Earliest start time of day (HH:MM)")
	f.StringVar(&constraint.notAfter, "not-after", "", "Latest start time of day (HH:MM)")
	f.BoolVar(&constraint.morning, "morning", false, "Only slots starting 06:00-12:00")
	f.BoolVar(&constraint.afternoon, "afternoon", false, "Only slots starting 12:00-18:00")
	f.BoolVar(&constraint.evening, "evening", false, "Only slots starting 18:00-22:00")
	f.BoolVar(&create, "create", false, "Add the event at the chosen slot")
	f.StringVarP(&title, "title", "t", "", "Title for --create")
	cmd.MarkFlagsMutuallyExclusive("morning", "afternoon", "evening")

	return cmd
}

type constraintFlags struct {
	notBefore, notAfter         string
	morning, afternoon, evening bool
}

type scheduleRequest struct {
	user       string
	duration   time.Duration
	preferred  time.Time
	priority   domain.Priority
	location   string
	categoryID string
	constraint constraintFlags
	days       int
}

func (r scheduleRequest) build() app.ScheduleRequest {
	return app.ScheduleRequest{
		UserID:         r.user,
		Duration:       r.duration,
		PreferredStart: r.preferred,
		Priority:       r.priority,
		Location:       r.location,
		CategoryID:     r.categoryID,
		SearchDays:     r.days,
		Constraint: app.ConstraintSpec{
			NotBefore:     r.constraint.notBefore,
			NotAfter:      r.constraint.notAfter,
			MorningOnly:   r.constraint.morning,
			AfternoonOnly: r.constraint.afternoon,
			EveningOnly:   r.constraint.evening,
		},
	}
}
