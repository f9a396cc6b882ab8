package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// defaultWatchSchedule runs the rules every half hour.
const defaultWatchSchedule = "*/30 * * * *"

func newSuggestCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suggest",
		Aliases: []string{"suggestions"},
		Short:   "Generate and review calendar suggestions",
	}

	cmd.AddCommand(
		newSuggestGenerateCmd(a),
		newSuggestListCmd(a),
		newSuggestShowCmd(a),
		newSuggestStatusCmd(a, "accept", "Accept a suggestion", a.acceptSuggestion),
		newSuggestStatusCmd(a, "reject", "Reject a suggestion", a.rejectSuggestion),
		newSuggestRemoveCmd(a),
		newSuggestReviewCmd(a),
		newSuggestWatchCmd(a),
	)

	return cmd
}

func (a *App) acceptSuggestion(ctx context.Context, id string) (*domain.Suggestion, error) {
	return a.Suggestions.Accept(ctx, a.User, id)
}

func (a *App) rejectSuggestion(ctx context.Context, id string) (*domain.Suggestion, error) {
	return a.Suggestions.Reject(ctx, a.User, id)
}

func newSuggestGenerateCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the suggestion rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.GenerateRequest{UserID: a.User}
			if cmd.Flags().Changed("date") {
				day, err := parseDay(date, a.now(), a.loc())
				if err != nil {
					return err
				}
				// Rules look back from the reference, so use the end of a past day.
				ref := day.AddDate(0, 0, 1).Add(-1)
				if now := a.now(); ref.After(now) {
					ref = now
				}
				req.Reference = &ref
			}
			return generate(cmd.Context(), a, req, cmd.OutOrStdout())
		},
	}

	addDayFlag(cmd.Flags(), &date)

	return cmd
}

func generate(ctx context.Context, a *App, req app.GenerateRequest, out io.Writer) error {
	resp, err := a.Suggestions.Generate(ctx, req)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("%d new, %d unchanged, %d expired", len(resp.Created), resp.Skipped, resp.Expired)
	if len(resp.Created) == 0 {
		fmt.Fprintf(out, "No new suggestions %s\n", formatter.Dim("("+summary+")"))
		return nil
	}
	fmt.Fprintln(out, formatter.FormatSuggestionTable(resp.Created, a.now()))
	fmt.Fprintln(out, formatter.Dim(summary))
	return nil
}

func newSuggestListCmd(a *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var list []*domain.Suggestion
			var err error
			if status == "" || status == "active" {
				list, err = a.Suggestions.ListActive(ctx, a.User)
			} else {
				list, err = a.Suggestions.ListByStatus(ctx, a.User, domain.SuggestionStatus(strings.ToLower(status)))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSuggestionTable(list, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "active", "active, pending, accepted, rejected or expired")

	return cmd
}

func newSuggestShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSuggestionID(ctx, a, args[0])
			if err != nil {
				return err
			}
			s, err := a.Suggestions.Get(ctx, a.User, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSuggestion(s, a.loc()))
			return nil
		},
	}
}

func newSuggestStatusCmd(a *App, use, short string, fn func(context.Context, string) (*domain.Suggestion, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSuggestionID(ctx, a, args[0])
			if err != nil {
				return err
			}
			s, err := fn(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.SuggestionStatusPill(s.Status), s.Title)
			return nil
		},
	}
}

func newSuggestRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a suggestion",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSuggestionID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Suggestions.Delete(ctx, a.User, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed suggestion %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

const (
	reviewAccept = "accept"
	reviewReject = "reject"
	reviewSkip   = "skip"
	reviewDone   = ""
)

func newSuggestReviewCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Walk through active suggestions and accept or reject them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if !a.interactive() {
				return fmt.Errorf("suggest review: %w; use suggest accept or reject", errNotInteractive)
			}

			skipped := make(map[string]bool)
			for {
				list, err := a.Suggestions.ListActive(ctx, a.User)
				if err != nil {
					return err
				}
				options := make([]huh.Option[string], 0, len(list)+1)
				for _, s := range list {
					if skipped[s.ID] {
						continue
					}
					options = append(options, huh.NewOption(s.Title, s.ID))
				}
				if len(options) == 0 {
					fmt.Fprintln(out, formatter.Dim("Nothing left to review."))
					return nil
				}
				options = append(options, huh.NewOption("Done", reviewDone))

				id, err := choose(a, "Which suggestion?", options)
				if err != nil || id == reviewDone {
					return err
				}
				s, err := a.Suggestions.Get(ctx, a.User, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatSuggestion(s, a.loc()))

				action, err := choose(a, "What now?", []huh.Option[string]{
					huh.NewOption("Accept", reviewAccept),
					huh.NewOption("Reject", reviewReject),
					huh.NewOption("Skip", reviewSkip),
				})
				if err != nil {
					return err
				}
				switch action {
				case reviewAccept:
					s, err = a.acceptSuggestion(ctx, id)
				case reviewReject:
					s, err = a.rejectSuggestion(ctx, id)
				default:
					skipped[id] = true
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", formatter.SuggestionStatusPill(s.Status), s.Title)
			}
		},
	}
}

func newSuggestWatchCmd(a *App) *cobra.Command {
	var spec string
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate suggestions on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, a, spec, once, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&spec, "schedule", defaultWatchSchedule, "Standard five-field cron expression")
	cmd.Flags().BoolVar(&once, "once", false, "Generate once and exit")

	return cmd
}

// watch generates immediately, then on every tick of spec until ctx ends.
func watch(ctx context.Context, a *App, spec string, once bool, out io.Writer) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid --schedule %q: %w", spec, err)
	}

	var mu sync.Mutex
	run := func() error {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, formatter.Dim(formatter.HumanTime(a.now())))
		return generate(ctx, a, app.GenerateRequest{UserID: a.User}, out)
	}

	if err := run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if once {
		return nil
	}

	c := cron.New(cron.WithLocation(a.loc()))
	if _, err := c.AddFunc(spec, func() {
		if err := run(); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "%s %v\n", formatter.StyleRed.Render("✖"), err)
		}
	}); err != nil {
		return err
	}
	c.Start()
	fmt.Fprintf(out, "Watching on %q, press Ctrl+C to stop\n", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
