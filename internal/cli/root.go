package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/config"
	"github.com/alexanderramin/agenda/internal/travel"
	"github.com/spf13/cobra"
)

// TravelEstimator is the travel surface the CLI needs.
type TravelEstimator interface {
	Describe(ctx context.Context, origin, destination string) travel.Info
}

// App holds references to all use cases used by CLI commands.
type App struct {
	Events      app.EventUseCase
	Categories  app.CategoryUseCase
	Schedule    app.ScheduleUseCase
	Conflicts   app.ConflictUseCase
	Suggestions app.SuggestionUseCase
	Travel      TravelEstimator

	Config     *config.Config
	ConfigPath string

	// User is the calendar owner every command acts for.
	User     string
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().In(a.loc())
	}
	return time.Now().In(a.loc())
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "agenda" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "agenda",
		Short:         "Calendar assistant: slot search, travel conflicts and suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&app.User, "user", "u", app.User, "Calendar owner")

	root.AddCommand(
		newEventCmd(app),
		newCategoryCmd(app),
		newScheduleCmd(app),
		newConflictsCmd(app),
		newOptimizeCmd(app),
		newTravelCmd(app),
		newSuggestCmd(app),
		newConfigCmd(app),
	)

	return root
}
