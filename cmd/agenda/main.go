package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/agenda/internal/cli"
	"github.com/alexanderramin/agenda/internal/config"
	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/scheduler"
	"github.com/alexanderramin/agenda/internal/service"
	"github.com/alexanderramin/agenda/internal/travel"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	// Determine DB path: config or default ~/.agenda/agenda.db
	dbPath := cfg.Database.Path
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".agenda", "agenda.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	suggestionRepo := repository.NewSQLiteSuggestionRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Travel estimation is shared by the slot search and the conflict detector
	// so they share one cache.
	var travelObserver travel.Observer = travel.NoopObserver{}
	if cfg.Travel.LogCalls {
		travelObserver = travel.NewLogObserver(os.Stderr)
	}
	estimator := travel.NewEstimator(cfg.TravelConfig(), travel.WithObserver(travelObserver))

	opts := []service.Option{service.WithLocation(loc)}
	if cfg.Log.UseCases {
		opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(os.Stderr, level)))
	}

	searcher := scheduler.NewSlotSearcher(cfg.SchedulerConfig(), estimator)
	detector := scheduler.NewConflictDetector(estimator)

	app := &cli.App{
		Events:     service.NewEventService(eventRepo, uow, opts...),
		Categories: service.NewCategoryService(categoryRepo, opts...),
		Schedule: service.NewSchedulingService(eventRepo, searcher,
			cfg.Scheduling.SearchTimeout, cfg.Scheduling.PrefetchWorkers, opts...),
		Conflicts:   service.NewConflictService(eventRepo, uow, detector, opts...),
		Suggestions: service.NewSuggestionService(suggestionRepo, uow, cfg.Policy(), opts...),
		Travel:      estimator,
		Config:      cfg,
		ConfigPath:  config.Path(),
		User:        cfg.User,
		Location:    loc,
	}

	// Prompts need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
