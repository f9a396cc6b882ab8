package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/scheduler"
)

type conflictService struct {
	events   repository.EventRepo
	uow      db.UnitOfWork
	detector *scheduler.ConflictDetector
	opts     options
}

func NewConflictService(
	events repository.EventRepo,
	uow db.UnitOfWork,
	detector *scheduler.ConflictDetector,
	opts ...Option,
) app.ConflictUseCase {
	return &conflictService{events: events, uow: uow, detector: detector, opts: buildOptions(opts)}
}

func (s *conflictService) DetectDayConflicts(ctx context.Context, userID string, day time.Time) (conflicts []app.DayConflict, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "day": repository.DayKey(day.In(s.opts.loc))}
	defer func() {
		fields["conflicts"] = len(conflicts)
		observe(ctx, s.opts.observer, "detect-day-conflicts", startedAt, fields, &err)
	}()

	events, err := s.events.ListDay(ctx, userID, day.In(s.opts.loc))
	if err != nil {
		return nil, fmt.Errorf("loading day events: %w", err)
	}
	return s.detector.Detect(ctx, events), nil
}

func (s *conflictService) OptimizeDay(ctx context.Context, userID string, day time.Time) (*app.OptimizeResult, error) {
	events, err := s.events.ListDay(ctx, userID, day.In(s.opts.loc))
	if err != nil {
		return nil, fmt.Errorf("loading day events: %w", err)
	}
	res := s.detector.OptimizeSequence(ctx, events)
	return &res, nil
}

// ApplyFix moves the second event of a conflict to the suggested start. The
// event must still start where it did at detection time.
func (s *conflictService) ApplyFix(ctx context.Context, userID string, c app.DayConflict) (fix *app.FixResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "event": c.Second.ID}
	defer observe(ctx, s.opts.observer, "apply-conflict-fix", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		fix, txErr = s.move(ctx, repository.NewSQLiteEventRepo(tx), userID, c.Second, c.SuggestedStart)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return fix, nil
}

// ApplySequence applies every proposal of an optimization or none of them.
func (s *conflictService) ApplySequence(ctx context.Context, userID string, proposals []app.SequenceProposal) (fixes []app.FixResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "proposals": len(proposals)}
	defer observe(ctx, s.opts.observer, "apply-sequence", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := repository.NewSQLiteEventRepo(tx)
		for _, p := range proposals {
			fix, err := s.move(ctx, events, userID, p.Event, p.NewStart)
			if err != nil {
				return err
			}
			fixes = append(fixes, *fix)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fixes, nil
}

func (s *conflictService) move(ctx context.Context, events repository.EventRepo, userID string, ref app.EventRef, newStart time.Time) (*app.FixResult, error) {
	if ref.Occurrence {
		return nil, fmt.Errorf("%q: %w", ref.Title, app.ErrOccurrence)
	}
	e, err := events.GetByID(ctx, ref.ID, userID)
	if err != nil {
		return nil, err
	}
	if !e.Flexible {
		return nil, fmt.Errorf("%q: %w", e.Title, app.ErrNotFlexible)
	}
	if !e.Start.Equal(ref.Start) {
		return nil, fmt.Errorf("%q: %w", e.Title, app.ErrStaleConflict)
	}

	prev := e.Start
	moved, err := events.Reschedule(ctx, e.ID, userID, newStart, s.opts.clock())
	if err != nil {
		if errors.Is(err, repository.ErrRecurringSeries) {
			return nil, fmt.Errorf("%q: %w", e.Title, app.ErrOccurrence)
		}
		return nil, err
	}
	return &app.FixResult{
		EventID:       moved.ID,
		Title:         moved.Title,
		PreviousStart: prev,
		NewStart:      moved.Start,
		NewEnd:        moved.End,
	}, nil
}

