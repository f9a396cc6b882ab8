package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
)

// importNamespace derives stable event IDs from calendar UIDs so that
// importing the same file twice is a no-op.
var importNamespace = uuid.MustParse("6f1c9a52-4c1e-4b8e-9d5e-2a7f0c3b8e41")

type eventService struct {
	events repository.EventRepo
	uow    db.UnitOfWork
	opts   options
}

func NewEventService(events repository.EventRepo, uow db.UnitOfWork, opts ...Option) app.EventUseCase {
	return &eventService{events: events, uow: uow, opts: buildOptions(opts)}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := s.opts.clock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return s.events.Create(ctx, e)
}

func (s *eventService) Get(ctx context.Context, userID, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id, userID)
}

func (s *eventService) ListRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.Event, error) {
	if !end.After(start) {
		return nil, app.NewValidationError("range", "end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return s.events.ListOverlapping(ctx, userID, start, end)
}

// Move reschedules a single event. Recurring series are moved by editing
// their rule, not through Move.
func (s *eventService) Move(ctx context.Context, userID, id string, newStart time.Time) (e *domain.Event, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "event": id}
	defer observe(ctx, s.opts.observer, "move-event", startedAt, fields, &err)

	e, err = s.events.Reschedule(ctx, id, userID, newStart, s.opts.clock())
	if errors.Is(err, repository.ErrRecurringSeries) {
		return nil, fmt.Errorf("event %s: %w", id, app.ErrOccurrence)
	}
	return e, err
}

func (s *eventService) Delete(ctx context.Context, userID, id string) error {
	return s.events.Delete(ctx, id, userID)
}

// Import stores parsed calendar events for userID in one transaction. The
// incoming ID is treated as the calendar UID.
func (s *eventService) Import(ctx context.Context, userID string, events []*domain.Event) (res *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "events": len(events)}
	defer func() {
		if res != nil {
			fields["created"] = res.Created
			fields["skipped"] = res.Skipped
		}
		observe(ctx, s.opts.observer, "import-events", startedAt, fields, &err)
	}()

	if strings.TrimSpace(userID) == "" {
		return nil, app.NewValidationError("user", "is required")
	}
	now := s.opts.clock()
	res = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEventRepo(tx)
		for _, e := range events {
			e.UserID = userID
			e.ID = importID(userID, e.ID)
			_, err := repo.GetByID(ctx, e.ID, userID)
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
			if e.UpdatedAt.IsZero() {
				e.UpdatedAt = now
			}
			if err := repo.Create(ctx, e); err != nil {
				return fmt.Errorf("importing %q: %w", e.Title, err)
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func importID(userID, uid string) string {
	if uid == "" {
		return uuid.New().String()
	}
	return uuid.NewSHA1(importNamespace, []byte(userID+"\x00"+uid)).String()
}

type categoryService struct {
	categories repository.CategoryRepo
	opts       options
}

func NewCategoryService(categories repository.CategoryRepo, opts ...Option) app.CategoryUseCase {
	return &categoryService{categories: categories, opts: buildOptions(opts)}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return app.NewValidationError("name", "is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.opts.clock()
	}
	return s.categories.Create(ctx, c)
}

func (s *categoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}
