package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// EventRepo is the event store. List methods return events ordered by
// start time with recurring series expanded into occurrences.
type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id, userID string) (*domain.Event, error)
	// ListOverlapping returns events intersecting the half-open interval [start, end).
	ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]*domain.Event, error)
	// ListDay returns events starting on day's calendar day, in day's location.
	ListDay(ctx context.Context, userID string, day time.Time) ([]*domain.Event, error)
	// ListUpdatedSince returns stored rows (series are not expanded) updated at or after since.
	ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Reschedule(ctx context.Context, id, userID string, newStart, now time.Time) (*domain.Event, error)
	Delete(ctx context.Context, id, userID string) error
}

// DedupKey identifies suggestions that must not be emitted twice while active.
type DedupKey struct {
	UserID         string
	Type           domain.SuggestionType
	ReferenceDay   string
	RelatedEventID *string
}

type SuggestionRepo interface {
	Save(ctx context.Context, s *domain.Suggestion) error
	GetByID(ctx context.Context, id, userID string) (*domain.Suggestion, error)
	// ListActive returns pending, unexpired suggestions ordered by priority
	// descending then creation time descending.
	ListActive(ctx context.Context, userID string, now time.Time) ([]*domain.Suggestion, error)
	ListByStatus(ctx context.Context, userID string, status domain.SuggestionStatus) ([]*domain.Suggestion, error)
	UpdateStatus(ctx context.Context, id, userID string, status domain.SuggestionStatus) (*domain.Suggestion, error)
	// ExpirePending flips pending suggestions whose expiry is at or before now.
	ExpirePending(ctx context.Context, userID string, now time.Time) (int64, error)
	HasActive(ctx context.Context, key DedupKey, now time.Time) (bool, error)
	Delete(ctx context.Context, id, userID string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Category, error)
}
