package app

import (
	"context"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

type ScheduleUseCase interface {
	FindBestSlot(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type ConflictUseCase interface {
	DetectDayConflicts(ctx context.Context, userID string, day time.Time) ([]DayConflict, error)
	OptimizeDay(ctx context.Context, userID string, day time.Time) (*OptimizeResult, error)
	ApplyFix(ctx context.Context, userID string, c DayConflict) (*FixResult, error)
	ApplySequence(ctx context.Context, userID string, proposals []SequenceProposal) ([]FixResult, error)
}

type SuggestionUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Suggestion, error)
	ListByStatus(ctx context.Context, userID string, status domain.SuggestionStatus) ([]*domain.Suggestion, error)
	Get(ctx context.Context, userID, id string) (*domain.Suggestion, error)
	Accept(ctx context.Context, userID, id string) (*domain.Suggestion, error)
	Reject(ctx context.Context, userID, id string) (*domain.Suggestion, error)
	Delete(ctx context.Context, userID, id string) error
}

type EventUseCase interface {
	Create(ctx context.Context, e *domain.Event) error
	Get(ctx context.Context, userID, id string) (*domain.Event, error)
	ListRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.Event, error)
	Move(ctx context.Context, userID, id string, newStart time.Time) (*domain.Event, error)
	Delete(ctx context.Context, userID, id string) error
	// Import stores events that do not exist yet and reports how many were
	// created and skipped.
	Import(ctx context.Context, userID string, events []*domain.Event) (*ImportResult, error)
}

type CategoryUseCase interface {
	Create(ctx context.Context, c *domain.Category) error
	List(ctx context.Context, userID string) ([]*domain.Category, error)
}

type ImportResult struct {
	Created int
	Skipped int
}
