package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/agenda/internal/domain"
)

// Event options
type EventOption func(*domain.Event)

func WithLocation(loc string) EventOption {
	return func(e *domain.Event) {
		e.Location = loc
	}
}

func WithCategory(id string) EventOption {
	return func(e *domain.Event) {
		e.CategoryID = id
	}
}

func WithEventPriority(p domain.Priority) EventOption {
	return func(e *domain.Event) {
		e.Priority = p
	}
}

func WithEventStatus(s domain.EventStatus) EventOption {
	return func(e *domain.Event) {
		e.Status = s
	}
}

func WithFlexible(flexible bool) EventOption {
	return func(e *domain.Event) {
		e.Flexible = flexible
	}
}

func WithRRule(rule string) EventOption {
	return func(e *domain.Event) {
		e.RRule = rule
	}
}

// WithHistory sets creation and last-update times.
func WithHistory(created, updated time.Time) EventOption {
	return func(e *domain.Event) {
		e.CreatedAt = created
		e.UpdatedAt = updated
	}
}

func WithEventID(id string) EventOption {
	return func(e *domain.Event) {
		e.ID = id
	}
}

// NewTestEvent builds a pending, flexible, medium-priority event lasting d
// from start.
func NewTestEvent(userID, title string, start time.Time, d time.Duration, opts ...EventOption) *domain.Event {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Start:     start,
		End:       start.Add(d),
		Priority:  domain.PriorityMedium,
		Flexible:  true,
		Status:    domain.EventPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestCategory(userID, name string) *domain.Category {
	return &domain.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     "#458588",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Suggestion options
type SuggestionOption func(*domain.Suggestion)

func WithSuggestionStatus(s domain.SuggestionStatus) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.Status = s
	}
}

func WithSuggestionPriority(p domain.Priority) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.Priority = p
	}
}

// WithTimes sets creation and expiry.
func WithTimes(created, expires time.Time) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.CreatedAt = created
		sg.ExpiresAt = expires
	}
}

func WithReferenceDay(day string) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.ReferenceDay = day
	}
}

func WithRelatedEvent(id string) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.RelatedEventID = &id
	}
}

func WithPayload(p domain.SuggestionPayload) SuggestionOption {
	return func(sg *domain.Suggestion) {
		sg.Payload = p
	}
}

// NewTestSuggestion builds a pending suggestion created now that expires in
// 24 hours.
func NewTestSuggestion(userID string, typ domain.SuggestionType, opts ...SuggestionOption) *domain.Suggestion {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Suggestion{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         typ,
		Title:        "Test " + string(typ),
		Priority:     domain.PriorityMedium,
		Status:       domain.SuggestionPending,
		Rule:         "test_rule",
		ReferenceDay: now.Format("2006-01-02"),
		CreatedAt:    now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
