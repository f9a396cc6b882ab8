package domain

import "time"

// Suggestion is a time-boxed recommendation produced by a calendar rule.
type Suggestion struct {
	ID             string
	UserID         string
	Type           SuggestionType
	Title          string
	Description    string
	Priority       Priority
	Status         SuggestionStatus
	Rule           string
	Payload        SuggestionPayload
	RelatedEventID *string

	// ReferenceDay is the calendar day (YYYY-MM-DD) the generating rule ran for.
	ReferenceDay string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsActive reports whether the suggestion is pending and unexpired at now.
func (s *Suggestion) IsActive(now time.Time) bool {
	return s.Status == SuggestionPending && s.ExpiresAt.After(now)
}

// Expired reports whether a pending suggestion is past its expiry at now.
func (s *Suggestion) Expired(now time.Time) bool {
	return s.Status == SuggestionPending && !s.ExpiresAt.After(now)
}

// SuggestionPayload carries the rule-specific facts of a suggestion.
// Implementations are BreakPayload, BalancePayload and MovePayload.
type SuggestionPayload interface {
	SuggestionType() SuggestionType
}

type BreakPayload struct {
	HoursWorked   float64
	BreakDuration time.Duration
	BlockStart    time.Time
	SuggestedAt   time.Time
}

func (BreakPayload) SuggestionType() SuggestionType { return SuggestionTakeBreak }

// CategoryShare is the time one category occupies in a day.
type CategoryShare struct {
	Category string
	Hours    float64
}

type BalancePayload struct {
	DominantCategory string
	Share            float64 // fraction in [0, 1]
	Distribution     []CategoryShare
	Date             time.Time
}

func (BalancePayload) SuggestionType() SuggestionType { return SuggestionBalanceDay }

type MovePayload struct {
	EventID      string
	EventTitle   string
	CurrentStart time.Time
	Stalled      time.Duration // UpdatedAt - CreatedAt when the rule fired
}

func (MovePayload) SuggestionType() SuggestionType { return SuggestionMoveEvent }
