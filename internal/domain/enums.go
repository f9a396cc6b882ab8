package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting; unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type EventStatus string

const (
	EventPending    EventStatus = "pending"
	EventInProgress EventStatus = "in_progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
)

// ValidEventStatuses is the canonical set of accepted event status strings.
var ValidEventStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}

type SuggestionType string

const (
	SuggestionTakeBreak  SuggestionType = "take_break"
	SuggestionBalanceDay SuggestionType = "balance_day"
	SuggestionMoveEvent  SuggestionType = "move_event"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
	SuggestionExpired  SuggestionStatus = "expired"
)

// ValidSuggestionStatuses is the canonical set of accepted suggestion status strings.
var ValidSuggestionStatuses = map[string]bool{
	"pending": true, "accepted": true, "rejected": true, "expired": true,
}
