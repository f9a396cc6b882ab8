package rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/agenda/internal/domain"
)

// Rule identifiers recorded on each suggestion.
const (
	RuleBreak        = "break_after_work_hours"
	RuleBalance      = "balance_day_categories"
	RulePostponement = "frequent_postponement"
)

// Draft is a suggestion a rule wants to emit, before deduplication.
type Draft struct {
	Type           domain.SuggestionType
	Title          string
	Description    string
	Priority       domain.Priority
	Rule           string
	Payload        domain.SuggestionPayload
	RelatedEventID *string
}

// Suggestion materializes the draft as a pending suggestion created at now.
func (d Draft) Suggestion(userID, referenceDay string, now time.Time, expiry time.Duration) *domain.Suggestion {
	return &domain.Suggestion{
		ID:             uuid.New().String(),
		UserID:         userID,
		Type:           d.Type,
		Title:          d.Title,
		Description:    d.Description,
		Priority:       d.Priority,
		Status:         domain.SuggestionPending,
		Rule:           d.Rule,
		Payload:        d.Payload,
		RelatedEventID: d.RelatedEventID,
		ReferenceDay:   referenceDay,
		CreatedAt:      now,
		ExpiresAt:      now.Add(expiry),
	}
}
