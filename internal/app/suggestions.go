package app

import (
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// GenerateRequest triggers the suggestion rules for one user. A nil
// Reference means now.
type GenerateRequest struct {
	UserID    string
	Reference *time.Time
}

type GenerateResponse struct {
	Created []*domain.Suggestion
	Expired int64
	// Skipped counts drafts suppressed by an equivalent active suggestion.
	Skipped int
}
