package app

import (
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// ConstraintSpec is the caller-facing form of a time-of-day constraint.
// NotBefore and NotAfter are "HH:MM" clock times; empty means unset.
type ConstraintSpec struct {
	NotBefore     string
	NotAfter      string
	MorningOnly   bool
	AfternoonOnly bool
	EveningOnly   bool
}

// ScheduleRequest asks for the best slot for a new or moved event.
// SearchDays of zero checks only the preferred slot.
type ScheduleRequest struct {
	UserID         string
	Duration       time.Duration
	PreferredStart time.Time
	Priority       domain.Priority
	Location       string
	CategoryID     string
	Constraint     ConstraintSpec
	SearchDays     int
}

type ScheduleResponse struct {
	Success       bool
	ScheduledTime *time.Time
	Message       string
	// TravelWarnings apply to the returned slot.
	TravelWarnings []TravelWarning
	// Conflicts are the events overlapping the preferred slot.
	Conflicts           []EventRef
	OptimizationApplied bool
	Score               float64
	CandidatesEvaluated int
	// BudgetExhausted is set when the search stopped on its wall-clock budget.
	BudgetExhausted bool
}
