package app

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFlexible is returned when a fix would move an event the user
	// marked as fixed.
	ErrNotFlexible = errors.New("event is not flexible")
	// ErrStaleConflict is returned when the event changed after the conflict
	// was detected.
	ErrStaleConflict = errors.New("event changed since the conflict was detected")
	ErrOccurrence    = errors.New("occurrences of a recurring series cannot be moved individually")
)

// ValidationError reports a malformed request. It is returned before any
// store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type TravelWarningKind string

const (
	WarningTravelBefore TravelWarningKind = "insufficient_travel_time_before"
	WarningTravelAfter  TravelWarningKind = "insufficient_travel_time_after"
)

// TravelWarning flags a neighbouring event that cannot be reached in time.
type TravelWarning struct {
	Kind             TravelWarningKind
	EventID          string
	EventTitle       string
	Location         string
	TravelMinutes    int
	AvailableMinutes int
}

func (w TravelWarning) Message() string {
	switch w.Kind {
	case WarningTravelBefore:
		return fmt.Sprintf("travel from %q takes %d min but only %d min are free before the slot",
			w.EventTitle, w.TravelMinutes, w.AvailableMinutes)
	default:
		return fmt.Sprintf("travel to %q takes %d min but only %d min are free after the slot",
			w.EventTitle, w.TravelMinutes, w.AvailableMinutes)
	}
}

// EventRef is the slice of an event a caller needs to render or act on it.
type EventRef struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	Location   string
	Flexible   bool
	Occurrence bool
}
