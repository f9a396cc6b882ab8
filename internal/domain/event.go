package domain

import (
	"fmt"
	"strings"
	"time"
)

type Event struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Location    string
	Priority    Priority
	Flexible    bool
	Status      EventStatus
	CategoryID  string

	// RRule holds an RFC 5545 recurrence rule. Empty for single events.
	RRule string
	// Occurrence is set on events expanded from a recurring series.
	// The ID of an occurrence is the ID of its series.
	Occurrence bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns End - Start.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// HasLocation reports whether the event carries a non-blank location.
func (e *Event) HasLocation() bool {
	return strings.TrimSpace(e.Location) != ""
}

// Active reports whether the event still occupies calendar time.
func (e *Event) Active() bool {
	return e.Status != EventCancelled
}

// Overlaps reports whether the event intersects the half-open interval [start, end).
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// Validate checks the invariants every stored event must satisfy.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("event user is required")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("event %q ends (%s) before it starts (%s)",
			e.Title, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if e.Priority != "" && !ValidPriorities[string(e.Priority)] {
		return fmt.Errorf("invalid priority %q (want low, medium or high)", e.Priority)
	}
	if e.Status != "" && !ValidEventStatuses[string(e.Status)] {
		return fmt.Errorf("invalid event status %q", e.Status)
	}
	return nil
}

// MoveTo shifts the event so it starts at newStart, keeping its duration.
func (e *Event) MoveTo(newStart time.Time, now time.Time) {
	d := e.Duration()
	e.Start = newStart
	e.End = newStart.Add(d)
	e.UpdatedAt = now
}
