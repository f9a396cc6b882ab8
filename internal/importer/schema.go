package importer

import "time"

// ParsedEvent is one VEVENT as read from an iCalendar file, before
// validation and conversion.
type ParsedEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	RRule       string
	// Status is the raw STATUS value, e.g. CONFIRMED or CANCELLED.
	Status string
	// Priority is the RFC 5545 PRIORITY, 0 when unset.
	Priority int
	// Override is set for VEVENTs carrying a RECURRENCE-ID.
	Override bool
	Created  time.Time
	Modified time.Time
}

// Options controls conversion into calendar events.
type Options struct {
	// Flexible marks imported events as movable by the scheduler.
	Flexible bool
	// CategoryID is assigned to every imported event when set.
	CategoryID string
	// SkipAllDay leaves out date-only events such as holidays, which would
	// otherwise block a whole day.
	SkipAllDay bool
}
