package importer

import (
	"strings"

	"github.com/alexanderramin/agenda/internal/domain"
)

// Result holds converted events and the VEVENTs that were left out.
type Result struct {
	Events []*domain.Event
	// Overrides counts modified instances of recurring series, which are
	// not imported; the series itself carries the schedule.
	Overrides int
	AllDay    int
}

// Convert maps validated events to domain events. The event ID is the
// calendar UID; the caller derives storage IDs from it and sets the owner.
// Call ValidateEvents first; Convert assumes the events are valid.
func Convert(events []ParsedEvent, opts Options) *Result {
	res := &Result{}
	for _, ev := range events {
		if ev.Override {
			res.Overrides++
			continue
		}
		if ev.AllDay && opts.SkipAllDay {
			res.AllDay++
			continue
		}
		res.Events = append(res.Events, &domain.Event{
			ID:          ev.UID,
			Title:       strings.TrimSpace(ev.Summary),
			Description: ev.Description,
			Start:       ev.Start.UTC(),
			End:         ev.End.UTC(),
			Location:    ev.Location,
			Priority:    mapPriority(ev.Priority),
			Flexible:    opts.Flexible,
			Status:      mapStatus(ev.Status),
			CategoryID:  opts.CategoryID,
			RRule:       ev.RRule,
			CreatedAt:   ev.Created.UTC(),
			UpdatedAt:   ev.Modified.UTC(),
		})
	}
	return res
}

// mapPriority folds the nine RFC 5545 levels onto three: 1-4 high, 5 or
// unset medium, 6-9 low.
func mapPriority(p int) domain.Priority {
	switch {
	case p >= 1 && p <= 4:
		return domain.PriorityHigh
	case p >= 6:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func mapStatus(s string) domain.EventStatus {
	if s == "CANCELLED" {
		return domain.EventCancelled
	}
	return domain.EventPending
}
