package importer

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"
)

// ValidateEvents checks parsed events before conversion. Returns every
// problem found, each prefixed with the event's position and UID.
func ValidateEvents(events []ParsedEvent) []error {
	var errs []error
	seen := make(map[string]bool, len(events))

	for i, ev := range events {
		prefix := fmt.Sprintf("event %d (%s)", i+1, ev.UID)

		if ev.UID == "" {
			errs = append(errs, fmt.Errorf("event %d: UID is required", i+1))
		} else if seen[ev.UID] && !ev.Override {
			errs = append(errs, fmt.Errorf("%s: duplicate UID", prefix))
		}
		seen[ev.UID] = true

		if strings.TrimSpace(ev.Summary) == "" {
			errs = append(errs, fmt.Errorf("%s: SUMMARY is required", prefix))
		}
		if ev.End.Before(ev.Start) {
			errs = append(errs, fmt.Errorf("%s: DTEND %s is before DTSTART %s",
				prefix, ev.End.Format("2006-01-02 15:04"), ev.Start.Format("2006-01-02 15:04")))
		}
		if ev.Priority < 0 || ev.Priority > 9 {
			errs = append(errs, fmt.Errorf("%s: PRIORITY must be in [0, 9], got %d", prefix, ev.Priority))
		}
		if ev.RRule != "" {
			if _, err := rrule.StrToROption(ev.RRule); err != nil {
				errs = append(errs, fmt.Errorf("%s: RRULE %q: %w", prefix, ev.RRule, err))
			}
		}
	}
	return errs
}
