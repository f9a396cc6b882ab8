package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/agenda/internal/domain"
)

// maxOccurrences caps expansion of a single series within one query window.
const maxOccurrences = 5000

// ValidateRRule reports whether rule parses as an RFC 5545 recurrence rule.
func ValidateRRule(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(trimRRulePrefix(rule)); err != nil {
		return fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return nil
}

func trimRRulePrefix(rule string) string {
	rule = strings.TrimSpace(rule)
	if len(rule) > 6 && strings.EqualFold(rule[:6], "RRULE:") {
		return rule[6:]
	}
	return rule
}

// expandSeries returns the occurrences of series that intersect [start, end).
// Each occurrence keeps the series ID and is flagged as an occurrence.
func expandSeries(series *domain.Event, start, end time.Time) ([]*domain.Event, error) {
	r, err := rrule.StrToRRule(trimRRulePrefix(series.RRule))
	if err != nil {
		return nil, fmt.Errorf("parsing rrule for event %s: %w", series.ID, err)
	}
	r.DTStart(series.Start)

	dur := series.Duration()
	var out []*domain.Event
	for _, t := range r.Between(start.Add(-dur), end, true) {
		occ := *series
		occ.Start = t
		occ.End = t.Add(dur)
		occ.Occurrence = true
		if !occ.Overlaps(start, end) {
			continue
		}
		out = append(out, &occ)
		if len(out) >= maxOccurrences {
			break
		}
	}
	return out, nil
}
