package rules

import (
	"fmt"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// PostponementRule emits a move_event draft for every flexible, still open
// event updated within the postponement window whose last update came more
// than the postponement age after its creation.
func PostponementRule(p Policy, recent []*domain.Event, now time.Time) []Draft {
	since := now.Add(-p.PostponementWindow)
	var out []Draft
	for _, e := range recent {
		if e.Status == domain.EventCancelled || e.Status == domain.EventCompleted {
			continue
		}
		if !e.Flexible || e.UpdatedAt.Before(since) {
			continue
		}
		stalled := e.UpdatedAt.Sub(e.CreatedAt)
		if stalled <= p.PostponementAge {
			continue
		}
		id := e.ID
		out = append(out, Draft{
			Type:  domain.SuggestionMoveEvent,
			Title: "Event worth rescheduling",
			Description: fmt.Sprintf("%q has been pushed back several times. Consider moving it to a better day or revisiting its priority.",
				e.Title),
			Priority: domain.PriorityMedium,
			Rule:     RulePostponement,
			Payload: domain.MovePayload{
				EventID:      e.ID,
				EventTitle:   e.Title,
				CurrentStart: e.Start,
				Stalled:      stalled,
			},
			RelatedEventID: &id,
		})
	}
	return out
}
