package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/travel"
)

// ConflictDetector finds adjacent located events whose gap is shorter than
// the travel between them.
type ConflictDetector struct {
	travel Estimator
}

func NewConflictDetector(travel Estimator) *ConflictDetector {
	return &ConflictDetector{travel: travel}
}

// Detect inspects one day's events. Cancelled events are ignored.
func (d *ConflictDetector) Detect(ctx context.Context, events []*domain.Event) []app.DayConflict {
	ordered := activeByStart(events)
	if len(ordered) < 2 {
		return nil
	}

	var out []app.DayConflict
	for i := 0; i+1 < len(ordered); i++ {
		first, second := ordered[i], ordered[i+1]
		if !first.HasLocation() || !second.HasLocation() {
			continue
		}
		t := d.travel.Estimate(ctx, first.Location, second.Location)
		gap := second.Start.Sub(first.End)
		if t <= gap {
			continue
		}
		suggested := first.End.Add(t)
		out = append(out, app.DayConflict{
			First:          Ref(first),
			Second:         Ref(second),
			TravelTime:     t,
			Gap:            gap,
			Shortfall:      t - gap,
			SuggestedStart: suggested,
			Message: fmt.Sprintf("Travel from %q to %q takes %d min; move %q to %s?",
				first.Location, second.Location, travel.Minutes(t), second.Title, suggested.Format("15:04")),
		})
	}
	return out
}

// Ref projects an event into its caller-facing reference.
func Ref(e *domain.Event) app.EventRef {
	return app.EventRef{
		ID:         e.ID,
		Title:      e.Title,
		Start:      e.Start,
		End:        e.End,
		Location:   e.Location,
		Flexible:   e.Flexible,
		Occurrence: e.Occurrence,
	}
}

func activeByStart(events []*domain.Event) []*domain.Event {
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.Active() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// TotalTravel sums travel between consecutive events.
func TotalTravel(ctx context.Context, est Estimator, events []*domain.Event) time.Duration {
	var total time.Duration
	for i := 0; i+1 < len(events); i++ {
		total += est.Estimate(ctx, events[i].Location, events[i+1].Location)
	}
	return total
}
