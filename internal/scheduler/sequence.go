package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
)

// MinSequenceSavings is the travel saving a reordering must exceed to be
// proposed.
const MinSequenceSavings = 10 * time.Minute

// OptimizeSequence proposes a reordering of a day's flexible events that
// reduces total travel. Fixed events and occurrences of recurring series
// keep their place. Each flexible slot is filled greedily with the event
// reachable with the least travel from the preceding one, placed at the
// later of the slot's start and the preceding event's end. A candidate is
// only eligible when it ends before the next fixed event and the end of
// the day, so proposals never overlap each other or a fixed event. The
// result is advisory.
func (d *ConflictDetector) OptimizeSequence(ctx context.Context, events []*domain.Event) app.OptimizeResult {
	ordered := activeByStart(events)

	var slots []int
	var movable []*domain.Event
	for i, e := range ordered {
		if movableEvent(e) {
			slots = append(slots, i)
			movable = append(movable, e)
		}
	}
	if len(movable) < 2 {
		return app.OptimizeResult{Message: "Not enough flexible events to optimize"}
	}

	current := TotalTravel(ctx, d.travel, ordered)

	placed, ok := d.placeGreedy(ctx, ordered, movable)
	if !ok {
		return app.OptimizeResult{
			CurrentTravel:   current,
			OptimizedTravel: current,
			Message:         "No reordering fits around the fixed events",
		}
	}

	optimized := make([]*domain.Event, len(placed))
	for i, p := range placed {
		optimized[i] = p.event
	}
	after := TotalTravel(ctx, d.travel, optimized)
	savings := current - after
	res := app.OptimizeResult{
		CurrentTravel:   current,
		OptimizedTravel: after,
		Savings:         savings,
	}
	if savings <= MinSequenceSavings {
		res.Message = "Current order is already optimal"
		return res
	}

	res.Possible = true
	for _, slot := range slots {
		p := placed[slot]
		if p.start.Equal(p.event.Start) {
			continue
		}
		res.Proposals = append(res.Proposals, app.SequenceProposal{
			Event:    Ref(p.event),
			NewStart: p.start,
		})
	}
	res.Message = fmt.Sprintf("Reordering saves %d min of travel", int(savings/time.Minute))
	return res
}

type placement struct {
	event *domain.Event
	start time.Time
}

func movableEvent(e *domain.Event) bool {
	return e.Flexible && !e.Occurrence
}

// placeGreedy fills the flexible positions of ordered with movable events.
// It reports false when some position has no remaining event that fits.
func (d *ConflictDetector) placeGreedy(ctx context.Context, ordered, movable []*domain.Event) ([]placement, bool) {
	placed := make([]placement, len(ordered))
	remaining := append([]*domain.Event(nil), movable...)
	var cursor time.Time

	for i, e := range ordered {
		if !movableEvent(e) {
			placed[i] = placement{event: e, start: e.Start}
			if e.End.After(cursor) {
				cursor = e.End
			}
			continue
		}

		start := e.Start
		if cursor.After(start) {
			start = cursor
		}
		limit := placementLimit(ordered, i)

		pick := -1
		bestTravel := time.Duration(-1)
		for j, cand := range remaining {
			if start.Add(cand.Duration()).After(limit) {
				continue
			}
			if i == 0 {
				pick = j
				break
			}
			t := d.travel.Estimate(ctx, placed[i-1].event.Location, cand.Location)
			if bestTravel < 0 || t < bestTravel {
				bestTravel = t
				pick = j
			}
		}
		if pick < 0 {
			return nil, false
		}

		chosen := remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		placed[i] = placement{event: chosen, start: start}
		cursor = start.Add(chosen.Duration())
	}
	return placed, true
}

// placementLimit is the latest end for an event placed at position i: the
// start of the next fixed event, or midnight after the slot's day.
func placementLimit(ordered []*domain.Event, i int) time.Time {
	for _, e := range ordered[i+1:] {
		if !movableEvent(e) {
			return e.Start
		}
	}
	s := ordered[i].Start
	return time.Date(s.Year(), s.Month(), s.Day()+1, 0, 0, 0, 0, s.Location())
}
