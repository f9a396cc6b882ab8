package scheduler

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/travel"
)

// SlotRequest is a validated scheduling request.
type SlotRequest struct {
	Duration       time.Duration
	PreferredStart time.Time
	Priority       domain.Priority
	Location       string
	Constraint     TimeConstraint
	SearchDays     int
}

// Day holds the events overlapping one calendar day, ordered by start.
// Date is midnight of that day in the search location.
type Day struct {
	Date   time.Time
	Events []*domain.Event
}

type SlotResult struct {
	Found             bool
	Start             time.Time
	Score             float64
	Warnings          []app.TravelWarning
	PreferredAccepted bool
	// PreferredConflicts are the events overlapping the preferred slot.
	PreferredConflicts []*domain.Event
	Evaluated          int
	BudgetExhausted    bool
}

// SlotSearcher places an event in the best free slot. It works over
// pre-fetched days and performs no I/O of its own beyond travel lookups.
type SlotSearcher struct {
	cfg    Config
	travel Estimator
}

func NewSlotSearcher(cfg Config, travel Estimator) *SlotSearcher {
	return &SlotSearcher{cfg: cfg, travel: travel}
}

// Validate rejects malformed requests before any store access.
func (s *SlotSearcher) Validate(req SlotRequest) error {
	if req.Duration <= 0 {
		return app.NewValidationError("duration", "must be positive, got %s", req.Duration)
	}
	if req.SearchDays < 0 {
		return app.NewValidationError("search_days", "must not be negative, got %d", req.SearchDays)
	}
	if s.cfg.MaxSearchDays > 0 && req.SearchDays > s.cfg.MaxSearchDays {
		return app.NewValidationError("search_days", "must be at most %d, got %d", s.cfg.MaxSearchDays, req.SearchDays)
	}
	if req.PreferredStart.IsZero() {
		return app.NewValidationError("preferred_start", "is required")
	}
	if req.Priority != "" && !domain.ValidPriorities[string(req.Priority)] {
		return app.NewValidationError("priority", "unknown priority %q", req.Priority)
	}
	return nil
}

// DayDates returns midnight of each searched day, starting with the
// preferred day, in the preferred start's location. At least one day is
// returned so the preferred slot can always be checked.
func DayDates(preferred time.Time, searchDays int) []time.Time {
	n := searchDays
	if n < 1 {
		n = 1
	}
	out := make([]time.Time, n)
	for d := range out {
		out[d] = time.Date(preferred.Year(), preferred.Month(), preferred.Day()+d, 0, 0, 0, 0, preferred.Location())
	}
	return out
}

// Find checks the preferred slot first and accepts it when it is free,
// satisfies the constraint and either needs no travel warnings or the
// request is high priority. Otherwise it scans every day offset in slot
// steps within working hours and keeps the best-scoring free candidate;
// ties keep the earliest. When ctx ends mid-search the best candidate so
// far is returned with BudgetExhausted set.
func (s *SlotSearcher) Find(ctx context.Context, req SlotRequest, days []Day) SlotResult {
	var res SlotResult
	pref := req.PreferredStart

	overlaps, warnings := s.assess(ctx, pref, pref.Add(req.Duration), req.Location, eventsFor(days, 0))
	res.PreferredConflicts = overlaps
	if len(overlaps) == 0 && req.Constraint.IsValid(pref) &&
		(len(warnings) == 0 || req.Priority == domain.PriorityHigh) {
		res.Found = true
		res.PreferredAccepted = true
		res.Start = pref
		res.Warnings = warnings
		res.Score = ScoreSlot(pref, pref, 0, s.nearby(ctx, req.Location, dayStart(pref), eventsFor(days, 0)))
		return res
	}

	step := s.cfg.SlotStep
	if step <= 0 {
		step = DefaultConfig().SlotStep
	}
	best := math.Inf(-1)

search:
	for d := 0; d < req.SearchDays; d++ {
		date := time.Date(pref.Year(), pref.Month(), pref.Day()+d, 0, 0, 0, 0, pref.Location())
		startHour := s.cfg.WorkDayStartHour
		if d == 0 && pref.Hour() > startHour {
			startHour = pref.Hour()
		}
		// Wall-clock hours, so the window holds on DST transition days.
		cand := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, date.Location())
		limit := time.Date(date.Year(), date.Month(), date.Day(), s.cfg.WorkDayEndHour, 0, 0, 0, date.Location())
		events := eventsFor(days, d)

		for ; !cand.Add(req.Duration).After(limit); cand = cand.Add(step) {
			if ctx.Err() != nil {
				res.BudgetExhausted = true
				break search
			}
			res.Evaluated++
			if !req.Constraint.IsValid(cand) {
				continue
			}
			ov, w := s.assess(ctx, cand, cand.Add(req.Duration), req.Location, events)
			if len(ov) > 0 || len(w) > 0 {
				continue
			}
			score := ScoreSlot(cand, pref, d, s.nearby(ctx, req.Location, date, events))
			if score > best {
				best = score
				res.Found = true
				res.Start = cand
				res.Score = score
			}
		}
	}
	return res
}

// assess returns the events overlapping [start, end) and, when location is
// set, warnings for the immediate neighbours that cannot be reached in time.
func (s *SlotSearcher) assess(ctx context.Context, start, end time.Time, location string, events []*domain.Event) ([]*domain.Event, []app.TravelWarning) {
	var overlaps []*domain.Event
	var prev, next *domain.Event
	for _, e := range events {
		if !e.Active() {
			continue
		}
		if e.Overlaps(start, end) {
			overlaps = append(overlaps, e)
			continue
		}
		if !e.End.After(start) && (prev == nil || e.End.After(prev.End)) {
			prev = e
		}
		if !e.Start.Before(end) && (next == nil || e.Start.Before(next.Start)) {
			next = e
		}
	}

	if location == "" {
		return overlaps, nil
	}
	var warnings []app.TravelWarning
	if prev != nil && prev.HasLocation() {
		t := s.travel.Estimate(ctx, prev.Location, location)
		if gap := start.Sub(prev.End); t > gap {
			warnings = append(warnings, newWarning(app.WarningTravelBefore, prev, t, gap))
		}
	}
	if next != nil && next.HasLocation() {
		t := s.travel.Estimate(ctx, location, next.Location)
		if gap := next.Start.Sub(end); t > gap {
			warnings = append(warnings, newWarning(app.WarningTravelAfter, next, t, gap))
		}
	}
	return overlaps, warnings
}

func newWarning(kind app.TravelWarningKind, e *domain.Event, t, gap time.Duration) app.TravelWarning {
	return app.TravelWarning{
		Kind:             kind,
		EventID:          e.ID,
		EventTitle:       e.Title,
		Location:         e.Location,
		TravelMinutes:    travel.Minutes(t),
		AvailableMinutes: int(gap / time.Minute),
	}
}

// nearby counts events starting on the day at date whose location is within
// NearbyTravel of location.
func (s *SlotSearcher) nearby(ctx context.Context, location string, date time.Time, events []*domain.Event) int {
	if location == "" {
		return 0
	}
	next := date.AddDate(0, 0, 1)
	n := 0
	for _, e := range events {
		if !e.Active() || !e.HasLocation() || e.Start.Before(date) || !e.Start.Before(next) {
			continue
		}
		if s.travel.Estimate(ctx, location, e.Location) <= s.cfg.NearbyTravel {
			n++
		}
	}
	return n
}

func eventsFor(days []Day, offset int) []*domain.Event {
	if offset < len(days) {
		return days[offset].Events
	}
	return nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
