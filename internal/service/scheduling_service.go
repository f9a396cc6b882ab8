package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/scheduler"
)

const (
	defaultSearchTimeout   = 2 * time.Second
	defaultPrefetchWorkers = 4
)

type schedulingService struct {
	events   repository.EventRepo
	searcher *scheduler.SlotSearcher
	timeout  time.Duration
	workers  int
	opts     options
}

// NewSchedulingService builds the slot search use case. timeout bounds the
// in-memory search; workers bounds concurrent per-day event reads.
func NewSchedulingService(
	events repository.EventRepo,
	searcher *scheduler.SlotSearcher,
	timeout time.Duration,
	workers int,
	opts ...Option,
) app.ScheduleUseCase {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	if workers <= 0 {
		workers = defaultPrefetchWorkers
	}
	return &schedulingService{
		events:   events,
		searcher: searcher,
		timeout:  timeout,
		workers:  workers,
		opts:     buildOptions(opts),
	}
}

func (s *schedulingService) FindBestSlot(ctx context.Context, req app.ScheduleRequest) (resp *app.ScheduleResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"user":        req.UserID,
		"duration":    req.Duration.String(),
		"search_days": req.SearchDays,
	}
	defer func() {
		if resp != nil {
			fields["success"] = resp.Success
			fields["evaluated"] = resp.CandidatesEvaluated
		}
		observe(ctx, s.opts.observer, "find-best-slot", startedAt, fields, &err)
	}()

	constraint, err := scheduler.ConstraintFromSpec(req.Constraint)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	slotReq := scheduler.SlotRequest{
		Duration:       req.Duration,
		PreferredStart: req.PreferredStart.In(s.opts.loc),
		Priority:       priority,
		Location:       req.Location,
		Constraint:     constraint,
		SearchDays:     req.SearchDays,
	}
	if err := s.searcher.Validate(slotReq); err != nil {
		return nil, err
	}

	days, err := s.prefetch(ctx, req.UserID, slotReq)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res := s.searcher.Find(searchCtx, slotReq, days)

	resp = &app.ScheduleResponse{
		Success:             res.Found,
		Score:               res.Score,
		CandidatesEvaluated: res.Evaluated,
		BudgetExhausted:     res.BudgetExhausted,
	}
	for _, e := range res.PreferredConflicts {
		resp.Conflicts = append(resp.Conflicts, scheduler.Ref(e))
	}
	if res.Found {
		start := res.Start
		resp.ScheduledTime = &start
		resp.TravelWarnings = res.Warnings
		resp.OptimizationApplied = !res.PreferredAccepted
	}
	resp.Message = scheduleMessage(slotReq, res)
	return resp, nil
}

// prefetch reads each searched day's events once. Day 0 is widened to the
// end of the preferred slot when it runs past midnight.
func (s *schedulingService) prefetch(ctx context.Context, userID string, req scheduler.SlotRequest) ([]scheduler.Day, error) {
	dates := scheduler.DayDates(req.PreferredStart, req.SearchDays)
	days := make([]scheduler.Day, len(dates))
	prefEnd := req.PreferredStart.Add(req.Duration)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, date := range dates {
		start, end := date, date.AddDate(0, 0, 1)
		if i == 0 && prefEnd.After(end) {
			end = prefEnd
		}
		g.Go(func() error {
			events, err := s.events.ListOverlapping(gctx, userID, start, end)
			if err != nil {
				return fmt.Errorf("loading events for %s: %w", repository.DayKey(date), err)
			}
			days[i] = scheduler.Day{Date: date, Events: events}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}

func scheduleMessage(req scheduler.SlotRequest, res scheduler.SlotResult) string {
	var msg string
	switch {
	case res.PreferredAccepted && len(res.Warnings) > 0:
		msg = fmt.Sprintf("Preferred time accepted with %d travel warning(s) (high priority)", len(res.Warnings))
	case res.PreferredAccepted:
		msg = "Preferred time is available"
	case res.Found:
		msg = fmt.Sprintf("Preferred time unavailable; best alternative is %s", res.Start.Format("Mon 2 Jan 15:04"))
	case req.SearchDays == 0:
		msg = "Preferred time is unavailable and no search window was requested"
	default:
		msg = fmt.Sprintf("No available slot found in the next %d day(s)", req.SearchDays)
	}
	if res.BudgetExhausted {
		msg += " (search stopped on its time budget)"
	}
	return msg
}
