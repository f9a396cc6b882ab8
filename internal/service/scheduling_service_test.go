package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/scheduler"
	"github.com/alexanderramin/agenda/internal/testutil"
	"github.com/alexanderramin/agenda/internal/travel"
)

func newSchedulingService(events repository.EventRepo, opts ...Option) app.ScheduleUseCase {
	est := travel.NewEstimator(travel.DefaultConfig())
	searcher := scheduler.NewSlotSearcher(scheduler.DefaultConfig(), est)
	opts = append([]Option{WithLocation(time.UTC)}, opts...)
	return NewSchedulingService(events, searcher, time.Second, 2, opts...)
}

func TestFindBestSlot_PreferredFree(t *testing.T) {
	r := setupRepos(t)
	svc := newSchedulingService(r.events)

	resp, err := svc.FindBestSlot(context.Background(), app.ScheduleRequest{
		UserID:         testUser,
		Duration:       time.Hour,
		PreferredStart: at(0, 10, 0),
		SearchDays:     7,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, at(0, 10, 0), *resp.ScheduledTime)
	assert.False(t, resp.OptimizationApplied)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, "Preferred time is available", resp.Message)
}

func TestFindBestSlot_BookedPreferredFindsFirstGap(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	busy := testutil.NewTestEvent(testUser, "Offsite", at(0, 8, 0), 4*time.Hour)
	require.NoError(t, r.events.Create(ctx, busy))
	require.NoError(t, r.events.Create(ctx, testutil.NewTestEvent(testUser, "Lunch", at(0, 12, 30), 90*time.Minute)))

	obs := &recordingObserver{}
	svc := newSchedulingService(r.events, WithObserver(obs))
	req := app.ScheduleRequest{
		UserID:         testUser,
		Duration:       90 * time.Minute,
		PreferredStart: at(0, 10, 0),
		SearchDays:     7,
	}
	resp, err := svc.FindBestSlot(ctx, req)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, at(0, 14, 0), *resp.ScheduledTime, "12:00 leaves only 30 minutes before lunch")
	assert.True(t, resp.OptimizationApplied)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, busy.ID, resp.Conflicts[0].ID)
	assert.Positive(t, resp.CandidatesEvaluated)

	again, err := svc.FindBestSlot(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, *resp.ScheduledTime, *again.ScheduledTime, "same request, same answer")
	assert.Equal(t, []string{"find-best-slot", "find-best-slot"}, obs.names())
}

func TestFindBestSlot_RecurringEventBlocksSlot(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	daily := testutil.NewTestEvent(testUser, "Standup", at(-3, 10, 0), 30*time.Minute,
		testutil.WithRRule("FREQ=DAILY"))
	require.NoError(t, r.events.Create(ctx, daily))

	resp, err := newSchedulingService(r.events).FindBestSlot(ctx, app.ScheduleRequest{
		UserID:         testUser,
		Duration:       30 * time.Minute,
		PreferredStart: at(0, 10, 0),
		SearchDays:     1,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Conflicts, 1)
	assert.True(t, resp.Conflicts[0].Occurrence)
	assert.NotEqual(t, at(0, 10, 0), *resp.ScheduledTime)
}

func TestFindBestSlot_NoSearchWindowReportsFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, r.events.Create(ctx, testutil.NewTestEvent(testUser, "Busy", at(0, 9, 0), 3*time.Hour)))

	resp, err := newSchedulingService(r.events).FindBestSlot(ctx, app.ScheduleRequest{
		UserID:         testUser,
		Duration:       time.Hour,
		PreferredStart: at(0, 10, 0),
		SearchDays:     0,
	})
	require.NoError(t, err, "no slot is an outcome, not an error")
	assert.False(t, resp.Success)
	assert.Nil(t, resp.ScheduledTime)
	assert.NotEmpty(t, resp.Message)
}

func TestFindBestSlot_ValidationBeforeStoreAccess(t *testing.T) {
	svc := newSchedulingService(failingEventRepo{})
	tests := []struct {
		name  string
		req   app.ScheduleRequest
		field string
	}{
		{"zero duration", app.ScheduleRequest{PreferredStart: at(0, 9, 0)}, "duration"},
		{"negative window", app.ScheduleRequest{Duration: time.Hour, PreferredStart: at(0, 9, 0), SearchDays: -1}, "search_days"},
		{"bad clock time", app.ScheduleRequest{Duration: time.Hour, PreferredStart: at(0, 9, 0),
			Constraint: app.ConstraintSpec{NotBefore: "9am"}}, "not_before"},
		{"bad priority", app.ScheduleRequest{Duration: time.Hour, PreferredStart: at(0, 9, 0), Priority: "urgent"}, "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindBestSlot(context.Background(), tt.req)
			var ve *app.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestFindBestSlot_StoreErrorPropagates(t *testing.T) {
	svc := newSchedulingService(failingEventRepo{})
	_, err := svc.FindBestSlot(context.Background(), app.ScheduleRequest{
		UserID:         testUser,
		Duration:       time.Hour,
		PreferredStart: at(0, 9, 0),
		SearchDays:     3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestFindBestSlot_ConstraintRespected(t *testing.T) {
	r := setupRepos(t)
	resp, err := newSchedulingService(r.events).FindBestSlot(context.Background(), app.ScheduleRequest{
		UserID:         testUser,
		Duration:       time.Hour,
		PreferredStart: at(0, 9, 0),
		Priority:       domain.PriorityLow,
		Constraint:     app.ConstraintSpec{AfternoonOnly: true},
		SearchDays:     2,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, at(0, 12, 0), *resp.ScheduledTime)
}

var errStoreDown = errors.New("store down")

type failingEventRepo struct {
	repository.EventRepo
}

func (failingEventRepo) ListOverlapping(context.Context, string, time.Time, time.Time) ([]*domain.Event, error) {
	return nil, errStoreDown
}
