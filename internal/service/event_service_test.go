package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/testutil"
)

func newEventService(r repos) app.EventUseCase {
	return NewEventService(r.events, testutil.NewTestUoW(r.db), WithClock(clockAt(fixedNow)), WithLocation(time.UTC))
}

func TestEventService_CreateAndMove(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newEventService(r)

	e := &domain.Event{UserID: testUser, Title: "Review", Start: at(1, 9, 0), End: at(1, 10, 0)}
	require.NoError(t, svc.Create(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixedNow, e.CreatedAt)

	moved, err := svc.Move(ctx, testUser, e.ID, at(1, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, at(1, 16, 0), moved.End)

	got, err := svc.ListRange(ctx, testUser, at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, at(1, 15, 0), got[0].Start)

	require.NoError(t, svc.Delete(ctx, testUser, e.ID))
	_, err = svc.Get(ctx, testUser, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventService_MoveSeriesRejected(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	series := testutil.NewTestEvent(testUser, "Standup", at(0, 9, 0), 15*time.Minute, testutil.WithRRule("FREQ=DAILY"))
	require.NoError(t, r.events.Create(ctx, series))

	_, err := newEventService(r).Move(ctx, testUser, series.ID, at(0, 11, 0))
	assert.ErrorIs(t, err, app.ErrOccurrence)
}

func TestEventService_ListRangeValidation(t *testing.T) {
	r := setupRepos(t)
	_, err := newEventService(r).ListRange(context.Background(), testUser, at(1, 0, 0), at(0, 0, 0))
	var ve *app.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestEventService_ImportIsIdempotent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newEventService(r)

	batch := func() []*domain.Event {
		return []*domain.Event{
			{ID: "uid-1@example.com", Title: "Kickoff", Start: at(1, 9, 0), End: at(1, 10, 0)},
			{ID: "uid-2@example.com", Title: "Retro", Start: at(1, 16, 0), End: at(1, 17, 0), RRule: "FREQ=WEEKLY"},
		}
	}

	res, err := svc.Import(ctx, testUser, batch())
	require.NoError(t, err)
	assert.Equal(t, &app.ImportResult{Created: 2}, res)

	res, err = svc.Import(ctx, testUser, batch())
	require.NoError(t, err)
	assert.Equal(t, &app.ImportResult{Skipped: 2}, res)

	res, err = svc.Import(ctx, "user-2", batch())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created, "IDs are scoped per user")
}

func TestEventService_ImportRollsBackInvalidBatch(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newEventService(r)

	_, err := svc.Import(ctx, testUser, []*domain.Event{
		{ID: "ok", Title: "Fine", Start: at(1, 9, 0), End: at(1, 10, 0)},
		{ID: "bad", Title: "Backwards", Start: at(1, 12, 0), End: at(1, 11, 0)},
	})
	require.Error(t, err)

	got, err := svc.ListRange(ctx, testUser, at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCategoryService(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewCategoryService(r.categories, WithClock(clockAt(fixedNow)))

	err := svc.Create(ctx, &domain.Category{UserID: testUser, Name: "  "})
	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)

	require.NoError(t, svc.Create(ctx, &domain.Category{UserID: testUser, Name: "Work"}))
	cats, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, repository.DefaultCategoryColor, cats[0].Color)
}
