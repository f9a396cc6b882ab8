package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/testutil"
)

const testUser = "user-1"

func setupEventRepo(t *testing.T) *SQLiteEventRepo {
	t.Helper()
	return NewSQLiteEventRepo(testutil.NewTestDB(t))
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func TestEventRepo_CreateAndGet(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	e := testutil.NewTestEvent(testUser, "Standup", at(10, 9, 0), 30*time.Minute,
		testutil.WithLocation("Office, Berlin"),
		testutil.WithEventPriority(domain.PriorityHigh),
		testutil.WithFlexible(false))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "Office, Berlin", got.Location)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.False(t, got.Flexible)
	assert.True(t, got.Start.Equal(e.Start))
	assert.True(t, got.End.Equal(e.End))
	assert.Empty(t, got.CategoryID)
}

func TestEventRepo_GetByID_OtherUser(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	e := testutil.NewTestEvent(testUser, "Private", at(10, 9, 0), time.Hour)
	require.NoError(t, repo.Create(ctx, e))

	_, err := repo.GetByID(ctx, e.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_CreateRejectsInvertedRange(t *testing.T) {
	repo := setupEventRepo(t)
	e := testutil.NewTestEvent(testUser, "Backwards", at(10, 9, 0), -time.Hour)
	assert.Error(t, repo.Create(context.Background(), e))
}

func TestEventRepo_CreateRejectsBadRRule(t *testing.T) {
	repo := setupEventRepo(t)
	e := testutil.NewTestEvent(testUser, "Broken", at(10, 9, 0), time.Hour,
		testutil.WithRRule("FREQ=SOMETIMES"))
	assert.Error(t, repo.Create(context.Background(), e))
}

func TestEventRepo_ListOverlapping_HalfOpen(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	before := testutil.NewTestEvent(testUser, "Ends at window start", at(10, 8, 0), time.Hour)
	inside := testutil.NewTestEvent(testUser, "Inside", at(10, 9, 30), time.Hour)
	after := testutil.NewTestEvent(testUser, "Starts at window end", at(10, 11, 0), time.Hour)
	straddle := testutil.NewTestEvent(testUser, "Straddles", at(10, 8, 30), time.Hour)
	for _, e := range []*domain.Event{before, inside, after, straddle} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListOverlapping(ctx, testUser, at(10, 9, 0), at(10, 11, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Straddles", got[0].Title)
	assert.Equal(t, "Inside", got[1].Title)
}

func TestEventRepo_ListDay(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent(testUser, "Late", at(10, 15, 0), time.Hour)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent(testUser, "Early", at(10, 9, 0), time.Hour)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent(testUser, "Overnight", at(9, 23, 0), 2*time.Hour)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent(testUser, "Tomorrow", at(11, 9, 0), time.Hour)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent("other", "Not mine", at(10, 10, 0), time.Hour)))

	got, err := repo.ListDay(ctx, testUser, at(10, 12, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Title)
	assert.Equal(t, "Late", got[1].Title)
}

func TestEventRepo_RecurringExpansion(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	series := testutil.NewTestEvent(testUser, "Gym", at(3, 7, 0), time.Hour,
		testutil.WithRRule("FREQ=DAILY;COUNT=10"))
	require.NoError(t, repo.Create(ctx, series))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEvent(testUser, "Call", at(10, 9, 0), time.Hour)))

	got, err := repo.ListDay(ctx, testUser, at(10, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Gym", got[0].Title)
	assert.True(t, got[0].Occurrence)
	assert.Equal(t, series.ID, got[0].ID)
	assert.True(t, got[0].Start.Equal(at(10, 7, 0)))
	assert.True(t, got[0].End.Equal(at(10, 8, 0)))
	assert.False(t, got[1].Occurrence)

	// COUNT=10 from the 3rd ends on the 12th.
	got, err = repo.ListDay(ctx, testUser, at(13, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventRepo_ListUpdatedSince(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()
	now := at(20, 12, 0)

	stale := testutil.NewTestEvent(testUser, "Stale", at(21, 9, 0), time.Hour,
		testutil.WithHistory(now.AddDate(0, 0, -30), now.AddDate(0, 0, -10)))
	fresh := testutil.NewTestEvent(testUser, "Fresh", at(21, 10, 0), time.Hour,
		testutil.WithHistory(now.AddDate(0, 0, -3), now.AddDate(0, 0, -1)))
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, fresh))

	got, err := repo.ListUpdatedSince(ctx, testUser, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fresh", got[0].Title)
}

func TestEventRepo_Reschedule(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()
	now := at(10, 8, 0)

	e := testutil.NewTestEvent(testUser, "Review", at(10, 9, 0), 45*time.Minute)
	require.NoError(t, repo.Create(ctx, e))

	moved, err := repo.Reschedule(ctx, e.ID, testUser, at(10, 14, 0), now)
	require.NoError(t, err)
	assert.True(t, moved.Start.Equal(at(10, 14, 0)))
	assert.True(t, moved.End.Equal(at(10, 14, 45)))

	got, err := repo.GetByID(ctx, e.ID, testUser)
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(at(10, 14, 0)))
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestEventRepo_RescheduleSeriesRejected(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	series := testutil.NewTestEvent(testUser, "Weekly", at(3, 9, 0), time.Hour,
		testutil.WithRRule("FREQ=WEEKLY"))
	require.NoError(t, repo.Create(ctx, series))

	_, err := repo.Reschedule(ctx, series.ID, testUser, at(4, 9, 0), at(3, 8, 0))
	assert.ErrorIs(t, err, ErrRecurringSeries)
}

func TestEventRepo_Delete(t *testing.T) {
	repo := setupEventRepo(t)
	ctx := context.Background()

	e := testutil.NewTestEvent(testUser, "Gone", at(10, 9, 0), time.Hour)
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID, testUser))

	_, err := repo.GetByID(ctx, e.ID, testUser)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID, testUser), ErrNotFound)
}

func TestEventRepo_CategoryNulledOnDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	cats := NewSQLiteCategoryRepo(database)
	events := NewSQLiteEventRepo(database)

	cat := testutil.NewTestCategory(testUser, "Work")
	require.NoError(t, cats.Create(ctx, cat))
	e := testutil.NewTestEvent(testUser, "Tagged", at(10, 9, 0), time.Hour, testutil.WithCategory(cat.ID))
	require.NoError(t, events.Create(ctx, e))

	_, err := database.Exec(`DELETE FROM categories WHERE id = ?`, cat.ID)
	require.NoError(t, err)

	got, err := events.GetByID(ctx, e.ID, testUser)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
}
