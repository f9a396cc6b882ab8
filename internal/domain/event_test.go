package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newEvent(start time.Time, d time.Duration) *Event {
	return &Event{
		ID:       "e1",
		UserID:   "u1",
		Title:    "Review",
		Start:    start,
		End:      start.Add(d),
		Priority: PriorityMedium,
		Status:   EventPending,
	}
}

func TestEventValidate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr string
	}{
		{"valid", func(e *Event) {}, ""},
		{"blank title", func(e *Event) { e.Title = "  " }, "title is required"},
		{"no user", func(e *Event) { e.UserID = "" }, "user is required"},
		{"ends before start", func(e *Event) { e.End = e.Start.Add(-time.Minute) }, "before it starts"},
		{"zero length", func(e *Event) { e.End = e.Start }, ""},
		{"bad priority", func(e *Event) { e.Priority = "urgent" }, "invalid priority"},
		{"bad status", func(e *Event) { e.Status = "maybe" }, "invalid event status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEvent(start, time.Hour)
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEventOverlaps(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	e := newEvent(start, time.Hour)

	assert.True(t, e.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.True(t, e.Overlaps(start.Add(-time.Hour), start.Add(time.Minute)))
	assert.False(t, e.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)), "touching end is free")
	assert.False(t, e.Overlaps(start.Add(-time.Hour), start), "touching start is free")
}

func TestEventMoveTo_KeepsDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)
	e := newEvent(start, 90*time.Minute)

	e.MoveTo(start.Add(3*time.Hour), now)
	assert.Equal(t, start.Add(3*time.Hour), e.Start)
	assert.Equal(t, 90*time.Minute, e.Duration())
	assert.Equal(t, now, e.UpdatedAt)
}

func TestEventActiveAndLocation(t *testing.T) {
	e := newEvent(time.Now(), time.Hour)
	assert.True(t, e.Active())
	assert.False(t, e.HasLocation())

	e.Location = "  Paris "
	assert.True(t, e.HasLocation())

	e.Status = EventCancelled
	assert.False(t, e.Active())
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, PriorityLow.Rank(), Priority("").Rank())
}

func TestSuggestionActiveAndExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	s := &Suggestion{Status: SuggestionPending, ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.IsActive(now))
	assert.False(t, s.Expired(now))

	assert.False(t, s.IsActive(now.Add(time.Hour)), "expiry instant is not active")
	assert.True(t, s.Expired(now.Add(time.Hour)))

	s.Status = SuggestionAccepted
	assert.False(t, s.IsActive(now))
	assert.False(t, s.Expired(now.Add(2*time.Hour)), "only pending suggestions expire")
}

func TestPayloadTypes(t *testing.T) {
	assert.Equal(t, SuggestionTakeBreak, BreakPayload{}.SuggestionType())
	assert.Equal(t, SuggestionBalanceDay, BalancePayload{}.SuggestionType())
	assert.Equal(t, SuggestionMoveEvent, MovePayload{}.SuggestionType())
}
