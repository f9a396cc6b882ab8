package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/testutil"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestContinuousBlocks(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent("u", "C", at(11, 15), 45*time.Minute),
		testutil.NewTestEvent("u", "A", at(9, 0), time.Hour),
		testutil.NewTestEvent("u", "B", at(10, 30), 30*time.Minute), // 30 min gap joins
		testutil.NewTestEvent("u", "D", at(12, 31), time.Hour),      // 31 min gap splits
		testutil.NewTestEvent("u", "X", at(12, 0), time.Hour, testutil.WithEventStatus(domain.EventCancelled)),
	}

	blocks := ContinuousBlocks(events, 30*time.Minute)
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].Start.Equal(at(9, 0)))
	assert.True(t, blocks[0].End.Equal(at(12, 0)))
	assert.Equal(t, 2*time.Hour+15*time.Minute, blocks[0].Worked)
	assert.Equal(t, 3, blocks[0].Events)
	assert.Equal(t, time.Hour, blocks[1].Worked)
}

func TestContinuousBlocks_ContainedEventKeepsLaterEnd(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent("u", "Long", at(9, 0), 4*time.Hour),
		testutil.NewTestEvent("u", "Inner", at(10, 0), 30*time.Minute),
		testutil.NewTestEvent("u", "After", at(13, 20), time.Hour),
	}
	blocks := ContinuousBlocks(events, 30*time.Minute)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].End.Equal(at(14, 20)))
}

func TestBreakRule_FourHoursBackToBack(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent("u", "Deep work", at(9, 0), 2*time.Hour),
		testutil.NewTestEvent("u", "Sync", at(11, 0), time.Hour),
		testutil.NewTestEvent("u", "Review", at(12, 15), 45*time.Minute),
	}

	drafts := BreakRule(DefaultPolicy(), events)
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, domain.SuggestionTakeBreak, d.Type)
	assert.Equal(t, domain.PriorityMedium, d.Priority)
	assert.Equal(t, RuleBreak, d.Rule)
	p, ok := d.Payload.(domain.BreakPayload)
	require.True(t, ok)
	assert.InDelta(t, 3.75, p.HoursWorked, 1e-9)
	assert.Equal(t, 15*time.Minute, p.BreakDuration)
	assert.True(t, p.SuggestedAt.Equal(at(13, 0)))
	assert.Contains(t, d.Description, "3.8 hours")
}

func TestBreakRule_UnderThreshold(t *testing.T) {
	events := []*domain.Event{
		testutil.NewTestEvent("u", "A", at(9, 0), 2*time.Hour),
		testutil.NewTestEvent("u", "B", at(11, 45), 2*time.Hour), // 45 min gap splits
	}
	assert.Empty(t, BreakRule(DefaultPolicy(), events))
}

func TestBreakRule_ExactlyThreshold(t *testing.T) {
	events := []*domain.Event{testutil.NewTestEvent("u", "A", at(9, 0), 3*time.Hour)}
	assert.Len(t, BreakRule(DefaultPolicy(), events), 1)
}

func TestBalanceRule_DominantCategory(t *testing.T) {
	names := map[string]string{"work": "Work", "home": "Personal"}
	events := []*domain.Event{
		testutil.NewTestEvent("u", "W1", at(8, 0), 4*time.Hour, testutil.WithCategory("work")),
		testutil.NewTestEvent("u", "W2", at(13, 0), 4*time.Hour, testutil.WithCategory("work")),
		testutil.NewTestEvent("u", "P", at(18, 0), time.Hour, testutil.WithCategory("home")),
		testutil.NewTestEvent("u", "Untracked", at(19, 0), 5*time.Hour),
	}

	drafts := BalanceRule(DefaultPolicy(), events, names, at(0, 0))
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, domain.SuggestionBalanceDay, d.Type)
	assert.Equal(t, domain.PriorityLow, d.Priority)
	assert.Contains(t, d.Description, `"Work"`)
	assert.Contains(t, d.Description, "88.9%")
	assert.Contains(t, d.Description, "Personal")

	p := d.Payload.(domain.BalancePayload)
	assert.Equal(t, "Work", p.DominantCategory)
	assert.InDelta(t, 8.0/9.0, p.Share, 1e-9)
	require.Len(t, p.Distribution, 2)
	assert.Equal(t, "Work", p.Distribution[0].Category)
}

func TestBalanceRule_Balanced(t *testing.T) {
	names := map[string]string{"work": "Work", "home": "Personal"}
	events := []*domain.Event{
		testutil.NewTestEvent("u", "W", at(8, 0), 3*time.Hour, testutil.WithCategory("work")),
		testutil.NewTestEvent("u", "P", at(12, 0), 3*time.Hour, testutil.WithCategory("home")),
	}
	assert.Empty(t, BalanceRule(DefaultPolicy(), events, names, at(0, 0)))
}

func TestBalanceRule_SingleCategoryMentionsOtherActivities(t *testing.T) {
	names := map[string]string{"work": "Work"}
	events := []*domain.Event{
		testutil.NewTestEvent("u", "W", at(8, 0), time.Hour, testutil.WithCategory("work")),
	}
	drafts := BalanceRule(DefaultPolicy(), events, names, at(0, 0))
	require.Len(t, drafts, 1)
	assert.Contains(t, drafts[0].Description, "other activities")
}

func TestBalanceRule_AtMostThreeOthers(t *testing.T) {
	names := map[string]string{"a": "A", "b": "B", "c": "C", "d": "D", "e": "E"}
	events := []*domain.Event{
		testutil.NewTestEvent("u", "big", at(6, 0), 10*time.Hour, testutil.WithCategory("a")),
		testutil.NewTestEvent("u", "b", at(16, 0), time.Hour, testutil.WithCategory("b")),
		testutil.NewTestEvent("u", "c", at(17, 0), 50*time.Minute, testutil.WithCategory("c")),
		testutil.NewTestEvent("u", "d", at(18, 0), 40*time.Minute, testutil.WithCategory("d")),
		testutil.NewTestEvent("u", "e", at(19, 0), 30*time.Minute, testutil.WithCategory("e")),
	}
	drafts := BalanceRule(DefaultPolicy(), events, names, at(0, 0))
	require.Len(t, drafts, 1)
	assert.Contains(t, drafts[0].Description, "B, C, D.")
	assert.NotContains(t, drafts[0].Description, "E")
}

func TestBalanceRule_NoCategorizedTime(t *testing.T) {
	events := []*domain.Event{testutil.NewTestEvent("u", "x", at(8, 0), time.Hour)}
	assert.Empty(t, BalanceRule(DefaultPolicy(), events, nil, at(0, 0)))
}

func TestPostponementRule(t *testing.T) {
	now := at(18, 0)
	stalled := testutil.NewTestEvent("u", "Dentist", at(9, 0).AddDate(0, 0, 2), time.Hour,
		testutil.WithHistory(now.AddDate(0, 0, -5), now.Add(-time.Hour)))
	fresh := testutil.NewTestEvent("u", "New", at(9, 0).AddDate(0, 0, 1), time.Hour,
		testutil.WithHistory(now.Add(-3*time.Hour), now.Add(-time.Hour)))
	fixed := testutil.NewTestEvent("u", "Flight", at(9, 0).AddDate(0, 0, 3), time.Hour,
		testutil.WithFlexible(false),
		testutil.WithHistory(now.AddDate(0, 0, -5), now.Add(-time.Hour)))
	done := testutil.NewTestEvent("u", "Done", at(9, 0), time.Hour,
		testutil.WithEventStatus(domain.EventCompleted),
		testutil.WithHistory(now.AddDate(0, 0, -5), now.Add(-time.Hour)))
	old := testutil.NewTestEvent("u", "Old", at(9, 0), time.Hour,
		testutil.WithHistory(now.AddDate(0, 0, -20), now.AddDate(0, 0, -10)))

	drafts := PostponementRule(DefaultPolicy(), []*domain.Event{stalled, fresh, fixed, done, old}, now)
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, domain.SuggestionMoveEvent, d.Type)
	require.NotNil(t, d.RelatedEventID)
	assert.Equal(t, stalled.ID, *d.RelatedEventID)
	p := d.Payload.(domain.MovePayload)
	assert.Equal(t, "Dentist", p.EventTitle)
	assert.Equal(t, 5*24*time.Hour-time.Hour, p.Stalled)
}

func TestDraft_Suggestion(t *testing.T) {
	now := at(18, 0)
	d := Draft{Type: domain.SuggestionTakeBreak, Title: "t", Priority: domain.PriorityMedium, Rule: RuleBreak}
	s := d.Suggestion("u", "2025-03-10", now, 24*time.Hour)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, domain.SuggestionPending, s.Status)
	assert.True(t, s.ExpiresAt.Equal(now.Add(24*time.Hour)))
	assert.True(t, s.IsActive(now))
	assert.Equal(t, "2025-03-10", s.ReferenceDay)
}
