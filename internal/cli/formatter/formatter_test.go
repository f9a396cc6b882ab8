package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/travel"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now.Add(6 * time.Hour), "Today"},
		{"tomorrow early", time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "1m", FormatDuration(10*time.Second))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{StyleRed.Render("x"), "1"},
		{"long cell", "2"},
	})
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
}

func TestRenderFields(t *testing.T) {
	out := RenderFields([][2]string{{"A", "1"}, {"Long", "2"}})
	assert.Contains(t, out, "A:")
	assert.Contains(t, out, "Long:")
	assert.Len(t, splitLines(out), 2)
}

func TestFormatEventTable(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	events := []*domain.Event{
		{ID: "11111111-aaaa", Title: "Standup", Start: start, End: start.Add(15 * time.Minute),
			Priority: domain.PriorityHigh, Status: domain.EventPending, CategoryID: "c1"},
		{ID: "22222222-bbbb", Title: "Review", Start: start.Add(24 * time.Hour), End: start.Add(25 * time.Hour),
			Location: "Paris", Flexible: true, Status: domain.EventPending},
	}

	out := FormatEventTable(events, map[string]string{"c1": "Work"}, time.UTC)
	assert.Contains(t, out, "MON MAR 10")
	assert.Contains(t, out, "TUE MAR 11")
	assert.Contains(t, out, "09:00-09:15")
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "(fixed)")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "Paris")

	assert.Contains(t, FormatEventTable(nil, nil, time.UTC), "No events found.")
}

func TestFormatSchedule(t *testing.T) {
	slot := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	resp := &app.ScheduleResponse{
		Success:             true,
		ScheduledTime:       &slot,
		Message:             "Preferred time was busy; moved to 14:00",
		OptimizationApplied: true,
		Conflicts:           []app.EventRef{{Title: "Lunch", Start: slot.Add(-2 * time.Hour), End: slot.Add(-time.Hour)}},
		TravelWarnings: []app.TravelWarning{
			{Kind: app.WarningTravelBefore, EventTitle: "Lunch", TravelMinutes: 40, AvailableMinutes: 20},
		},
		CandidatesEvaluated: 12,
		BudgetExhausted:     true,
	}

	out := FormatSchedule(resp, time.UTC)
	assert.Contains(t, out, "Mon Mar 10 14:00")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "40 min")
	assert.Contains(t, out, "12 candidates evaluated")
	assert.Contains(t, out, "budget exhausted")

	failed := FormatSchedule(&app.ScheduleResponse{Message: "No free slot"}, time.UTC)
	assert.Contains(t, failed, "No free slot")
}

func TestFormatConflictsAndOptimize(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	conflicts := []app.DayConflict{{
		First:          app.EventRef{Title: "Paris meeting"},
		Second:         app.EventRef{Title: "Lyon meeting"},
		TravelTime:     60 * time.Minute,
		Gap:            30 * time.Minute,
		Shortfall:      30 * time.Minute,
		SuggestedStart: base.Add(2 * time.Hour),
	}}
	out := FormatConflicts(conflicts, time.UTC)
	assert.Contains(t, out, "Paris meeting")
	assert.Contains(t, out, "SHORT BY")
	assert.Contains(t, out, "12:00")
	assert.Contains(t, FormatConflicts(nil, time.UTC), "No travel conflicts")

	opt := &app.OptimizeResult{
		Possible:        true,
		CurrentTravel:   3 * time.Hour,
		OptimizedTravel: time.Hour,
		Savings:         2 * time.Hour,
		Proposals: []app.SequenceProposal{
			{Event: app.EventRef{ID: "e1", Title: "Lyon", Start: base}, NewStart: base.Add(time.Hour)},
		},
	}
	out = FormatOptimize(opt, time.UTC)
	assert.Contains(t, out, "saves 2h")
	assert.Contains(t, out, "11:00")
	assert.Contains(t, FormatOptimize(&app.OptimizeResult{Message: "Nothing to reorder"}, time.UTC), "Nothing to reorder")
}

func TestFormatSuggestion_Payloads(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	s := &domain.Suggestion{
		ID:        "s1",
		Type:      domain.SuggestionBalanceDay,
		Title:     "Balance your day",
		Priority:  domain.PriorityLow,
		Status:    domain.SuggestionPending,
		ExpiresAt: now.Add(24 * time.Hour),
		Payload: domain.BalancePayload{
			DominantCategory: "Work",
			Share:            0.89,
			Distribution:     []domain.CategoryShare{{Category: "Work", Hours: 8}, {Category: "Gym", Hours: 1}},
		},
	}
	out := FormatSuggestion(s, time.UTC)
	assert.Contains(t, out, "Work (89%)")
	assert.Contains(t, out, "Gym 1.0h")

	table := FormatSuggestionTable([]*domain.Suggestion{s}, now)
	assert.Contains(t, table, "balance")
	assert.Contains(t, table, "24h")
}

func TestFormatTravel(t *testing.T) {
	out := FormatTravel(travel.Info{Origin: "Paris", Destination: "Lyon", Duration: time.Hour, Minutes: 60, NeedsBuffer: true})
	assert.Contains(t, out, "1h")
	assert.Contains(t, out, "yes")

	none := FormatTravel(travel.Info{Origin: "Home", Destination: "home"})
	assert.Contains(t, none, "No travel needed")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
