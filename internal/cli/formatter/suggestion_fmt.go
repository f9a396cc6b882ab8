package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// FormatSuggestionTable lists suggestions with their expiry relative to now.
func FormatSuggestionTable(suggestions []*domain.Suggestion, now time.Time) string {
	if len(suggestions) == 0 {
		return Dim("No suggestions.")
	}

	headers := []string{"ID", "TYPE", "TITLE", "PRIORITY", "STATUS", "EXPIRES"}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		expires := Dim("--")
		if s.Status == domain.SuggestionPending {
			expires = FormatDuration(s.ExpiresAt.Sub(now))
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			TypeLabel(s.Type),
			Truncate(s.Title, 48),
			PriorityPill(s.Priority),
			SuggestionStatusPill(s.Status),
			expires,
		})
	}
	return RenderBox(fmt.Sprintf("Suggestions (%d)", len(suggestions)), RenderTable(headers, rows))
}

// TypeLabel returns a short human label for a suggestion type.
func TypeLabel(t domain.SuggestionType) string {
	switch t {
	case domain.SuggestionTakeBreak:
		return StyleBlue.Render("break")
	case domain.SuggestionBalanceDay:
		return StylePurple.Render("balance")
	case domain.SuggestionMoveEvent:
		return StyleYellow.Render("move")
	default:
		return Dim(string(t))
	}
}

// FormatSuggestion renders one suggestion with its rule-specific details.
func FormatSuggestion(s *domain.Suggestion, loc *time.Location) string {
	pairs := [][2]string{
		{"ID", s.ID},
		{"Type", TypeLabel(s.Type)},
		{"Priority", PriorityPill(s.Priority)},
		{"Status", SuggestionStatusPill(s.Status)},
		{"Expires", HumanTime(s.ExpiresAt.In(loc))},
	}

	switch p := s.Payload.(type) {
	case domain.BreakPayload:
		pairs = append(pairs,
			[2]string{"Worked", fmt.Sprintf("%.1fh since %s", p.HoursWorked, p.BlockStart.In(loc).Format("15:04"))},
			[2]string{"Break", fmt.Sprintf("%s at %s", FormatDuration(p.BreakDuration), p.SuggestedAt.In(loc).Format("15:04"))})
	case domain.BalancePayload:
		parts := make([]string, 0, len(p.Distribution))
		for _, share := range p.Distribution {
			parts = append(parts, fmt.Sprintf("%s %.1fh", share.Category, share.Hours))
		}
		pairs = append(pairs,
			[2]string{"Dominant", fmt.Sprintf("%s (%.0f%%)", p.DominantCategory, p.Share*100)},
			[2]string{"Split", strings.Join(parts, ", ")})
	case domain.MovePayload:
		pairs = append(pairs,
			[2]string{"Event", p.EventTitle},
			[2]string{"Starts", HumanTime(p.CurrentStart.In(loc))},
			[2]string{"Stalled", FormatDuration(p.Stalled)})
	}

	body := RenderFields(pairs)
	if s.Description != "" {
		body += "\n\n" + s.Description
	}
	return RenderBox(s.Title, body)
}
