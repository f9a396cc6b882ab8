package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// FormatEventTable renders events grouped under one header per day. Times
// are shown in loc.
func FormatEventTable(events []*domain.Event, categories map[string]string, loc *time.Location) string {
	if len(events) == 0 {
		return Dim("No events found.")
	}

	headers := []string{"ID", "TIME", "TITLE", "LOCATION", "CATEGORY", "PRIORITY", "STATUS"}
	var b strings.Builder
	var day string
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		b.WriteString(Header(day) + "\n")
		b.WriteString(RenderTable(headers, rows))
		b.WriteString("\n")
		rows = nil
	}

	for _, e := range events {
		start, end := e.Start.In(loc), e.End.In(loc)
		if d := HumanDate(start); d != day {
			flush()
			day = d
		}
		title := e.Title
		if e.Occurrence {
			title += Dim(" ↻")
		} else if !e.Flexible {
			title += Dim(" (fixed)")
		}
		category := Dim("--")
		if name, ok := categories[e.CategoryID]; ok {
			category = StylePurple.Render(name)
		}
		location := Dim("--")
		if e.HasLocation() {
			location = Truncate(e.Location, 30)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			ClockRange(start, end),
			Truncate(title, 40),
			location,
			category,
			PriorityPill(e.Priority),
			EventStatusPill(e.Status),
		})
	}
	flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatEvent renders one event's details.
func FormatEvent(e *domain.Event, loc *time.Location) string {
	pairs := [][2]string{
		{"ID", e.ID},
		{"When", fmt.Sprintf("%s %s", HumanDate(e.Start.In(loc)), ClockRange(e.Start.In(loc), e.End.In(loc)))},
		{"Duration", FormatDuration(e.Duration())},
		{"Priority", PriorityPill(e.Priority)},
		{"Status", EventStatusPill(e.Status)},
	}
	if e.HasLocation() {
		pairs = append(pairs, [2]string{"Location", e.Location})
	}
	if e.RRule != "" {
		pairs = append(pairs, [2]string{"Repeats", e.RRule})
	}
	flex := "no"
	if e.Flexible {
		flex = "yes"
	}
	pairs = append(pairs, [2]string{"Flexible", flex})
	return RenderBox(e.Title, RenderFields(pairs))
}
