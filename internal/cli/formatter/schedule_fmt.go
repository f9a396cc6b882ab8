package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
)

// FormatSchedule renders a slot search outcome.
func FormatSchedule(resp *app.ScheduleResponse, loc *time.Location) string {
	var b strings.Builder

	if !resp.Success || resp.ScheduledTime == nil {
		b.WriteString(StyleRed.Render("✖ " + resp.Message))
		b.WriteString("\n")
	} else {
		slot := resp.ScheduledTime.In(loc)
		mark := StyleGreen.Render("✔")
		if resp.OptimizationApplied {
			mark = StyleYellow.Render("↪")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", mark, Bold(HumanTime(slot)), Dim(RelativeDateFrom(slot, time.Now()))))
		b.WriteString(Dim(resp.Message))
		b.WriteString("\n")
	}

	if len(resp.Conflicts) > 0 {
		b.WriteString("\n" + Header("Preferred slot conflicts") + "\n")
		for _, c := range resp.Conflicts {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleRed.Render("•"),
				ClockRange(c.Start.In(loc), c.End.In(loc)),
				c.Title))
		}
	}

	if len(resp.TravelWarnings) > 0 {
		b.WriteString("\n" + Header("Travel") + "\n")
		for _, w := range resp.TravelWarnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("!"), w.Message()))
		}
	}

	stats := fmt.Sprintf("%d candidates evaluated", resp.CandidatesEvaluated)
	if resp.Success {
		stats += fmt.Sprintf(", score %.1f", resp.Score)
	}
	if resp.BudgetExhausted {
		stats += ", search budget exhausted"
	}
	b.WriteString("\n" + Dim(stats))
	return b.String()
}
