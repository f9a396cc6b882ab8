package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
)

// FormatConflicts renders travel conflicts as a numbered list.
func FormatConflicts(conflicts []app.DayConflict, loc *time.Location) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✔ No travel conflicts.")
	}

	var b strings.Builder
	for i, c := range conflicts {
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			Bold(fmt.Sprintf("%d.", i+1)),
			StyleFg.Render(c.First.Title),
			Dim("→"),
			StyleFg.Render(c.Second.Title)))
		b.WriteString(fmt.Sprintf("   %s %s %s %s\n",
			Dim("Travel:"), FormatDuration(c.TravelTime),
			Dim("Gap:"), FormatDuration(c.Gap)))
		b.WriteString(fmt.Sprintf("   %s %s\n",
			StyleRed.Render("SHORT BY"), FormatDuration(c.Shortfall)))
		b.WriteString(fmt.Sprintf("   %s move to %s\n",
			StyleYellow.Render("FIX:"), c.SuggestedStart.In(loc).Format("15:04")))
		if i < len(conflicts)-1 {
			b.WriteString("\n")
		}
	}
	return RenderBox(fmt.Sprintf("Conflicts (%d)", len(conflicts)), strings.TrimSuffix(b.String(), "\n"))
}

// FormatOptimize renders a reordering proposal.
func FormatOptimize(res *app.OptimizeResult, loc *time.Location) string {
	if !res.Possible {
		return Dim(res.Message)
	}

	headers := []string{"ID", "EVENT", "FROM", "TO"}
	rows := make([][]string, 0, len(res.Proposals))
	for _, p := range res.Proposals {
		rows = append(rows, []string{
			TruncID(p.Event.ID),
			p.Event.Title,
			p.Event.Start.In(loc).Format("15:04"),
			StyleGreen.Render(p.NewStart.In(loc).Format("15:04")),
		})
	}

	summary := fmt.Sprintf("%s %s → %s  %s",
		Dim("Travel:"),
		FormatDuration(res.CurrentTravel),
		FormatDuration(res.OptimizedTravel),
		StyleGreen.Render(fmt.Sprintf("(saves %s)", FormatDuration(res.Savings))))

	return RenderBox("Optimized order", RenderTable(headers, rows)+"\n"+summary)
}

// FormatFixes renders applied moves.
func FormatFixes(fixes []app.FixResult, loc *time.Location) string {
	var b strings.Builder
	for _, f := range fixes {
		b.WriteString(fmt.Sprintf("%s Moved %s from %s to %s\n",
			StyleGreen.Render("✔"),
			Bold(f.Title),
			f.PreviousStart.In(loc).Format("15:04"),
			f.NewStart.In(loc).Format("15:04")))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
