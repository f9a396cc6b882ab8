package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityPill returns a colored priority indicator such as "▲ High".
func PriorityPill(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ High")
	case domain.PriorityMedium:
		return StyleYellow.Render("● Medium")
	case domain.PriorityLow:
		return StyleGreen.Render("▽ Low")
	default:
		return StyleDim.Render("--")
	}
}

func EventStatusPill(status domain.EventStatus) string {
	switch status {
	case domain.EventPending:
		return StyleBlue.Render("○ Pending")
	case domain.EventInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.EventCompleted:
		return StyleDim.Render("✔ Done")
	case domain.EventCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

func SuggestionStatusPill(status domain.SuggestionStatus) string {
	switch status {
	case domain.SuggestionPending:
		return StyleYellow.Render("○ Pending")
	case domain.SuggestionAccepted:
		return StyleGreen.Render("✔ Accepted")
	case domain.SuggestionRejected:
		return StyleDim.Render("✖ Rejected")
	case domain.SuggestionExpired:
		return StyleDim.Render("⊘ Expired")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
