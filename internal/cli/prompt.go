package cli

import (
	"errors"

	"github.com/alexanderramin/agenda/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errNotInteractive is returned by prompts when stdin is not a terminal.
var errNotInteractive = errors.New("this needs an interactive terminal")

func agendaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks a yes/no question. yes short-circuits the prompt.
func confirm(app *App, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errNotInteractive
	}
	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(agendaHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// choose shows a single-choice list and returns the selected value.
func choose(app *App, title string, options []huh.Option[string]) (string, error) {
	if !app.interactive() {
		return "", errNotInteractive
	}
	var v string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&v),
		),
	).WithTheme(agendaHuhTheme()).WithShowHelp(false).Run()
	return v, err
}
