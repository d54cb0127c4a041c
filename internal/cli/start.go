package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// startTUI launches the bubbletea program with the given home view.
func startTUI(app *App, makeHome func(*SharedState) View) error {
	m := newAppModel(app, makeHome)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
