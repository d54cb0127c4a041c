package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewProjects ViewID = iota
	ViewGantt
	ViewBoard
	ViewCardForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// escHandler is implemented by views that sometimes consume the escape
// key for their own state (cancelling a drag, say) instead of popping.
type escHandler interface {
	HandlesEsc() bool
}
