package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgersten/taskline/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, a breadcrumb header, and a key-hint bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App, makeHome func(*SharedState) View) appModel {
	state := &SharedState{
		App:  app,
		Zoom: app.DefaultZoom(),
	}
	return appModel{
		state:     state,
		viewStack: []View{makeHome(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		// Broadcast to the whole stack so views below a form reload data
		// mutated above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	v := m.activeView()
	if v == nil {
		return m, nil
	}

	// Views that capture text input (forms) get every key.
	if v.ID() != ViewCardForm {
		switch msg.String() {
		case "q":
			if len(m.viewStack) == 1 {
				m.quitting = true
				return m, tea.Quit
			}
			return m, popView()
		case "esc":
			h, captures := v.(escHandler)
			if (!captures || !h.HandlesEsc()) && len(m.viewStack) > 1 {
				return m, popView()
			}
		}
	}

	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	if v := m.activeView(); v != nil {
		b.WriteString(v.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderHints())
	return b.String()
}

// renderHeader renders the breadcrumb line and a separator.
func (m appModel) renderHeader() string {
	crumbs := make([]string, 0, len(m.viewStack)+2)
	crumbs = append(crumbs, "taskline")
	if m.state.ActiveProjectName != "" {
		crumbs = append(crumbs, m.state.ActiveProjectName)
	}
	for _, v := range m.viewStack {
		crumbs = append(crumbs, v.Title())
	}

	line := formatter.StyleHeader.Render(strings.Join(crumbs, " › "))
	sep := formatter.Dim(strings.Repeat("─", max(0, m.state.Width)))
	return line + "\n" + sep + "\n"
}

// renderHints renders the bottom key-hint bar from the active view's
// ShortHelp bindings.
func (m appModel) renderHints() string {
	v := m.activeView()
	if v == nil {
		return ""
	}
	parts := make([]string, 0, 8)
	for _, b := range v.ShortHelp() {
		h := b.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	parts = append(parts, formatter.Bold("q")+" "+formatter.Dim("back/quit"))
	return lipgloss.NewStyle().Width(m.state.Width).Render(strings.Join(parts, "  "))
}
