package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgersten/taskline/internal/cli/formatter"
	"github.com/mgersten/taskline/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

// projectsLoadedMsg signals that the project list has been loaded.
type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

// ── view ─────────────────────────────────────────────────────────────────────

// projectsView is the home screen: a selectable list of active projects
// from which the timeline or board is opened.
type projectsView struct {
	state    *SharedState
	projects []domain.Project
	cursor   int
	loading  bool
	err      error
}

func newProjectsView(state *SharedState) View {
	return &projectsView{state: state, loading: true}
}

func (v *projectsView) ID() ViewID    { return ViewProjects }
func (v *projectsView) Title() string { return "Projects" }

func (v *projectsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gantt")),
		key.NewBinding(key.WithKeys("b", "enter"), key.WithHelp("b/enter", "board")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *projectsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *projectsView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		projects, err := app.Client.ListProjects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.projects = activeProjects(msg.projects)
			if v.cursor >= len(v.projects) {
				v.cursor = max(0, len(v.projects)-1)
			}
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.projects)-1 {
				v.cursor++
			}
		case "g":
			if v.cursor < len(v.projects) {
				v.state.SetActiveProject(v.projects[v.cursor])
				return v, pushView(newGanttView(v.state))
			}
		case "b", "enter":
			if v.cursor < len(v.projects) {
				v.state.SetActiveProject(v.projects[v.cursor])
				return v, pushView(newBoardView(v.state))
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *projectsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.projects) == 0 {
		return "\n  " + formatter.Dim("No active projects.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, p := range v.projects {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		dates := ""
		if p.StartDate != nil && p.EndDate != nil {
			dates = formatter.Dim(fmt.Sprintf("%s – %s",
				formatter.ShortDate(*p.StartDate), formatter.ShortDate(*p.EndDate)))
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(p.Name, 28)),
			dates,
		))
	}
	return b.String()
}

func activeProjects(projects []domain.Project) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != domain.ProjectArchived {
			out = append(out, p)
		}
	}
	return out
}
