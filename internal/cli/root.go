package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mgersten/taskline/internal/api"
	"github.com/mgersten/taskline/internal/cache"
	"github.com/mgersten/taskline/internal/config"
	"github.com/mgersten/taskline/internal/timeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the wired collaborators used by CLI commands and TUI views.
type App struct {
	Client *api.Client
	Cache  *cache.Store
	Cfg    config.Config
	Logger *log.Logger

	// IsInteractive gates the TUI entrypoint on a real terminal.
	IsInteractive func() bool
}

// DefaultZoom returns the configured timeline zoom level.
func (a *App) DefaultZoom() timeline.Zoom {
	if a.Cfg.Timeline.DefaultZoom == "month" {
		return timeline.ZoomMonth
	}
	return timeline.ZoomWeek
}

// NewRootCmd creates the top-level "taskline" command and registers all
// subcommands against the provided App. Running it bare opens the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskline",
		Short: "Terminal client for the tracker: dashboard, Gantt timeline, kanban board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("taskline's interactive mode needs a terminal; see `taskline --help` for subcommands")
			}
			return startTUI(app, newProjectsView)
		},
	}

	root.AddCommand(
		newProjectsCmd(app),
		newGanttCmd(app),
		newBoardCmd(app),
	)

	return root
}

// newProjectsCmd lists projects without entering the TUI.
func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Client.ListProjects(context.Background())
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-9s %s\n", p.ID, p.Status, p.Name)
			}
			return nil
		},
	}
}

// newGanttCmd opens the TUI directly on a project's timeline.
func newGanttCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gantt <project-id>",
		Short: "Open the Gantt timeline for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoom, err := zoomFromFlags(cmd.Flags(), app.DefaultZoom())
			if err != nil {
				return err
			}
			return startProjectTUI(app, args[0], func(state *SharedState) View {
				state.Zoom = zoom
				return newGanttView(state)
			})
		},
	}
	cmd.Flags().String("zoom", "", "timeline zoom granularity (week or month)")
	return cmd
}

// zoomFromFlags resolves the --zoom override, falling back to the
// configured default when the flag is unset.
func zoomFromFlags(fs *pflag.FlagSet, fallback timeline.Zoom) (timeline.Zoom, error) {
	s, err := fs.GetString("zoom")
	if err != nil || s == "" {
		return fallback, nil
	}
	switch s {
	case "week":
		return timeline.ZoomWeek, nil
	case "month":
		return timeline.ZoomMonth, nil
	}
	return fallback, fmt.Errorf("invalid --zoom %q: use week or month", s)
}

// newBoardCmd opens the TUI directly on a project's kanban board.
func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board <project-id>",
		Short: "Open the kanban board for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return startProjectTUI(app, args[0], func(state *SharedState) View {
				return newBoardView(state)
			})
		},
	}
}

// startProjectTUI resolves the project, seeds the shared state, and
// launches the TUI on the given view.
func startProjectTUI(app *App, projectID string, makeView func(*SharedState) View) error {
	project, err := app.Client.GetProject(context.Background(), projectID)
	if err != nil {
		return fmt.Errorf("loading project %s: %w", projectID, err)
	}
	return startTUI(app, func(state *SharedState) View {
		state.SetActiveProject(project)
		return makeView(state)
	})
}
