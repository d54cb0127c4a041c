package cli

import (
	"github.com/mgersten/taskline/internal/domain"
	"github.com/mgersten/taskline/internal/timeline"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID   string
	ActiveProjectName string

	// Timeline display preferences
	Zoom timeline.Zoom

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject sets the active project context.
func (s *SharedState) SetActiveProject(p domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveProjectName = p.Name
}

// ToggleZoom flips between week and month granularity.
func (s *SharedState) ToggleZoom() {
	if s.Zoom == timeline.ZoomMonth {
		s.Zoom = timeline.ZoomWeek
	} else {
		s.Zoom = timeline.ZoomMonth
	}
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
