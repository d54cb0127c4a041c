package cli

import (
	"bytes"
	"testing"

	"github.com/mgersten/taskline/internal/timeline"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectsCmd_ListsProjects(t *testing.T) {
	tracker := newFakeTracker(t)
	app := testApp(t, tracker)

	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"projects"})

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "p1")
	assert.Contains(t, out.String(), "Acme Site Redesign")
	assert.Contains(t, out.String(), "archived")
}

func TestRootCmd_RefusesNonInteractiveTerminal(t *testing.T) {
	tracker := newFakeTracker(t)
	app := testApp(t, tracker)
	app.IsInteractive = func() bool { return false }

	root := NewRootCmd(app)
	root.SetArgs(nil)
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestGanttCmd_RejectsInvalidZoom(t *testing.T) {
	tracker := newFakeTracker(t)
	app := testApp(t, tracker)

	root := NewRootCmd(app)
	root.SetArgs([]string{"gantt", "p1", "--zoom", "daily"})
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --zoom")
}

func TestZoomFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("zoom", "", "")

	zoom, err := zoomFromFlags(fs, timeline.ZoomWeek)
	require.NoError(t, err)
	assert.Equal(t, timeline.ZoomWeek, zoom)

	require.NoError(t, fs.Set("zoom", "month"))
	zoom, err = zoomFromFlags(fs, timeline.ZoomWeek)
	require.NoError(t, err)
	assert.Equal(t, timeline.ZoomMonth, zoom)
}
