package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mgersten/taskline/internal/api"
	"github.com/mgersten/taskline/internal/cache"
	"github.com/mgersten/taskline/internal/config"
	"github.com/mgersten/taskline/internal/teatest"
	"github.com/stretchr/testify/require"
)

// fakeTracker is an in-memory tracker API backing TUI tests. Card state
// is mutable so tests can exercise the reload-on-failure path against a
// server whose truth diverged from the client's.
type fakeTracker struct {
	srv *httptest.Server

	mu        sync.Mutex
	cardsJSON string
	failPatch bool
	patched   [][2]string // cardID, status
}

const trackerProjectsJSON = `[
	{"id": "p1", "name": "Acme Site Redesign", "status": "active", "startDate": "2026-03-01", "endDate": "2026-04-15"},
	{"id": "p2", "name": "Old Warehouse", "status": "archived"}
]`

const trackerScheduleJSON = `[
	{"id": "s1", "name": "Foundation work", "startDate": "2026-03-02", "endDate": "2026-03-06", "progressPercentage": 50, "isCritical": true, "dependencyIds": []},
	{"id": "s2", "name": "Framing", "startDate": "2026-03-05", "endDate": "2026-03-09", "progressPercentage": 0, "isCritical": false, "dependencyIds": ["s1"]}
]`

const trackerCardsJSON = `[
	{"id": "t1", "title": "Design homepage", "status": "NOT_STARTED", "priority": "high"},
	{"id": "t2", "title": "Write copy", "status": "IN_PROGRESS"}
]`

func newFakeTracker(t *testing.T) *fakeTracker {
	t.Helper()
	f := &fakeTracker{cardsJSON: trackerCardsJSON}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, trackerProjectsJSON)
	})
	mux.HandleFunc("GET /api/projects/p1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "p1", "name": "Acme Site Redesign", "status": "active"}`)
	})
	mux.HandleFunc("GET /api/projects/p1/schedule", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, trackerScheduleJSON)
	})
	mux.HandleFunc("GET /api/projects/p1/tasks", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		io.WriteString(w, f.cardsJSON)
	})
	mux.HandleFunc("POST /api/projects/p1/tasks", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["id"] = "t-new"
		json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("PUT /api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, r.Body)
	})
	mux.HandleFunc("PATCH /api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failPatch {
			http.Error(w, "stale task version", http.StatusInternalServerError)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/status")
		f.patched = append(f.patched, [2]string{id, body["status"]})
		w.WriteHeader(http.StatusNoContent)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// setFailPatch makes subsequent status PATCHes fail with a 500.
func (f *fakeTracker) setFailPatch(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPatch = fail
}

// setCards replaces the server's authoritative card set.
func (f *fakeTracker) setCards(cardsJSON string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cardsJSON = cardsJSON
}

func (f *fakeTracker) patchCalls() [][2]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][2]string(nil), f.patched...)
}

// testApp wires an App against a fake tracker and an in-memory snapshot store.
func testApp(t *testing.T, tracker *fakeTracker) *App {
	t.Helper()

	store, err := cache.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	client := api.NewClient(
		api.Config{BaseURL: tracker.srv.URL, Timeout: 2 * time.Second},
		api.StaticToken("test-token"),
		nil,
	)

	return &App{
		Client:        client,
		Cache:         store,
		Cfg:           config.Default(),
		Logger:        log.New(io.Discard),
		IsInteractive: func() bool { return true },
	}
}

// TestDriver wraps teatest.Driver with taskline-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel on the projects view, sets the
// terminal size, and drains Init() so the first data load settles.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app, newProjectsView)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// PlainView returns the rendered output with ANSI escapes stripped.
func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
