package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgersten/taskline/internal/cli/formatter"
	"github.com/mgersten/taskline/internal/domain"
	"github.com/mgersten/taskline/internal/timeline"
)

const (
	ganttNameColWidth = 22
	ganttWeekCell     = 4
	ganttMonthCell    = 2
)

// ── messages ─────────────────────────────────────────────────────────────────

// scheduleLoadedMsg signals that schedule items have been loaded, either
// from the tracker or, on failure, from the local snapshot.
type scheduleLoadedMsg struct {
	items     []domain.ScheduleItem
	fromCache bool
	fetchedAt time.Time
	err       error
}

// ── view ─────────────────────────────────────────────────────────────────────

// ganttView renders the project timeline. All geometry comes from the
// layout engine; this view only fetches data, tracks cursor/scroll state,
// and paints the returned layout.
type ganttView struct {
	state   *SharedState
	items   []domain.ScheduleItem
	layout  timeline.Layout
	loading bool
	err     error

	// Snapshot fallback bookkeeping
	stale     bool
	fetchedAt time.Time

	cursor int // selected row
	hDays  int // horizontal scroll, in days
}

func newGanttView(state *SharedState) View {
	return &ganttView{state: state, loading: true}
}

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Timeline" }

func (v *ganttView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "scroll")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *ganttView) Init() tea.Cmd {
	return v.loadData()
}

func (v *ganttView) loadData() tea.Cmd {
	app := v.state.App
	projectID := v.state.ActiveProjectID
	return func() tea.Msg {
		ctx := context.Background()

		items, err := app.Client.ListSchedule(ctx, projectID)
		if err == nil {
			if app.Cache != nil {
				if cacheErr := app.Cache.SaveSchedule(ctx, projectID, items, time.Now()); cacheErr != nil {
					app.Logger.Warn("saving schedule snapshot", "err", cacheErr)
				}
			}
			return scheduleLoadedMsg{items: items, fetchedAt: time.Now()}
		}

		if app.Cache != nil {
			cached, at, cacheErr := app.Cache.LoadSchedule(ctx, projectID)
			if cacheErr == nil && cached != nil {
				return scheduleLoadedMsg{items: cached, fromCache: true, fetchedAt: at}
			}
		}
		return scheduleLoadedMsg{err: err}
	}
}

// chartConfig maps layout pixels onto terminal cells.
func (v *ganttView) chartConfig() timeline.Config {
	return timeline.Config{
		WeekCellPx:    ganttWeekCell,
		MonthCellPx:   ganttMonthCell,
		BufferDays:    v.state.App.Cfg.Timeline.BufferDays,
		MinBarWidthPx: 1,
	}
}

// recompute regenerates the whole layout. Cheap by design: the engine is
// a pure function, so zoom or data changes never patch geometry.
func (v *ganttView) recompute() {
	v.layout = timeline.Compute(v.items, v.state.Zoom, v.chartConfig(), time.Now())
	if v.hDays >= v.layout.Span.TotalDays {
		v.hDays = v.layout.Span.TotalDays - 1
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.items = msg.items
		v.stale = msg.fromCache
		v.fetchedAt = msg.fetchedAt
		if v.cursor >= len(v.items) {
			v.cursor = max(0, len(v.items)-1)
		}
		v.recompute()
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.items)-1 {
				v.cursor++
			}
		case "left", "h":
			if v.hDays > 0 {
				v.hDays--
			}
		case "right", "l":
			if v.hDays < v.layout.Span.TotalDays-1 {
				v.hDays++
			}
		case "z":
			v.state.ToggleZoom()
			v.recompute()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *ganttView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	chartWidth := v.state.Width - ganttNameColWidth - 2
	if chartWidth < 10 {
		chartWidth = 10
	}
	visible := clipLayout(v.layout, v.hDays, chartWidth)

	var b strings.Builder
	b.WriteString("\n")

	if v.stale {
		b.WriteString("  " + formatter.StyleYellow.Render("⚠ offline, showing snapshot from "+v.fetchedAt.Format("Jan 02 15:04")) + "\n")
	}

	pad := strings.Repeat(" ", ganttNameColWidth+2)
	b.WriteString(pad + formatter.RenderMonthBands(visible) + "\n")
	b.WriteString(pad + formatter.RenderDayColumns(visible) + "\n")

	for i, bar := range visible.Bars {
		name := formatter.PadRight(bar.Name, ganttNameColWidth)
		marker := " "
		if bar.Critical {
			marker = formatter.StyleRed.Render("!")
		}
		if i == v.cursor {
			name = formatter.StyleBold.Render(name)
		} else {
			name = formatter.StyleFg.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", name, marker, formatter.RenderBar(bar, chartWidth)))
	}

	if len(v.items) == 0 {
		b.WriteString("  " + formatter.Dim("No scheduled items.") + "\n")
	} else if v.cursor < len(v.items) {
		b.WriteString("\n" + v.renderDetail(v.items[v.cursor]))
	}

	return b.String()
}

// renderDetail renders the info line for the selected item.
func (v *ganttView) renderDetail(item domain.ScheduleItem) string {
	var parts []string
	parts = append(parts, formatter.Bold(item.Name))
	parts = append(parts, formatter.Dim(fmt.Sprintf("%s – %s",
		formatter.ShortDate(item.Start), formatter.ShortDate(item.End))))
	parts = append(parts, formatter.RenderProgress(float64(domain.ClampPct(item.ProgressPct))/100, 10))
	if item.Critical {
		parts = append(parts, formatter.StyleRed.Render("critical path"))
	}
	if note := formatter.DependencyNote(item.DependencyIDs); note != "" {
		parts = append(parts, note)
	}
	return "  " + strings.Join(parts, "  ")
}

// clipLayout applies horizontal scroll (whole days) and right-edge
// clipping to a layout, producing the visible window the formatter
// renders. The engine's geometry stays untouched.
func clipLayout(l timeline.Layout, scrollDays, chartWidth int) timeline.Layout {
	out := l
	dx := scrollDays * l.CellWidthPx

	if scrollDays > 0 {
		if scrollDays < len(l.DayColumns) {
			out.DayColumns = l.DayColumns[scrollDays:]
		} else {
			out.DayColumns = nil
		}

		bars := make([]timeline.BarGeometry, len(l.Bars))
		for i, bar := range l.Bars {
			bar.LeftPx -= dx
			bars[i] = bar
		}
		out.Bars = bars
	}

	var bands []timeline.MonthBand
	for _, band := range l.MonthBands {
		band.OffsetPx -= dx
		if band.OffsetPx < 0 {
			band.WidthPx += band.OffsetPx
			band.OffsetPx = 0
		}
		if band.WidthPx <= 0 || band.OffsetPx >= chartWidth {
			continue
		}
		if band.OffsetPx+band.WidthPx > chartWidth {
			band.WidthPx = chartWidth - band.OffsetPx
		}
		bands = append(bands, band)
	}
	out.MonthBands = bands

	if maxCols := chartWidth / max(1, l.CellWidthPx); len(out.DayColumns) > maxCols {
		out.DayColumns = out.DayColumns[:maxCols]
	}

	out.WidthPx = l.WidthPx - dx
	if out.WidthPx < 0 {
		out.WidthPx = 0
	}
	return out
}
