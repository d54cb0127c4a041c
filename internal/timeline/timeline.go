// Package timeline converts an unordered set of schedule items into a
// deterministic pixel grid for the Gantt view: a buffered calendar span,
// month header bands, day columns, and per-item bar geometry.
//
// Everything here is a pure function of its inputs. The engine never
// rejects malformed data (empty input, inverted ranges, out-of-range
// progress); it clamps and defaults so the caller always has something
// renderable. Visibility policy for out-of-span dates belongs to the
// renderer, not to the geometry.
package timeline

import (
	"time"

	"github.com/mgersten/taskline/internal/domain"
)

// Zoom selects the pixel width of one day column. It changes nothing else:
// the same days are in span at either zoom.
type Zoom string

const (
	ZoomWeek  Zoom = "week"
	ZoomMonth Zoom = "month"
)

// Config holds the layout constants. Zero values are replaced by defaults
// in Compute, so Config{} is usable.
type Config struct {
	WeekCellPx    int // day column width at week zoom
	MonthCellPx   int // day column width at month zoom
	BufferDays    int // lead/trail days added around the item union
	MinBarWidthPx int // floor for bar width, keeps degenerate items visible
}

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		WeekCellPx:    40,
		MonthCellPx:   12,
		BufferDays:    1,
		MinBarWidthPx: 4,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WeekCellPx <= 0 {
		c.WeekCellPx = d.WeekCellPx
	}
	if c.MonthCellPx <= 0 {
		c.MonthCellPx = d.MonthCellPx
	}
	if c.BufferDays < 0 {
		c.BufferDays = d.BufferDays
	}
	if c.MinBarWidthPx <= 0 {
		c.MinBarWidthPx = d.MinBarWidthPx
	}
	return c
}

// CellWidth returns the day column width for a zoom level.
func (c Config) CellWidth(z Zoom) int {
	if z == ZoomMonth {
		return c.MonthCellPx
	}
	return c.WeekCellPx
}

// Span is the visible date range of the chart. Start and End are
// day-normalized UTC midnights; TotalDays is inclusive and at least 1.
type Span struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// MonthBand is one segment of the month header row.
type MonthBand struct {
	Label    string
	OffsetPx int
	WidthPx  int
}

// DayColumn is one cell of the day header row.
type DayColumn struct {
	Date     time.Time
	Label    string
	OffsetPx int
	Weekend  bool
}

// BarGeometry is the render-ready geometry of one task bar.
type BarGeometry struct {
	ItemID        string
	Name          string
	LeftPx        int
	WidthPx       int
	FillPx        int
	Critical      bool
	DependencyIDs []string
}

// Layout is the full render model for one chart. It is regenerated
// wholesale on any input change, never patched.
type Layout struct {
	Span        Span
	MonthBands  []MonthBand
	DayColumns  []DayColumn
	Bars        []BarGeometry
	CellWidthPx int
	WidthPx     int
}

// Compute builds the complete layout for items at the given zoom. The now
// argument anchors the default span for empty input; passing a fixed
// instant makes the result fully deterministic.
//
// Bars keep the input item order. Row ordering is a caller concern,
// typically "as returned by the server".
func Compute(items []domain.ScheduleItem, zoom Zoom, cfg Config, now time.Time) Layout {
	cfg = cfg.withDefaults()
	cell := cfg.CellWidth(zoom)

	span := CalculateSpan(items, now, cfg.BufferDays)

	bars := make([]BarGeometry, 0, len(items))
	for _, item := range items {
		bars = append(bars, BuildBar(span, item, cell, cfg.MinBarWidthPx))
	}

	return Layout{
		Span:        span,
		MonthBands:  BuildMonthBands(span, cell),
		DayColumns:  BuildDayColumns(span, cell),
		Bars:        bars,
		CellWidthPx: cell,
		WidthPx:     span.TotalDays * cell,
	}
}
