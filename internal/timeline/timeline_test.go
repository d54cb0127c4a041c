package timeline

import (
	"testing"

	"github.com/mgersten/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three-item scenario: A spans days 0-2 at 50% on the critical path, B is a
// single-instant task on day 1, C spans days -1..5 and covers the whole
// chart. With no extra buffer the union is 7 days and A sits one cell in.
func TestCompute_ThreeItemScenario(t *testing.T) {
	a := item("A", 0, 2, 50)
	a.Critical = true
	b := item("B", 1, 1, 100)
	c := item("C", -1, 5, 0)

	cfg := Config{WeekCellPx: 40, BufferDays: 0, MinBarWidthPx: 4}
	layout := Compute([]domain.ScheduleItem{a, b, c}, ZoomWeek, cfg, testNow)

	assert.Equal(t, 7, layout.Span.TotalDays)
	assert.Equal(t, 280, layout.WidthPx)
	require.Len(t, layout.Bars, 3)

	barA := layout.Bars[0]
	assert.Equal(t, 40, barA.LeftPx)
	assert.Equal(t, 80, barA.WidthPx)
	assert.Equal(t, 40, barA.FillPx)
	assert.True(t, barA.Critical)

	barB := layout.Bars[1]
	assert.Equal(t, 4, barB.WidthPx, "instant task clamps to minimum width")

	barC := layout.Bars[2]
	assert.Equal(t, 0, barC.LeftPx)
	assert.Equal(t, 240, barC.WidthPx, "C spans the full unbuffered range")
	assert.Equal(t, 0, barC.FillPx)
}

func TestCompute_BufferWidensScenario(t *testing.T) {
	items := []domain.ScheduleItem{item("A", 0, 2, 50), item("C", -1, 5, 0)}
	cfg := Config{WeekCellPx: 40, BufferDays: 1, MinBarWidthPx: 4}

	layout := Compute(items, ZoomWeek, cfg, testNow)

	assert.Equal(t, 9, layout.Span.TotalDays)
	assert.Equal(t, 80, layout.Bars[0].LeftPx, "A shifts one buffer cell right")
}

func TestCompute_Deterministic(t *testing.T) {
	items := []domain.ScheduleItem{
		item("a", -3, 4, 120),
		item("b", 2, 2, 60),
		item("c", 8, 1, -5), // inverted
	}
	first := Compute(items, ZoomWeek, DefaultConfig(), testNow)
	second := Compute(items, ZoomWeek, DefaultConfig(), testNow)

	assert.Equal(t, first, second)
}

func TestCompute_ZoomOnlyChangesCellWidth(t *testing.T) {
	items := []domain.ScheduleItem{item("a", 0, 9, 40)}

	week := Compute(items, ZoomWeek, DefaultConfig(), testNow)
	month := Compute(items, ZoomMonth, DefaultConfig(), testNow)

	assert.Equal(t, week.Span, month.Span, "zoom must not change which days are in span")
	assert.Len(t, month.DayColumns, len(week.DayColumns))
	assert.NotEqual(t, week.CellWidthPx, month.CellWidthPx)
}

func TestCompute_PreservesInputOrder(t *testing.T) {
	items := []domain.ScheduleItem{item("z", 5, 8, 0), item("a", 0, 1, 0)}
	layout := Compute(items, ZoomWeek, DefaultConfig(), testNow)

	require.Len(t, layout.Bars, 2)
	assert.Equal(t, "z", layout.Bars[0].ItemID, "engine must not reorder by date")
	assert.Equal(t, "a", layout.Bars[1].ItemID)
}

func TestCompute_EmptyInputRenders(t *testing.T) {
	layout := Compute(nil, ZoomWeek, DefaultConfig(), testNow)

	assert.Equal(t, 1, layout.Span.TotalDays)
	assert.Len(t, layout.DayColumns, 1)
	assert.Empty(t, layout.Bars)
	require.Len(t, layout.MonthBands, 1)
	assert.Equal(t, "April 2025", layout.MonthBands[0].Label)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	items := []domain.ScheduleItem{item("a", 0, 3, 150)}
	before := items[0]

	Compute(items, ZoomWeek, DefaultConfig(), testNow)

	assert.Equal(t, before, items[0], "engine borrows the list, never mutates it")
}
