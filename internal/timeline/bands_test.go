package timeline

import (
	"testing"
	"time"

	"github.com/mgersten/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanOf(start, end time.Time) Span {
	return Span{
		Start:     domain.DayOf(start),
		End:       domain.DayOf(end),
		TotalDays: domain.DaysBetween(start, end) + 1,
	}
}

func TestBuildMonthBands_SingleMonth(t *testing.T) {
	span := spanOf(
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
	)
	bands := BuildMonthBands(span, 10)

	require.Len(t, bands, 1)
	assert.Equal(t, "April 2025", bands[0].Label)
	assert.Equal(t, 0, bands[0].OffsetPx)
	assert.Equal(t, 100, bands[0].WidthPx)
}

func TestBuildMonthBands_CrossesMonthBoundary(t *testing.T) {
	span := spanOf(
		time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
	)
	bands := BuildMonthBands(span, 10)

	require.Len(t, bands, 2)
	assert.Equal(t, "April 2025", bands[0].Label)
	assert.Equal(t, 0, bands[0].OffsetPx)
	assert.Equal(t, 30, bands[0].WidthPx) // Apr 28-30
	assert.Equal(t, "May 2025", bands[1].Label)
	assert.Equal(t, 30, bands[1].OffsetPx)
	assert.Equal(t, 30, bands[1].WidthPx) // May 1-3
}

func TestBuildMonthBands_NeverExceedChartWidth(t *testing.T) {
	span := spanOf(
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	)
	cell := 7
	chartWidth := span.TotalDays * cell

	for _, band := range BuildMonthBands(span, cell) {
		assert.LessOrEqual(t, band.OffsetPx+band.WidthPx, chartWidth, "band %s", band.Label)
	}
}

func TestBuildMonthBands_YearRolloverLabels(t *testing.T) {
	span := spanOf(
		time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	)
	bands := BuildMonthBands(span, 10)

	require.Len(t, bands, 2)
	assert.Equal(t, "December 2024", bands[0].Label)
	assert.Equal(t, "January 2025", bands[1].Label)
}

func TestBuildDayColumns_OnePerVisibleDay(t *testing.T) {
	span := spanOf(
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), // Saturday
		time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC),
	)
	cols := BuildDayColumns(span, 40)

	require.Len(t, cols, 7)
	assert.Equal(t, "5", cols[0].Label)
	assert.True(t, cols[0].Weekend)
	assert.True(t, cols[1].Weekend) // Sunday the 6th
	assert.False(t, cols[2].Weekend)
	assert.Equal(t, 240, cols[6].OffsetPx)
}
