package timeline

import (
	"testing"

	"github.com/mgersten/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildBar_BasicGeometry(t *testing.T) {
	span := CalculateSpan([]domain.ScheduleItem{item("a", 0, 10, 0)}, testNow, 0)
	bar := BuildBar(span, item("a", 2, 5, 50), 40, 4)

	assert.Equal(t, 80, bar.LeftPx)
	assert.Equal(t, 120, bar.WidthPx)
	assert.Equal(t, 60, bar.FillPx)
}

func TestBuildBar_ZeroDurationClampedToMinWidth(t *testing.T) {
	span := CalculateSpan([]domain.ScheduleItem{item("a", 0, 10, 0)}, testNow, 0)
	bar := BuildBar(span, item("b", 3, 3, 100), 40, 4)

	assert.Equal(t, 4, bar.WidthPx)
	assert.Equal(t, 4, bar.FillPx)
}

func TestBuildBar_InvertedRangeClampedToMinWidth(t *testing.T) {
	span := CalculateSpan([]domain.ScheduleItem{item("a", 0, 10, 0)}, testNow, 0)
	bar := BuildBar(span, item("b", 7, 2, 30), 40, 4)

	assert.GreaterOrEqual(t, bar.WidthPx, 4, "inverted range must stay visible")
	assert.GreaterOrEqual(t, bar.FillPx, 0)
}

func TestBuildBar_ProgressClampedNotRejected(t *testing.T) {
	span := CalculateSpan([]domain.ScheduleItem{item("a", 0, 10, 0)}, testNow, 0)

	over := BuildBar(span, item("b", 0, 5, 250), 40, 4)
	atMax := BuildBar(span, item("b", 0, 5, 100), 40, 4)
	assert.Equal(t, atMax.FillPx, over.FillPx, "fill for 250%% equals fill for clamped 100%%")

	under := BuildBar(span, item("c", 0, 5, -10), 40, 4)
	atMin := BuildBar(span, item("c", 0, 5, 0), 40, 4)
	assert.Equal(t, atMin.FillPx, under.FillPx)
}

func TestBuildBar_CarriesCriticalAndDependencies(t *testing.T) {
	span := CalculateSpan([]domain.ScheduleItem{item("a", 0, 10, 0)}, testNow, 0)
	it := item("b", 1, 4, 0)
	it.Critical = true
	it.DependencyIDs = []string{"a"}

	bar := BuildBar(span, it, 40, 4)

	assert.True(t, bar.Critical)
	assert.Equal(t, []string{"a"}, bar.DependencyIDs)
}
