package timeline

import (
	"time"

	"github.com/mgersten/taskline/internal/domain"
)

// CalculateSpan derives the chart's visible range from the item date
// union, widened symmetrically by bufferDays so bars and dependency edges
// near the boundary keep breathing room.
//
// Empty input yields a one-day span anchored at now: an empty chart
// renders instead of erroring. TotalDays is inclusive and never below 1,
// even when every item range is degenerate or inverted.
func CalculateSpan(items []domain.ScheduleItem, now time.Time, bufferDays int) Span {
	if len(items) == 0 {
		day := domain.DayOf(now)
		return Span{Start: day, End: day, TotalDays: 1}
	}

	start := domain.DayOf(items[0].Start)
	end := domain.DayOf(items[0].End)
	for _, item := range items[1:] {
		if s := domain.DayOf(item.Start); s.Before(start) {
			start = s
		}
		if e := domain.DayOf(item.End); e.After(end) {
			end = e
		}
	}

	start = start.AddDate(0, 0, -bufferDays)
	end = end.AddDate(0, 0, bufferDays)

	total := domain.DaysBetween(start, end) + 1
	if total < 1 {
		total = 1
	}
	return Span{Start: start, End: end, TotalDays: total}
}

// PositionOf maps an absolute date to a pixel offset from the span start.
// Dates outside the span produce out-of-range offsets rather than errors;
// clipping is the renderer's job.
func PositionOf(span Span, date time.Time, cellWidthPx int) int {
	return domain.DaysBetween(span.Start, date) * cellWidthPx
}
