package timeline

import "github.com/mgersten/taskline/internal/domain"

// BuildBar computes the geometry for a single task bar.
//
// Width is the pixel distance between the item's start and end positions,
// floored at minBarWidthPx: a zero-length or inverted range still renders
// a visible, clickable marker. Fill width uses the clamped progress
// percentage, so out-of-range values never produce fill outside the bar.
func BuildBar(span Span, item domain.ScheduleItem, cellWidthPx, minBarWidthPx int) BarGeometry {
	left := PositionOf(span, item.Start, cellWidthPx)
	width := PositionOf(span, item.End, cellWidthPx) - left
	if width < minBarWidthPx {
		width = minBarWidthPx
	}

	fill := width * domain.ClampPct(item.ProgressPct) / 100

	return BarGeometry{
		ItemID:        item.ID,
		Name:          item.Name,
		LeftPx:        left,
		WidthPx:       width,
		FillPx:        fill,
		Critical:      item.Critical,
		DependencyIDs: item.DependencyIDs,
	}
}
