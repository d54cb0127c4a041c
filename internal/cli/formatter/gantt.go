package formatter

import (
	"strings"

	"github.com/mgersten/taskline/internal/timeline"
)

// Gantt rendering consumes the layout engine's geometry with pixels
// interpreted as terminal cells. All clipping of out-of-range geometry
// happens here; the engine deliberately leaves visibility policy to the
// renderer.

// RenderMonthBands renders the month header row of a timeline layout.
func RenderMonthBands(layout timeline.Layout) string {
	var b strings.Builder
	cursor := 0
	for _, band := range layout.MonthBands {
		if band.OffsetPx > cursor {
			b.WriteString(strings.Repeat(" ", band.OffsetPx-cursor))
			cursor = band.OffsetPx
		}
		if band.WidthPx <= 0 {
			continue
		}
		b.WriteString(StyleHeader.Render(PadRight(band.Label, band.WidthPx)))
		cursor += band.WidthPx
	}
	return b.String()
}

// RenderDayColumns renders the day header row, dimming weekends.
func RenderDayColumns(layout timeline.Layout) string {
	var b strings.Builder
	for _, col := range layout.DayColumns {
		label := PadRight(col.Label, layout.CellWidthPx)
		if col.Weekend {
			b.WriteString(StyleDim.Render(label))
		} else {
			b.WriteString(StyleFg.Render(label))
		}
	}
	return b.String()
}

// RenderBar renders one task bar row, clipped to the chart width.
// The filled segment shows progress; critical-path bars render red,
// the rest blue.
func RenderBar(bar timeline.BarGeometry, chartWidth int) string {
	left, width, fill := bar.LeftPx, bar.WidthPx, bar.FillPx

	// Clip to [0, chartWidth).
	if left < 0 {
		width += left
		fill += left
		left = 0
	}
	if fill < 0 {
		fill = 0
	}
	if left >= chartWidth || width <= 0 {
		return strings.Repeat(" ", chartWidth)
	}
	if left+width > chartWidth {
		width = chartWidth - left
	}
	if fill > width {
		fill = width
	}

	style := StyleBlue
	if bar.Critical {
		style = StyleRed
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", left))
	b.WriteString(style.Render(strings.Repeat(filledBlock, fill) + strings.Repeat(emptyBlock, width-fill)))
	if trail := chartWidth - left - width; trail > 0 {
		b.WriteString(strings.Repeat(" ", trail))
	}
	return b.String()
}

// DependencyNote renders an informational predecessor annotation such as
// "after s1, s2", or empty when the item has no dependencies.
func DependencyNote(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return Dim("after " + strings.Join(ids, ", "))
}
