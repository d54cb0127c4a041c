package timeline

import "time"

// BuildMonthBands walks calendar months from the span's start month
// through the span end and emits one header band per month. A month only
// partially inside the span still gets its full label; its band is
// truncated to the chart edge instead of overflowing.
func BuildMonthBands(span Span, cellWidthPx int) []MonthBand {
	chartWidth := span.TotalDays * cellWidthPx

	var bands []MonthBand
	cursor := time.Date(span.Start.Year(), span.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(span.End) {
		monthEnd := cursor.AddDate(0, 1, -1)

		visibleStart := cursor
		if visibleStart.Before(span.Start) {
			visibleStart = span.Start
		}
		visibleEnd := monthEnd
		if visibleEnd.After(span.End) {
			visibleEnd = span.End
		}

		offset := PositionOf(span, visibleStart, cellWidthPx)
		width := (daysInclusive(visibleStart, visibleEnd)) * cellWidthPx
		if offset+width > chartWidth {
			width = chartWidth - offset
		}

		bands = append(bands, MonthBand{
			Label:    cursor.Format("January 2006"),
			OffsetPx: offset,
			WidthPx:  width,
		})

		cursor = cursor.AddDate(0, 1, 0)
	}
	return bands
}

// BuildDayColumns emits one header cell per visible day, flagging
// weekends for the renderer.
func BuildDayColumns(span Span, cellWidthPx int) []DayColumn {
	cols := make([]DayColumn, 0, span.TotalDays)
	for i := 0; i < span.TotalDays; i++ {
		date := span.Start.AddDate(0, 0, i)
		wd := date.Weekday()
		cols = append(cols, DayColumn{
			Date:     date,
			Label:    date.Format("2"),
			OffsetPx: i * cellWidthPx,
			Weekend:  wd == time.Saturday || wd == time.Sunday,
		})
	}
	return cols
}

func daysInclusive(a, b time.Time) int {
	d := int(b.Sub(a)/(24*time.Hour)) + 1
	if d < 0 {
		return 0
	}
	return d
}
