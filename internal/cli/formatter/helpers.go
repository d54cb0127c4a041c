package formatter

import (
	"strings"
	"time"
)

// PadRight pads s with spaces to width, truncating with an ellipsis when
// it is too long.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// Truncate cuts s to width runes with an ellipsis, without padding.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// ShortDate formats a date like "Apr 02".
func ShortDate(t time.Time) string {
	return t.Format("Jan 02")
}
