package domain

import "time"

// ScheduleItem is one row on the Gantt timeline. Start/End come from the
// upstream scheduler and are not guaranteed well-formed: End may precede
// Start for malformed data, and ProgressPct may fall outside [0,100].
// Consumers clamp and degrade rather than reject.
type ScheduleItem struct {
	ID          string
	Name        string
	Start       time.Time
	End         time.Time
	ProgressPct int

	// Critical is the upstream scheduler's critical-path flag. The client
	// renders it and never recomputes it.
	Critical bool

	// DependencyIDs lists predecessor item ids, informational only.
	// Layout is purely date-driven.
	DependencyIDs []string
}

// ClampPct clamps a progress percentage into [0,100].
func ClampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DayOf truncates t to midnight UTC. All calendar-day arithmetic in the
// timeline runs on day-normalized instants so wall-clock offsets and DST
// cannot skew column math.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when
// b is before a).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}
