package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	for _, s := range BoardColumns {
		assert.True(t, ValidStatus(s), "status=%s", s)
	}
	assert.False(t, ValidStatus("ARCHIVED"))
	assert.False(t, ValidStatus(""))
}

func TestWithStatus_DoesNotMutateReceiver(t *testing.T) {
	c := KanbanCard{ID: "c1", Title: "Write report", Status: StatusNotStarted}
	moved := c.WithStatus(StatusInProgress)

	assert.Equal(t, StatusInProgress, moved.Status)
	assert.Equal(t, StatusNotStarted, c.Status, "original card must be unchanged")
}

func TestGroupByStatus_AllColumnsPresent(t *testing.T) {
	groups := GroupByStatus(nil)
	require.Len(t, groups, len(BoardColumns))
	for _, s := range BoardColumns {
		_, ok := groups[s]
		assert.True(t, ok, "column %s missing", s)
	}
}

func TestGroupByStatus_PreservesOrderWithinColumn(t *testing.T) {
	cards := []KanbanCard{
		{ID: "a", Status: StatusInProgress},
		{ID: "b", Status: StatusNotStarted},
		{ID: "c", Status: StatusInProgress},
	}
	groups := GroupByStatus(cards)

	require.Len(t, groups[StatusInProgress], 2)
	assert.Equal(t, "a", groups[StatusInProgress][0].ID)
	assert.Equal(t, "c", groups[StatusInProgress][1].ID)
}

func TestGroupByStatus_DropsUnknownStatus(t *testing.T) {
	cards := []KanbanCard{{ID: "x", Status: "BOGUS"}}
	groups := GroupByStatus(cards)
	for _, s := range BoardColumns {
		assert.Empty(t, groups[s])
	}
}

func TestClampPct(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 0}, {0, 0}, {50, 50}, {100, 100}, {150, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampPct(tc.in), "in=%d", tc.in)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
