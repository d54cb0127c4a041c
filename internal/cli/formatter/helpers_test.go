package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcd…", PadRight("abcdef", 5))
	assert.Equal(t, "", PadRight("abc", 0))
	assert.Equal(t, "…", PadRight("abc", 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ab", Truncate("ab", 5))
	assert.Equal(t, "abcd…", Truncate("abcdef", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
}

func TestShortDate(t *testing.T) {
	d := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Apr 02", ShortDate(d))
}
