package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDaysBetweenIgnoresTimeOfDay checks that only the calendar date matters,
// not the clock time of either input.
func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
}

// TestDaysBetweenSameDay checks that two timestamps on the same day are zero
// days apart.
func TestDaysBetweenSameDay(t *testing.T) {
	a := time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(b, a))
}

// TestDaysBetweenAcrossMonths checks a span that crosses month and year
// boundaries.
func TestDaysBetweenAcrossMonths(t *testing.T) {
	a := time.Date(2025, time.December, 28, 12, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.January, 4, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysBetween(a, b))
}

// TestDaysBetweenLeapDay checks that February 29 is counted in a leap year.
func TestDaysBetweenLeapDay(t *testing.T) {
	a := time.Date(2028, time.February, 28, 0, 0, 0, 0, time.UTC)
	b := time.Date(2028, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, b))
}

// TestMidnight checks that truncation keeps the date and the location.
func TestMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := Midnight(time.Date(2026, time.July, 15, 18, 30, 45, 99, loc))
	assert.Equal(t, time.Date(2026, time.July, 15, 0, 0, 0, 0, loc), got)
}
