package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a month/day pair does not describe a real
// calendar date.
var ErrInvalidDate = errors.New("invalid month/day")

// Occurrence is the next time an annual event (such as a birthday) comes
// around, seen from a reference date.
type Occurrence struct {
	Date      time.Time
	DaysUntil int
}

// NextOccurrence projects an annually recurring month/day onto the next
// concrete date on or after today. If this year's occurrence has already
// passed, the occurrence in the following year is returned. DaysUntil is never
// negative.
//
// February 29 is a valid input; in a non-leap candidate year the occurrence is
// clamped to February 28.
//
// A month/day pair that is not a real date fails with ErrInvalidDate.
func NextOccurrence(month, day int, today time.Time) (Occurrence, error) {
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(2000, time.Month(month)) {
		// Year 2000 is a leap year, so 2-29 passes validation.
		return Occurrence{}, fmt.Errorf("%w: %d-%d", ErrInvalidDate, month, day)
	}
	today = Midnight(today)
	candidate := occurrenceIn(today.Year(), month, day, today.Location())
	if candidate.Before(today) {
		candidate = occurrenceIn(today.Year()+1, month, day, today.Location())
	}
	return Occurrence{Date: candidate, DaysUntil: DaysBetween(today, candidate)}, nil
}

// occurrenceIn builds the event date within one specific year, clamping the
// day to the length of the month in that year.
func occurrenceIn(year, month, day int, loc *time.Location) time.Time {
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// daysInMonth returns the number of days of a month in a specific year. Day
// zero of the following month is the last day of the requested one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
