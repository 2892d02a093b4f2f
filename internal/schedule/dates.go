// Package schedule computes the due status of contacts: who is overdue for
// outreach, who is coming up, and who is on track. All functions are pure and
// free of I/O, so they can be called concurrently for independent contacts.
// Callers that classify a whole listing must capture "today" once and pass the
// same instant to every call, so that all contacts in one batch are judged
// against the same day.
package schedule

import "time"

// millisPerDay is the divisor for turning a midnight-to-midnight span into
// whole days.
const millisPerDay = 24 * 60 * 60 * 1000

// Midnight truncates a timestamp to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b. Both inputs are
// truncated to midnight before subtracting, and the difference is
// floor-divided into days. The result is negative if b lies before a.
//
// Across daylight-saving transitions a "day" can be 23 or 25 hours long; the
// floor division absorbs that drift.
func DaysBetween(a, b time.Time) int {
	millis := Midnight(b).UnixMilli() - Midnight(a).UnixMilli()
	days := millis / millisPerDay
	if millis < 0 && millis%millisPerDay != 0 {
		days--
	}
	return int(days)
}
