// Package calendar holds the pure time-grid functions: day/week/month
// boundaries, grid cell generation, slot placement, conflict detection and
// the upcoming-items selector. Nothing here performs I/O or mutates its
// inputs.
package calendar

import "time"

// StartOfDay floors t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay ceils t to 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek returns the Monday of t's week, at midnight. Sunday counts as
// the last day of the week, not the first.
func StartOfWeek(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	return StartOfDay(t.AddDate(0, 0, -(day - 1)))
}

// EndOfWeek returns the Sunday of t's week, ceiled to end of day.
func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

// StartOfMonth returns the first instant of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	return EndOfDay(StartOfMonth(t).AddDate(0, 1, -1))
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// DurationHours returns end-start in hours, fractional hours included.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}
