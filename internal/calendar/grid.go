package calendar

import "time"

// MonthGridSize is the fixed number of cells in a month grid: six full
// Monday-first weeks, padded with days from the adjacent months.
const MonthGridSize = 42

// MonthDays returns the 42 dates of the month grid for the given year and
// month: leading days of the previous month so the 1st lands on its weekday
// column, the whole month, then trailing days of the next month. Month
// length is never special-cased; date arithmetic does the rollover.
func MonthDays(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)

	offset := int(first.Weekday())
	if offset == 0 {
		offset = 7
	}

	days := make([]time.Time, 0, MonthGridSize)
	cur := first.AddDate(0, 0, -(offset - 1))
	for i := 0; i < MonthGridSize; i++ {
		days = append(days, cur)
		cur = cur.AddDate(0, 0, 1)
	}

	return days
}

// YearMonths returns the first day of each of the 12 months of year.
func YearMonths(year int) []time.Time {
	months := make([]time.Time, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, time.Date(year, m, 1, 0, 0, 0, 0, time.Local))
	}

	return months
}

// TimeSlot is a fixed one-hour subdivision of a day.
type TimeSlot struct {
	Hour   int
	Minute int
}

// TimeSlots returns the 24 hourly slots of a day, minute fixed at 0. Day
// and week views consume the same slot set.
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, 24)
	for h := 0; h < 24; h++ {
		slots = append(slots, TimeSlot{Hour: h})
	}

	return slots
}
