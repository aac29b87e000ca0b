package period

import (
	"fmt"
	"time"
)

// WeekKey returns the ISO-8601 week key for t, e.g. "2025-W44".
// The ISO week year can differ from the calendar year around January 1st,
// so both parts come from ISOWeek. Always computed in UTC.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the month key for t, e.g. "2025-10". Always UTC.
func MonthKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%d-%02d", u.Year(), int(u.Month()))
}

// StartOfWeek returns midnight UTC of the Monday of t's ISO week.
func StartOfWeek(t time.Time) time.Time {
	u := t.UTC()
	weekday := int(u.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns midnight UTC of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns midnight UTC of the first day of the month after t.
func FirstOfNextMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// NextMonthWeekKey returns the week key of the first week of the month after t.
// Used when a reversed task is reissued.
func NextMonthWeekKey(t time.Time) string {
	return WeekKey(FirstOfNextMonth(t))
}

// SameISOWeek reports whether a and b fall in the same ISO week (UTC).
func SameISOWeek(a, b time.Time) bool {
	return WeekKey(a) == WeekKey(b)
}

// SameMonth reports whether a and b fall in the same calendar month (UTC).
func SameMonth(a, b time.Time) bool {
	return MonthKey(a) == MonthKey(b)
}
