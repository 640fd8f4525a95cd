package util

import "time"

// Date returns the given calendar day at UTC midnight.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates a timestamp to its calendar day (UTC midnight).
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthStart returns the first day of the given month.
func MonthStart(year, month int) time.Time {
	return Date(year, month, 1)
}

// MonthEnd returns the last day of the given month.
func MonthEnd(year, month int) time.Time {
	return Date(year, month, 1).AddDate(0, 1, -1)
}

// PrevMonth returns the year and month immediately before the given one.
func PrevMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// MonthIndex maps a year+month to a single comparable integer.
// Used to order billing months without juggling two fields.
func MonthIndex(year, month int) int {
	return year*12 + (month - 1)
}

// MonthIndexOf is MonthIndex for a date value.
func MonthIndexOf(t time.Time) int {
	return MonthIndex(t.Year(), int(t.Month()))
}

// ValidMonth reports whether month is in 1..12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return MonthEnd(year, month).Day()
}
