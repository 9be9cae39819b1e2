// Package dateutil provides calendar-date helpers shared by the analytics
// engine and the transaction service. All values are calendar dates in UTC
// with the clock component dropped.
package dateutil

import (
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month label format used by monthly aggregates.
const MonthLayout = "2006-01"

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock component of t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// FirstOfMonth returns the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// LastOfMonth returns the last day of t's month.
func LastOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()))
}

// StartOfYear returns January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return Date(t.Year(), time.January, 1)
}

// PreviousMonthRange returns the first and last day of the calendar month
// preceding t's month.
func PreviousMonthRange(t time.Time) (time.Time, time.Time) {
	year, month := t.Year(), t.Month()-1
	if month < time.January {
		month = time.December
		year--
	}
	return Date(year, month, 1), Date(year, month, DaysInMonth(year, month))
}

// DaysBetweenInclusive counts calendar days from start to end, both included.
// It returns 0 when end is before start.
func DaysBetweenInclusive(start, end time.Time) int {
	s, e := Truncate(start), Truncate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthLabel renders t's month as YYYY-MM.
func MonthLabel(t time.Time) string {
	return t.Format(MonthLayout)
}
