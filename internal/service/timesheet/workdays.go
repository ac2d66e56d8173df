package timesheet

import (
	"time"
)

// WorkingDays enumerates the Mon-Fri calendar days of a month, clipped so no
// day after "today" is included. Future days must never be counted as
// absences.
func WorkingDays(year int, month time.Month, today time.Time) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.After(todayDate) {
			break
		}
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// Weekdays counts every Mon-Fri day of a month, unclipped. Used by the
// monthly report's total_working_days figure.
func Weekdays(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// MonthBounds returns the first and last calendar dates of a month as
// YYYY-MM-DD strings, for range queries against the ledger.
func MonthBounds(year int, month time.Month) (start, end string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
