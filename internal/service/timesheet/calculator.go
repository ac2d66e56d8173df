// Package timesheet holds the pure derivation functions of the attendance
// ledger: net worked hours from an event sequence, and lateness against the
// configured work start. Everything here is deterministic and storage-free;
// both the scan path and the report aggregations call into it.
package timesheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
)

// WorkedHoursClosed computes net worked hours for one employee-day counting
// only closed IN/OUT sessions. A trailing unmatched IN contributes nothing:
// a forgotten clock-out on a past day must not extrapolate to "now", and a
// shift is never assumed to continue into the next calendar day. Used by all
// historical report aggregation.
func WorkedHoursClosed(events []attendance.Event) float64 {
	return workedHours(events, nil)
}

// WorkedHoursLive is the "today" variant used to enrich a scan response: an
// open work session counts up to now. Closed-break deduction is identical.
func WorkedHoursLive(events []attendance.Event, now time.Time) float64 {
	return workedHours(events, &now)
}

// workedHours walks events in ascending timestamp order with two open
// cursors, one for the work session and one for the break. An OUT without a
// preceding open IN is ignored, as is a BREAK_END without an open break and
// a trailing unmatched BREAK_START.
func workedHours(events []attendance.Event, openUntil *time.Time) float64 {
	var workSecs, breakSecs float64
	var currentIn, currentBreak *time.Time

	for i := range events {
		ts := events[i].Timestamp.UTC()
		switch events[i].EventType {
		case attendance.EventIn:
			t := ts
			currentIn = &t
		case attendance.EventOut:
			if currentIn != nil {
				workSecs += ts.Sub(*currentIn).Seconds()
				currentIn = nil
			}
		case attendance.EventBreakStart:
			t := ts
			currentBreak = &t
		case attendance.EventBreakEnd:
			if currentBreak != nil {
				breakSecs += ts.Sub(*currentBreak).Seconds()
				currentBreak = nil
			}
		}
	}

	if currentIn != nil && openUntil != nil && openUntil.After(*currentIn) {
		workSecs += openUntil.Sub(*currentIn).Seconds()
	}

	return Round2(math.Max(0, workSecs-breakSecs) / 3600)
}

// IsLate reports whether the earliest IN of an employee-day landed after
// workStart plus the grace window, evaluated in the fixed utcOffset
// ("±HH:MM", minutes optional). No IN events means not late. The error
// return lets callers degrade to false when settings are malformed; a scan
// must never fail because lateness could not be evaluated.
func IsLate(events []attendance.Event, workStart string, graceMinutes int, utcOffset string) (bool, error) {
	var firstIn *time.Time
	for i := range events {
		if events[i].EventType != attendance.EventIn {
			continue
		}
		ts := events[i].Timestamp.UTC()
		if firstIn == nil || ts.Before(*firstIn) {
			firstIn = &ts
		}
	}
	if firstIn == nil {
		return false, nil
	}

	loc, err := ParseUTCOffset(utcOffset)
	if err != nil {
		return false, err
	}
	startHour, startMin, err := parseClockTime(workStart)
	if err != nil {
		return false, err
	}

	localIn := firstIn.In(loc)
	cutoff := time.Date(
		localIn.Year(), localIn.Month(), localIn.Day(),
		startHour, startMin, 0, 0,
		loc,
	).Add(time.Duration(graceMinutes) * time.Minute)

	return localIn.After(cutoff), nil
}

// ParseUTCOffset turns a "±HH:MM" (or "±HH") string into a fixed-offset
// location. This is deliberately not a timezone-database lookup; the system
// operates on one plain offset.
func ParseUTCOffset(offset string) (*time.Location, error) {
	if len(offset) < 2 || (offset[0] != '+' && offset[0] != '-') {
		return nil, fmt.Errorf("malformed utc offset %q", offset)
	}
	sign := 1
	if offset[0] == '-' {
		sign = -1
	}

	parts := strings.Split(offset[1:], ":")
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return nil, fmt.Errorf("malformed utc offset %q", offset)
	}
	mins := 0
	if len(parts) > 1 {
		mins, err = strconv.Atoi(parts[1])
		if err != nil || mins < 0 || mins > 59 {
			return nil, fmt.Errorf("malformed utc offset %q", offset)
		}
	}

	secs := sign * (hours*3600 + mins*60)
	return time.FixedZone(offset, secs), nil
}

func parseClockTime(s string) (hour, min int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("malformed clock time %q", s)
	}
	return hour, min, nil
}

// Round2 rounds to two decimals (hours).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal (percentage rates and day counts).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
