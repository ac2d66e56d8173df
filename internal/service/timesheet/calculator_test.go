package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
)

func day(hour, min, sec int) time.Time {
	return time.Date(2025, 3, 10, hour, min, sec, 0, time.UTC)
}

func ev(eventType string, ts time.Time) attendance.Event {
	return attendance.Event{EventType: eventType, Timestamp: ts, Date: attendance.DateOf(ts)}
}

func TestWorkedHoursClosed(t *testing.T) {
	cases := []struct {
		name   string
		events []attendance.Event
		want   float64
	}{
		{
			name: "two closed sessions",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventOut, day(12, 0, 0)),
				ev(attendance.EventIn, day(13, 0, 0)),
				ev(attendance.EventOut, day(17, 0, 0)),
			},
			want: 8.00,
		},
		{
			name: "trailing unmatched IN contributes nothing",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventOut, day(12, 0, 0)),
				ev(attendance.EventIn, day(13, 0, 0)),
				ev(attendance.EventOut, day(17, 0, 0)),
				ev(attendance.EventIn, day(18, 0, 0)),
			},
			want: 8.00,
		},
		{
			name: "break deduction",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventBreakStart, day(12, 0, 0)),
				ev(attendance.EventBreakEnd, day(12, 30, 0)),
				ev(attendance.EventOut, day(17, 0, 0)),
			},
			want: 7.50,
		},
		{
			name: "unmatched OUT ignored",
			events: []attendance.Event{
				ev(attendance.EventOut, day(8, 0, 0)),
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventOut, day(10, 0, 0)),
			},
			want: 1.00,
		},
		{
			name: "unmatched trailing BREAK_START deducts nothing",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventBreakStart, day(12, 0, 0)),
				ev(attendance.EventOut, day(17, 0, 0)),
			},
			want: 8.00,
		},
		{
			name: "breaks never push hours below zero",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
				ev(attendance.EventOut, day(9, 30, 0)),
				ev(attendance.EventBreakStart, day(10, 0, 0)),
				ev(attendance.EventBreakEnd, day(12, 0, 0)),
			},
			want: 0.00,
		},
		{
			name:   "no events",
			events: nil,
			want:   0.00,
		},
		{
			name: "only an open IN",
			events: []attendance.Event{
				ev(attendance.EventIn, day(9, 0, 0)),
			},
			want: 0.00,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkedHoursClosed(c.events))
		})
	}
}

func TestWorkedHoursLive_OpenSessionCountsToNow(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventIn, day(9, 0, 0)),
		ev(attendance.EventOut, day(12, 0, 0)),
		ev(attendance.EventIn, day(13, 0, 0)),
	}
	now := day(15, 30, 0)
	assert.Equal(t, 5.50, WorkedHoursLive(events, now))

	// Closed policy over the same events stays at the closed session only.
	assert.Equal(t, 3.00, WorkedHoursClosed(events))
}

func TestWorkedHoursLive_RoundsToTwoDecimals(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventIn, day(9, 0, 0)),
	}
	now := day(9, 20, 0) // 1/3 hour
	assert.Equal(t, 0.33, WorkedHoursLive(events, now))
}

func TestIsLate_GraceBoundary(t *testing.T) {
	// workStart 09:00, grace 15, offset +05:00: the cutoff is local
	// 09:15:00, i.e. UTC 04:15:00, and the comparison is strict.
	cases := []struct {
		name string
		in   time.Time
		want bool
	}{
		{"just inside grace", day(4, 14, 59), false},
		{"exactly at cutoff", day(4, 15, 0), false},
		{"one second past cutoff", day(4, 15, 1), true},
		{"well before start", day(3, 0, 0), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := []attendance.Event{ev(attendance.EventIn, c.in)}
			late, err := IsLate(events, "09:00", 15, "+05:00")
			require.NoError(t, err)
			assert.Equal(t, c.want, late)
		})
	}
}

func TestIsLate_UsesEarliestIn(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventIn, day(4, 0, 0)), // on time
		ev(attendance.EventOut, day(8, 0, 0)),
		ev(attendance.EventIn, day(9, 0, 0)), // would be late on its own
	}
	late, err := IsLate(events, "09:00", 15, "+05:00")
	require.NoError(t, err)
	assert.False(t, late)
}

func TestIsLate_NegativeOffset(t *testing.T) {
	// Offset -08:00, start 09:00, grace 0: cutoff is UTC 17:00.
	late, err := IsLate([]attendance.Event{ev(attendance.EventIn, day(17, 0, 1))}, "09:00", 0, "-08:00")
	require.NoError(t, err)
	assert.True(t, late)

	late, err = IsLate([]attendance.Event{ev(attendance.EventIn, day(16, 59, 59))}, "09:00", 0, "-08:00")
	require.NoError(t, err)
	assert.False(t, late)
}

func TestIsLate_OffsetWithoutMinutes(t *testing.T) {
	late, err := IsLate([]attendance.Event{ev(attendance.EventIn, day(4, 30, 0))}, "09:00", 15, "+05")
	require.NoError(t, err)
	assert.True(t, late)
}

func TestIsLate_NoInEvents(t *testing.T) {
	events := []attendance.Event{ev(attendance.EventOut, day(17, 0, 0))}
	late, err := IsLate(events, "09:00", 15, "+05:00")
	require.NoError(t, err)
	assert.False(t, late)
}

func TestIsLate_MalformedInputs(t *testing.T) {
	events := []attendance.Event{ev(attendance.EventIn, day(10, 0, 0))}

	_, err := IsLate(events, "09:00", 15, "05:00")
	assert.Error(t, err)

	_, err = IsLate(events, "late-ish", 15, "+05:00")
	assert.Error(t, err)

	_, err = IsLate(events, "09:00", 15, "+99:00")
	assert.Error(t, err)
}

func TestParseUTCOffset(t *testing.T) {
	loc, err := ParseUTCOffset("-11:30")
	require.NoError(t, err)
	_, secs := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -(11*3600 + 30*60), secs)
}

func TestWorkingDays_ClipsAtToday(t *testing.T) {
	// March 2025 starts on a Saturday; 2025-03-10 is the 6th weekday.
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	days := WorkingDays(2025, time.March, today)
	require.Len(t, days, 6)
	assert.Equal(t, "2025-03-03", days[0].Format("2006-01-02"))
	assert.Equal(t, "2025-03-10", days[len(days)-1].Format("2006-01-02"))

	// A "today" after the month includes every weekday.
	full := WorkingDays(2025, time.March, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, full, 21)

	// A "today" before the month yields none.
	none := WorkingDays(2025, time.March, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, none)
}

func TestWeekdays(t *testing.T) {
	assert.Equal(t, 21, Weekdays(2025, time.March))
	assert.Equal(t, 20, Weekdays(2025, time.February))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, time.February)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)
}
