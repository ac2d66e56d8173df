package settings

import (
	"time"
)

// Hardcoded defaults used both when the singleton row is created lazily and
// when a reader cannot reach it at all. Consumers must never assume the row
// exists.
const (
	DefaultWorkStart      = "09:00"
	DefaultWorkEnd        = "17:00"
	DefaultGraceMinutes   = 15
	DefaultTimezoneOffset = "+05:00"
	DefaultAllowedAbsent  = 5
	DefaultAllowedLeave   = 10
	DefaultAllowedHalfDay = 5
)

// Settings is the singleton attendance rule record.
type Settings struct {
	ID             int64
	WorkStart      string // HH:MM local
	WorkEnd        string // HH:MM local
	GraceMinutes   int
	AllowedAbsent  int
	AllowedLeave   int
	AllowedHalfDay int
	TimezoneOffset string // ±HH:MM fixed offset, not a tz database name
	UpdatedAt      time.Time
}

// Defaults returns the hardcoded fallback record.
func Defaults() Settings {
	return Settings{
		ID:             1,
		WorkStart:      DefaultWorkStart,
		WorkEnd:        DefaultWorkEnd,
		GraceMinutes:   DefaultGraceMinutes,
		AllowedAbsent:  DefaultAllowedAbsent,
		AllowedLeave:   DefaultAllowedLeave,
		AllowedHalfDay: DefaultAllowedHalfDay,
		TimezoneOffset: DefaultTimezoneOffset,
	}
}
