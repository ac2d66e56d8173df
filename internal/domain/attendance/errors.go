package attendance

import "errors"

// Attendance domain errors
var (
	ErrEventNotFound    = errors.New("attendance event not found")
	ErrInvalidEventType = errors.New("invalid attendance event type")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("month must be 1-12")
)
