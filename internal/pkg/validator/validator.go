package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Badge UID: 2-64 chars, alphanumeric plus colon, underscore, hyphen.
// Matches what RFID readers emit for tag UIDs (hex bytes, often
// colon-separated).
var badgeUIDRegex = regexp.MustCompile(`^[A-Za-z0-9:_-]{2,64}$`)

func IsValidBadgeUID(uid string) bool {
	return badgeUIDRegex.MatchString(uid)
}

// IsValidDate parses a YYYY-MM-DD calendar date.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClockTime checks an HH:MM wall-clock string.
func IsValidClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

var utcOffsetRegex = regexp.MustCompile(`^[+-]([01][0-9]|2[0-3])(:[0-5][0-9])?$`)

// IsValidUTCOffset checks a ±HH:MM fixed offset string. The minutes part is
// optional ("+05" is accepted alongside "+05:00").
func IsValidUTCOffset(s string) bool {
	return utcOffsetRegex.MatchString(s)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// EscapeLike escapes SQL LIKE metacharacters so a user-supplied search term
// cannot inject wildcards.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
