package settings

import (
	"github.com/taplog/attendance-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	WorkStart      *string `json:"work_start,omitempty"`
	WorkEnd        *string `json:"work_end,omitempty"`
	GraceMinutes   *int    `json:"grace_minutes,omitempty"`
	AllowedAbsent  *int    `json:"allowed_absent,omitempty"`
	AllowedLeave   *int    `json:"allowed_leave,omitempty"`
	AllowedHalfDay *int    `json:"allowed_half_day,omitempty"`
	TimezoneOffset *string `json:"timezone_offset,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.WorkStart != nil && !validator.IsValidClockTime(*r.WorkStart) {
		errs = append(errs, validator.ValidationError{Field: "work_start", Message: "must be HH:MM"})
	}
	if r.WorkEnd != nil && !validator.IsValidClockTime(*r.WorkEnd) {
		errs = append(errs, validator.ValidationError{Field: "work_end", Message: "must be HH:MM"})
	}
	if r.GraceMinutes != nil && (*r.GraceMinutes < 0 || *r.GraceMinutes > 240) {
		errs = append(errs, validator.ValidationError{Field: "grace_minutes", Message: "must be 0-240"})
	}
	if r.AllowedAbsent != nil && *r.AllowedAbsent < 1 {
		errs = append(errs, validator.ValidationError{Field: "allowed_absent", Message: "must be >= 1"})
	}
	if r.AllowedLeave != nil && *r.AllowedLeave < 1 {
		errs = append(errs, validator.ValidationError{Field: "allowed_leave", Message: "must be >= 1"})
	}
	if r.AllowedHalfDay != nil && *r.AllowedHalfDay < 1 {
		errs = append(errs, validator.ValidationError{Field: "allowed_half_day", Message: "must be >= 1"})
	}
	if r.TimezoneOffset != nil && !validator.IsValidUTCOffset(*r.TimezoneOffset) {
		errs = append(errs, validator.ValidationError{Field: "timezone_offset", Message: "must be ±HH:MM"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	WorkStart      string `json:"work_start"`
	WorkEnd        string `json:"work_end"`
	GraceMinutes   int    `json:"grace_minutes"`
	AllowedAbsent  int    `json:"allowed_absent"`
	AllowedLeave   int    `json:"allowed_leave"`
	AllowedHalfDay int    `json:"allowed_half_day"`
	TimezoneOffset string `json:"timezone_offset"`
}

func ToResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		WorkStart:      s.WorkStart,
		WorkEnd:        s.WorkEnd,
		GraceMinutes:   s.GraceMinutes,
		AllowedAbsent:  s.AllowedAbsent,
		AllowedLeave:   s.AllowedLeave,
		AllowedHalfDay: s.AllowedHalfDay,
		TimezoneOffset: s.TimezoneOffset,
	}
}
