package attendance

import (
	"github.com/taplog/attendance-backend-go/internal/pkg/validator"
)

type ScanRequest struct {
	UID string `json:"uid"`
}

func (r ScanRequest) Validate() error {
	if !validator.IsValidBadgeUID(r.UID) {
		return validator.ValidationErrors{{Field: "uid", Message: "uid must be 2-64 chars from [A-Za-z0-9:_-]"}}
	}
	return nil
}

// ScanResponse echoes the recorded (or debounced) event plus the enrichment
// block: today's live hours, the event immediately before this tap, and the
// lateness flag.
type ScanResponse struct {
	Success             bool    `json:"success"`
	Event               string  `json:"event"`
	UID                 string  `json:"uid"`
	Name                string  `json:"name"`
	AttendanceID        int64   `json:"attendance_id"`
	AttendanceTimestamp string  `json:"attendance_timestamp"`
	TodayHours          float64 `json:"today_hours"`
	LastEventType       *string `json:"last_event_type,omitempty"`
	LastEventTime       *string `json:"last_event_time,omitempty"`
	IsLate              bool    `json:"is_late"`
}

type BreakRequest struct {
	UID string `json:"uid"`
}

func (r BreakRequest) Validate() error {
	if !validator.IsValidBadgeUID(r.UID) {
		return validator.ValidationErrors{{Field: "uid", Message: "invalid uid"}}
	}
	return nil
}

type BreakResponse struct {
	Success      bool   `json:"success"`
	Event        string `json:"event"`
	UID          string `json:"uid"`
	Name         string `json:"name"`
	AttendanceID int64  `json:"attendance_id"`
}

type FeedItem struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	RFIDUID    string `json:"rfid_uid"`
	EventType  string `json:"event_type"`
	Timestamp  string `json:"timestamp"`
	Date       string `json:"date"`
	Name       string `json:"name"`
}

type PurgeResponse struct {
	Success       bool  `json:"success"`
	EmployeeID    int64 `json:"employee_id"`
	EventsDeleted int64 `json:"events_deleted"`
}
