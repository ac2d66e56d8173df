package attendance

import (
	"time"
)

// Event types recorded on the ledger. BREAK_* events never flip the IN/OUT
// toggle; they only carve time out of an open work session.
const (
	EventIn         = "IN"
	EventOut        = "OUT"
	EventBreakStart = "BREAK_START"
	EventBreakEnd   = "BREAK_END"
)

// Event is one row on the append-only attendance ledger. Rows are immutable
// once written; Date is the UTC calendar day fixed at write time and is
// never recomputed, even when a shift crosses UTC midnight.
type Event struct {
	ID         int64
	EmployeeID int64
	RFIDUID    string
	EventType  string
	Timestamp  time.Time
	Date       string // YYYY-MM-DD
	Notes      *string

	// Joined for reports
	EmployeeName string
}

// DateOf returns the UTC calendar day an event written at t belongs to.
func DateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
