package override

import (
	"time"
)

// Absence override statuses. WORK_FROM_HOME, BUSINESS_TRIP and
// SUPPLIER_VISIT reclassify an absent working day as worked-elsewhere;
// LEAVE and HALF_DAY stay visible as separate fractional categories.
const (
	StatusLeave         = "LEAVE"
	StatusBusinessTrip  = "BUSINESS_TRIP"
	StatusWorkFromHome  = "WORK_FROM_HOME"
	StatusHalfDay       = "HALF_DAY"
	StatusSupplierVisit = "SUPPLIER_VISIT"
)

var ValidStatuses = []string{
	StatusLeave,
	StatusBusinessTrip,
	StatusWorkFromHome,
	StatusHalfDay,
	StatusSupplierVisit,
}

// Override is one admin-entered reclassification of an otherwise-absent
// working day. (employee_id, date) is unique; writes upsert.
type Override struct {
	ID         int64
	EmployeeID int64
	Date       string // YYYY-MM-DD
	Status     string
	Notes      *string
	CreatedBy  int64
	CreatedAt  time.Time

	// Joined for responses
	EmployeeName *string
}
