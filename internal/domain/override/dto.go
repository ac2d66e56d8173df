package override

import (
	"github.com/taplog/attendance-backend-go/internal/pkg/validator"
)

type UpsertOverrideRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

func (r UpsertOverrideRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if !validator.IsInSlice(r.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of LEAVE, BUSINESS_TRIP, WORK_FROM_HOME, HALF_DAY, SUPPLIER_VISIT"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedBy    int64   `json:"created_by"`
	CreatedAt    string  `json:"created_at"`
}

func ToResponse(o Override) OverrideResponse {
	return OverrideResponse{
		ID:           o.ID,
		EmployeeID:   o.EmployeeID,
		EmployeeName: o.EmployeeName,
		Date:         o.Date,
		Status:       o.Status,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
