package response

import (
	"errors"
	"net/http"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/auth"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/domain/user"
	"github.com/taplog/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Unknown errors become an
// opaque 500; internals never leak to the kiosk or the dashboard.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is deactivated")
	case errors.Is(err, employee.ErrBadgeAlreadyRegistered):
		Conflict(w, "Badge already registered to another employee")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrInvalidEventType):
		BadRequest(w, "Invalid attendance event type", nil)
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be YYYY-MM-DD", nil)
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)

	// Override domain errors
	case errors.Is(err, override.ErrOverrideNotFound):
		NotFound(w, "Absence override not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
