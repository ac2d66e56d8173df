package employee

import (
	"context"
)

// EmployeeRepository defines data access for the employee directory.
// Auto-registration during a scan relies on the unique constraint on
// rfid_uid: concurrent creates for the same badge resolve to one row and
// the losers observe ErrBadgeAlreadyRegistered.
type EmployeeRepository interface {
	// FindByBadge returns the employee owning a badge, or
	// ErrEmployeeNotFound when the badge is unregistered.
	FindByBadge(ctx context.Context, rfidUID string) (Employee, error)

	// GetByID retrieves an employee regardless of active flag.
	GetByID(ctx context.Context, id int64) (Employee, error)

	// Create inserts a new employee; ErrBadgeAlreadyRegistered on a
	// duplicate rfid_uid.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// ListActive returns active employees ordered by name. A non-empty
	// search filters by name; LIKE metacharacters in it are escaped.
	ListActive(ctx context.Context, search string, offset, limit int) ([]Employee, error)

	// ListAllActive returns the full active roster, unpaginated. Reports
	// need every employee to classify absences.
	ListAllActive(ctx context.Context) ([]Employee, error)

	// Update applies the non-nil fields of the patch.
	Update(ctx context.Context, id int64, patch UpdateEmployeeRequest) (Employee, error)

	// Deactivate soft-deletes an employee; attendance history survives.
	Deactivate(ctx context.Context, id int64) (Employee, error)

	CountActive(ctx context.Context) (int, error)
}
