package override

import (
	"context"
	"log/slog"

	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/override"
)

type OverrideService interface {
	Upsert(ctx context.Context, req override.UpsertOverrideRequest, createdBy int64) (override.OverrideResponse, error)
	ListInRange(ctx context.Context, startDate, endDate string) ([]override.OverrideResponse, error)
	Delete(ctx context.Context, id int64) error
}

type OverrideServiceImpl struct {
	overrideRepo override.OverrideRepository
	employeeRepo employee.EmployeeRepository
}

func NewOverrideService(overrideRepo override.OverrideRepository, employeeRepo employee.EmployeeRepository) *OverrideServiceImpl {
	return &OverrideServiceImpl{overrideRepo: overrideRepo, employeeRepo: employeeRepo}
}

// Upsert implements OverrideService. The target employee must exist; setting
// an override twice for the same day replaces the first.
func (s *OverrideServiceImpl) Upsert(ctx context.Context, req override.UpsertOverrideRequest, createdBy int64) (override.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return override.OverrideResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return override.OverrideResponse{}, err
	}

	ov, err := s.overrideRepo.Upsert(ctx, override.Override{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		Notes:      req.Notes,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return override.OverrideResponse{}, err
	}
	ov.EmployeeName = &emp.Name

	slog.Info("absence override set",
		"employee_id", ov.EmployeeID, "date", ov.Date, "status", ov.Status, "created_by", createdBy)
	return override.ToResponse(ov), nil
}

// ListInRange implements OverrideService.
func (s *OverrideServiceImpl) ListInRange(ctx context.Context, startDate, endDate string) ([]override.OverrideResponse, error) {
	ovs, err := s.overrideRepo.ListInRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	out := make([]override.OverrideResponse, 0, len(ovs))
	for _, ov := range ovs {
		out = append(out, override.ToResponse(ov))
	}
	return out, nil
}

// Delete implements OverrideService.
func (s *OverrideServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.overrideRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("absence override removed", "id", id)
	return nil
}
