// Package employee implements directory management. Deletion is always a
// soft deactivate; a separate admin purge removes attendance history.
package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
)

type EmployeeService interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	Get(ctx context.Context, id int64) (employee.EmployeeResponse, error)
	List(ctx context.Context, search string, offset, limit int) ([]employee.EmployeeResponse, error)
	Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	Deactivate(ctx context.Context, id int64) (employee.EmployeeResponse, error)
	PurgeAttendance(ctx context.Context, id int64) (attendance.PurgeResponse, error)
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	eventRepo    attendance.EventRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, eventRepo attendance.EventRepository) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo, eventRepo: eventRepo}
}

// Create implements EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:       req.Name,
		RFIDUID:    req.RFIDUID,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "id", emp.ID, "name", emp.Name)
	return employee.ToResponse(emp), nil
}

// Get implements EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, search string, offset, limit int) ([]employee.EmployeeResponse, error) {
	emps, err := s.employeeRepo.ListActive(ctx, search, offset, limit)
	if err != nil {
		return nil, err
	}

	out := make([]employee.EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		out = append(out, employee.ToResponse(emp))
	}
	return out, nil
}

// Update implements EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.Update(ctx, id, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee updated", "id", emp.ID)
	return employee.ToResponse(emp), nil
}

// Deactivate implements EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.Deactivate(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee deactivated", "id", emp.ID, "name", emp.Name)
	return employee.ToResponse(emp), nil
}

// PurgeAttendance implements EmployeeService. The employee row itself is
// untouched; only ledger rows go away.
func (s *EmployeeServiceImpl) PurgeAttendance(ctx context.Context, id int64) (attendance.PurgeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return attendance.PurgeResponse{}, err
	}

	deleted, err := s.eventRepo.DeleteByEmployee(ctx, id)
	if err != nil {
		return attendance.PurgeResponse{}, fmt.Errorf("failed to purge attendance: %w", err)
	}

	slog.Info("attendance purged", "employee_id", id, "deleted", deleted)
	return attendance.PurgeResponse{
		Success:       true,
		EmployeeID:    id,
		EventsDeleted: deleted,
	}, nil
}
