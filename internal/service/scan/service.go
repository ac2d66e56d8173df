// Package scan implements the badge-tap toggle engine: it resolves badges to
// employees (auto-registering unknown ones), serializes concurrent taps on a
// per-employee row lock, debounces double taps, and appends IN/OUT and
// break-boundary events to the ledger.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/domain/employee"
	"github.com/taplog/attendance-backend-go/internal/domain/settings"
	"github.com/taplog/attendance-backend-go/internal/pkg/database"
	"github.com/taplog/attendance-backend-go/internal/repository/postgresql"
	"github.com/taplog/attendance-backend-go/internal/service/timesheet"
)

type ScanService interface {
	// RecordScan records one badge tap, toggling IN/OUT.
	RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error)
	// RecordBreak records a BREAK_START or BREAK_END tap.
	RecordBreak(ctx context.Context, req attendance.BreakRequest, eventType string) (attendance.BreakResponse, error)
}

type ScanServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	eventRepo    attendance.EventRepository
	settingsRepo settings.SettingsRepository
	bounceWindow time.Duration
	now          func() time.Time
	runTx        func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewScanService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	eventRepo attendance.EventRepository,
	settingsRepo settings.SettingsRepository,
	bounceWindow time.Duration,
) *ScanServiceImpl {
	return &ScanServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		bounceWindow: bounceWindow,
		now:          func() time.Time { return time.Now().UTC() },
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// RecordScan implements ScanService.
func (s *ScanServiceImpl) RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, req.UID)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if !emp.IsActive {
		return attendance.ScanResponse{}, employee.ErrEmployeeInactive
	}

	today := attendance.DateOf(s.now())

	var written attendance.Event
	var previous *attendance.Event
	debounced := false

	// The toggle decision and the write live in one transaction: the row
	// lock on the latest event makes a concurrent tap for the same
	// employee wait and then observe this tap's write.
	err = s.runTx(ctx, func(txCtx context.Context) error {
		last, err := s.eventRepo.LockLatestForEmployeeDay(txCtx, emp.ID, today)
		if err != nil {
			return err
		}
		previous = last

		eventType := attendance.EventIn
		if last != nil && last.EventType == attendance.EventIn {
			eventType = attendance.EventOut
		}

		now := s.now()
		if last != nil && now.Sub(last.Timestamp.UTC()) < s.bounceWindow {
			// Double tap on the reader: echo the existing event
			// instead of flapping IN->OUT->IN.
			written = *last
			debounced = true
			return nil
		}

		written, err = s.eventRepo.Append(txCtx, attendance.Event{
			EmployeeID: emp.ID,
			RFIDUID:    req.UID,
			EventType:  eventType,
			Timestamp:  now,
			Date:       today,
		})
		return err
	})
	if err != nil {
		return attendance.ScanResponse{}, fmt.Errorf("failed to record scan: %w", err)
	}

	if debounced {
		slog.Debug("scan debounced", "uid", req.UID, "event", written.EventType)
		return attendance.ScanResponse{
			Success:             true,
			Event:               written.EventType,
			UID:                 req.UID,
			Name:                emp.Name,
			AttendanceID:        written.ID,
			AttendanceTimestamp: formatTimestamp(written.Timestamp),
		}, nil
	}

	slog.Info("scan recorded", "event", written.EventType, "employee", emp.Name, "uid", req.UID)

	resp := attendance.ScanResponse{
		Success:             true,
		Event:               written.EventType,
		UID:                 req.UID,
		Name:                emp.Name,
		AttendanceID:        written.ID,
		AttendanceTimestamp: formatTimestamp(written.Timestamp),
	}
	s.enrich(ctx, &resp, emp.ID, today, previous)
	return resp, nil
}

// enrich fills today's cumulative hours, the previous event and the lateness
// flag. Enrichment is best-effort: a failure here degrades the response, it
// never fails the recorded scan.
func (s *ScanServiceImpl) enrich(ctx context.Context, resp *attendance.ScanResponse, employeeID int64, today string, previous *attendance.Event) {
	allToday, err := s.eventRepo.ListForEmployeeDay(ctx, employeeID, today)
	if err != nil {
		slog.Warn("could not load today's events for enrichment", "error", err)
		return
	}

	resp.TodayHours = timesheet.WorkedHoursLive(allToday, s.now())

	if previous != nil {
		prevType := previous.EventType
		prevTime := formatTimestamp(previous.Timestamp)
		resp.LastEventType = &prevType
		resp.LastEventTime = &prevTime
	}

	cfg, err := s.settingsRepo.GetOrCreateDefault(ctx)
	if err != nil {
		slog.Warn("could not load settings for late check", "error", err)
		cfg = settings.Defaults()
	}
	late, err := timesheet.IsLate(allToday, cfg.WorkStart, cfg.GraceMinutes, cfg.TimezoneOffset)
	if err != nil {
		slog.Warn("could not evaluate lateness", "error", err)
		return
	}
	resp.IsLate = late
}

// resolveEmployee finds the badge owner, auto-registering a placeholder row
// for unknown badges. When two first-taps race, the unique constraint on
// rfid_uid lets exactly one create win; the loser re-reads the winner's row.
func (s *ScanServiceImpl) resolveEmployee(ctx context.Context, uid string) (employee.Employee, error) {
	emp, err := s.employeeRepo.FindByBadge(ctx, uid)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, fmt.Errorf("failed to resolve badge: %w", err)
	}

	dept := "Unassigned"
	emp, err = s.employeeRepo.Create(ctx, employee.Employee{
		Name:       "Employee-" + shortUID(uid),
		RFIDUID:    uid,
		Department: &dept,
		IsActive:   true,
	})
	if err == nil {
		slog.Info("auto-registered employee", "name", emp.Name, "uid", uid)
		return emp, nil
	}
	if !errors.Is(err, employee.ErrBadgeAlreadyRegistered) {
		return employee.Employee{}, fmt.Errorf("failed to auto-register employee: %w", err)
	}

	// Lost the registration race; the winner's row is committed now.
	slog.Info("auto-registration race resolved", "uid", uid)
	emp, err = s.employeeRepo.FindByBadge(ctx, uid)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to re-read after registration race: %w", err)
	}
	return emp, nil
}

// RecordBreak implements ScanService.
func (s *ScanServiceImpl) RecordBreak(ctx context.Context, req attendance.BreakRequest, eventType string) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}
	if eventType != attendance.EventBreakStart && eventType != attendance.EventBreakEnd {
		return attendance.BreakResponse{}, attendance.ErrInvalidEventType
	}

	emp, err := s.employeeRepo.FindByBadge(ctx, req.UID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if !emp.IsActive {
		return attendance.BreakResponse{}, employee.ErrEmployeeInactive
	}

	today := attendance.DateOf(s.now())
	var written attendance.Event

	err = s.runTx(ctx, func(txCtx context.Context) error {
		last, err := s.eventRepo.LockLatestForEmployeeDay(txCtx, emp.ID, today)
		if err != nil {
			return err
		}

		now := s.now()
		if last != nil && now.Sub(last.Timestamp.UTC()) < s.bounceWindow {
			written = *last
			return nil
		}

		written, err = s.eventRepo.Append(txCtx, attendance.Event{
			EmployeeID: emp.ID,
			RFIDUID:    req.UID,
			EventType:  eventType,
			Timestamp:  now,
			Date:       today,
		})
		return err
	})
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to record break event: %w", err)
	}

	slog.Info("break event recorded", "event", written.EventType, "employee", emp.Name, "uid", req.UID)

	return attendance.BreakResponse{
		Success:      true,
		Event:        written.EventType,
		UID:          req.UID,
		Name:         emp.Name,
		AttendanceID: written.ID,
	}, nil
}

func shortUID(uid string) string {
	if len(uid) > 8 {
		return uid[:8]
	}
	return uid
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
