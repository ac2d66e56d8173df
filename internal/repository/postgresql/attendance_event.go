package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taplog/attendance-backend-go/internal/domain/attendance"
	"github.com/taplog/attendance-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

// Append implements attendance.EventRepository.
func (r *eventRepository) Append(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (employee_id, rfid_uid, event_type, timestamp, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		ev.EmployeeID, ev.RFIDUID, ev.EventType, ev.Timestamp, ev.Date, ev.Notes,
	).Scan(&ev.ID)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}
	return ev, nil
}

// LockLatestForEmployeeDay implements attendance.EventRepository. FOR UPDATE
// serializes concurrent taps for the same employee: the second tap blocks
// here until the first one's transaction commits, then sees its write.
func (r *eventRepository) LockLatestForEmployeeDay(ctx context.Context, employeeID int64, date string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, rfid_uid, event_type, timestamp, date, notes
		FROM attendance_events
		WHERE employee_id = $1 AND date = $2
		ORDER BY timestamp DESC
		LIMIT 1
		FOR UPDATE
	`

	var ev attendance.Event
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&ev.ID, &ev.EmployeeID, &ev.RFIDUID, &ev.EventType, &ev.Timestamp, &ev.Date, &ev.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock latest event: %w", err)
	}
	return &ev, nil
}

// ListForEmployeeDay implements attendance.EventRepository.
func (r *eventRepository) ListForEmployeeDay(ctx context.Context, employeeID int64, date string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, rfid_uid, event_type, timestamp, date, notes
		FROM attendance_events
		WHERE employee_id = $1 AND date = $2
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for employee day: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, false)
}

// ListInRange implements attendance.EventRepository. One bulk read for a
// whole report period; grouping happens in memory in the report service.
func (r *eventRepository) ListInRange(ctx context.Context, startDate, endDate string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.rfid_uid, a.event_type, a.timestamp, a.date, a.notes, e.name
		FROM attendance_events a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.employee_id, a.timestamp ASC
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list events in range: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, true)
}

// ListByEmployeeInRange implements attendance.EventRepository.
func (r *eventRepository) ListByEmployeeInRange(ctx context.Context, employeeID int64, startDate, endDate string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, rfid_uid, event_type, timestamp, date, notes
		FROM attendance_events
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by employee: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, false)
}

// CountByDate implements attendance.EventRepository.
func (r *eventRepository) CountByDate(ctx context.Context, date string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_events WHERE date = $1`, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// DailyCounts implements attendance.EventRepository.
func (r *eventRepository) DailyCounts(ctx context.Context, startDate string) ([]attendance.DailyCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, COUNT(DISTINCT employee_id), COUNT(id)
		FROM attendance_events
		WHERE date >= $1
		GROUP BY date
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}
	defer rows.Close()

	var counts []attendance.DailyCount
	for rows.Next() {
		var dc attendance.DailyCount
		if err := rows.Scan(&dc.Date, &dc.UniqueEmployees, &dc.TotalEvents); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// DeleteByEmployee implements attendance.EventRepository.
func (r *eventRepository) DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_events WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectEvents(rows pgx.Rows, withName bool) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		var err error
		if withName {
			err = rows.Scan(&ev.ID, &ev.EmployeeID, &ev.RFIDUID, &ev.EventType, &ev.Timestamp, &ev.Date, &ev.Notes, &ev.EmployeeName)
		} else {
			err = rows.Scan(&ev.ID, &ev.EmployeeID, &ev.RFIDUID, &ev.EventType, &ev.Timestamp, &ev.Date, &ev.Notes)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
