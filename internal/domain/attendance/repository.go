package attendance

import (
	"context"
)

// DailyCount is one row of the trend aggregate: how many distinct employees
// and how many events the ledger saw on one calendar date.
type DailyCount struct {
	Date            string
	UniqueEmployees int
	TotalEvents     int
}

// EventRepository is the append-only ledger. Events are never updated;
// DeleteByEmployee exists solely for the administrative bulk purge.
type EventRepository interface {
	// Append writes a new event and returns it with the store-assigned id.
	Append(ctx context.Context, ev Event) (Event, error)

	// LockLatestForEmployeeDay returns the most recent event for one
	// employee on one calendar date, acquiring an exclusive row lock that
	// is held until the surrounding transaction ends. Returns nil when the
	// employee has no event that day. This is the serialization point of
	// the scan toggle: run it inside WithTransaction.
	LockLatestForEmployeeDay(ctx context.Context, employeeID int64, date string) (*Event, error)

	// ListForEmployeeDay returns one employee-day's events in ascending
	// timestamp order.
	ListForEmployeeDay(ctx context.Context, employeeID int64, date string) ([]Event, error)

	// ListInRange returns every event with startDate <= date <= endDate,
	// joined with the employee name, ordered by employee then timestamp.
	// Reports do one bulk fetch through here and group in memory; they
	// never loop queries per employee or per day.
	ListInRange(ctx context.Context, startDate, endDate string) ([]Event, error)

	// ListByEmployeeInRange is the single-employee variant of ListInRange.
	ListByEmployeeInRange(ctx context.Context, employeeID int64, startDate, endDate string) ([]Event, error)

	// CountByDate counts events on one calendar date.
	CountByDate(ctx context.Context, date string) (int, error)

	// DailyCounts aggregates per-date distinct-employee and event counts
	// for dates >= startDate, newest first.
	DailyCounts(ctx context.Context, startDate string) ([]DailyCount, error)

	// DeleteByEmployee removes all events for one employee and reports how
	// many rows went away. No side effects beyond removal.
	DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error)
}
