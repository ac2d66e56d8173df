package override

import (
	"context"
)

type OverrideRepository interface {
	// Upsert inserts or replaces the override for (employee, date).
	Upsert(ctx context.Context, ov Override) (Override, error)

	// ListInRange returns all overrides with startDate <= date <= endDate,
	// joined with employee names. Reports read a whole month in one call.
	ListInRange(ctx context.Context, startDate, endDate string) ([]Override, error)

	// Delete removes an override by id; ErrOverrideNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
