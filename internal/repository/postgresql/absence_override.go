package postgresql

import (
	"context"
	"fmt"

	"github.com/taplog/attendance-backend-go/internal/domain/override"
	"github.com/taplog/attendance-backend-go/internal/pkg/database"
)

type overrideRepository struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) override.OverrideRepository {
	return &overrideRepository{db: db}
}

// Upsert implements override.OverrideRepository. The unique constraint on
// (employee_id, date) makes repeated admin edits replace rather than
// accumulate.
func (r *overrideRepository) Upsert(ctx context.Context, ov override.Override) (override.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_overrides (employee_id, date, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, created_by = EXCLUDED.created_by
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		ov.EmployeeID, ov.Date, ov.Status, ov.Notes, ov.CreatedBy,
	).Scan(&ov.ID, &ov.CreatedAt)
	if err != nil {
		return override.Override{}, fmt.Errorf("failed to upsert absence override: %w", err)
	}
	return ov, nil
}

// ListInRange implements override.OverrideRepository.
func (r *overrideRepository) ListInRange(ctx context.Context, startDate, endDate string) ([]override.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.id, o.employee_id, o.date, o.status, o.notes, o.created_by, o.created_at, e.name
		FROM absence_overrides o
		JOIN employees e ON e.id = o.employee_id
		WHERE o.date >= $1 AND o.date <= $2
		ORDER BY o.date, e.name
	`

	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence overrides: %w", err)
	}
	defer rows.Close()

	var overrides []override.Override
	for rows.Next() {
		var ov override.Override
		if err := rows.Scan(&ov.ID, &ov.EmployeeID, &ov.Date, &ov.Status, &ov.Notes, &ov.CreatedBy, &ov.CreatedAt, &ov.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan absence override: %w", err)
		}
		overrides = append(overrides, ov)
	}
	return overrides, rows.Err()
}

// Delete implements override.OverrideRepository.
func (r *overrideRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absence_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return override.ErrOverrideNotFound
	}
	return nil
}
