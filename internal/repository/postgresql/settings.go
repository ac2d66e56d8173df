package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/taplog/attendance-backend-go/internal/domain/settings"
	"github.com/taplog/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, work_start, work_end, grace_minutes, allowed_absent, allowed_leave, allowed_half_day, timezone_offset, updated_at`

func scanSettings(row pgx.Row) (settings.Settings, error) {
	var s settings.Settings
	err := row.Scan(
		&s.ID, &s.WorkStart, &s.WorkEnd, &s.GraceMinutes,
		&s.AllowedAbsent, &s.AllowedLeave, &s.AllowedHalfDay,
		&s.TimezoneOffset, &s.UpdatedAt,
	)
	return s, err
}

// GetOrCreateDefault implements settings.SettingsRepository. Concurrent
// first readers race on the insert; ON CONFLICT DO NOTHING lets the loser
// fall through to the read.
func (r *settingsRepository) GetOrCreateDefault(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM attendance_settings LIMIT 1`))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return settings.Settings{}, fmt.Errorf("failed to read attendance settings: %w", err)
	}

	def := settings.Defaults()
	_, err = q.Exec(ctx, `
		INSERT INTO attendance_settings (id, work_start, work_end, grace_minutes, allowed_absent, allowed_leave, allowed_half_day, timezone_offset)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, def.WorkStart, def.WorkEnd, def.GraceMinutes, def.AllowedAbsent, def.AllowedLeave, def.AllowedHalfDay, def.TimezoneOffset)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to create default attendance settings: %w", err)
	}

	s, err = scanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM attendance_settings LIMIT 1`))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to re-read attendance settings: %w", err)
	}
	return s, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, patch settings.UpdateSettingsRequest) (settings.Settings, error) {
	// Make sure the row exists before patching it.
	if _, err := r.GetOrCreateDefault(ctx); err != nil {
		return settings.Settings{}, err
	}

	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	appendField := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.WorkStart != nil {
		appendField("work_start", *patch.WorkStart)
	}
	if patch.WorkEnd != nil {
		appendField("work_end", *patch.WorkEnd)
	}
	if patch.GraceMinutes != nil {
		appendField("grace_minutes", *patch.GraceMinutes)
	}
	if patch.AllowedAbsent != nil {
		appendField("allowed_absent", *patch.AllowedAbsent)
	}
	if patch.AllowedLeave != nil {
		appendField("allowed_leave", *patch.AllowedLeave)
	}
	if patch.AllowedHalfDay != nil {
		appendField("allowed_half_day", *patch.AllowedHalfDay)
	}
	if patch.TimezoneOffset != nil {
		appendField("timezone_offset", *patch.TimezoneOffset)
	}

	if len(updates) == 0 {
		return r.GetOrCreateDefault(ctx)
	}

	appendField("updated_at", time.Now().UTC())

	query := "UPDATE attendance_settings SET " + strings.Join(updates, ", ") +
		" WHERE id = 1 RETURNING " + settingsColumns

	s, err := scanSettings(q.QueryRow(ctx, query, args...))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to update attendance settings: %w", err)
	}
	return s, nil
}
