package settings

import (
	"context"
	"log/slog"

	"github.com/taplog/attendance-backend-go/internal/domain/settings"
)

type SettingsService interface {
	Get(ctx context.Context) (settings.SettingsResponse, error)
	Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error)
}

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Get implements SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.settingsRepo.GetOrCreateDefault(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(cfg), nil
}

// Update implements SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	cfg, err := s.settingsRepo.Update(ctx, req)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	slog.Info("attendance settings updated",
		"work_start", cfg.WorkStart, "grace_minutes", cfg.GraceMinutes, "timezone_offset", cfg.TimezoneOffset)
	return settings.ToResponse(cfg), nil
}
