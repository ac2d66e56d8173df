package settings

import (
	"context"
)

type SettingsRepository interface {
	// GetOrCreateDefault fetches the singleton row, inserting it with the
	// hardcoded defaults the first time any reader needs it.
	GetOrCreateDefault(ctx context.Context) (Settings, error)

	// Update applies the non-nil fields of the patch to the singleton row.
	Update(ctx context.Context, patch UpdateSettingsRequest) (Settings, error)
}
