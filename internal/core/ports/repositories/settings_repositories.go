package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// SettingsRepository persists the single app settings document.
// Load returns nil when no settings have been stored yet.
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (*domain.AppSettings, error)
	SaveSettings(ctx context.Context, settings domain.AppSettings) error
}
