package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// GamificationRepository persists the single gamification profile document.
// Load returns nil when no profile has been stored yet.
type GamificationRepository interface {
	LoadGamificationProfile(ctx context.Context) (*domain.GamificationProfile, error)
	SaveGamificationProfile(ctx context.Context, profile domain.GamificationProfile) error
}
