package services

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// GamificationSvcFacade exposes streak/badge/level bookkeeping.
type GamificationSvcFacade interface {
	Profile(ctx context.Context) (*domain.GamificationProfile, error)
	// RecordActivity registers one logging action at the given time and
	// returns the updated profile. Same-day repeats are no-ops.
	RecordActivity(ctx context.Context, at time.Time) (*domain.GamificationProfile, error)
}
