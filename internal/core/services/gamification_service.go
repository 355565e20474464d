package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
)

const (
	pointsPerActivity = 10
	pointsPerLevel    = 100
)

// gamificationService maintains the single streak/badge/level profile.
type gamificationService struct {
	store portsrepo.GamificationRepository

	mu      sync.Mutex
	profile *domain.GamificationProfile
}

// NewGamificationService creates the gamification engine.
func NewGamificationService(store portsrepo.GamificationRepository) portssvc.GamificationSvcFacade {
	return &gamificationService{store: store}
}

func (s *gamificationService) Profile(ctx context.Context) (*domain.GamificationProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	result := *s.profile
	return &result, nil
}

// RecordActivity registers one logging action. Streaks are day-granular: a
// second action on the same day is a no-op, an action on the next day extends
// the streak, and any longer gap resets it to one.
func (s *gamificationService) RecordActivity(ctx context.Context, at time.Time) (*domain.GamificationProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	p := s.profile
	today := dateOnly(at)

	if !p.LastActivityAt.IsZero() && dateOnly(p.LastActivityAt).Equal(today) {
		result := *p
		return &result, nil
	}

	switch {
	case p.LastActivityAt.IsZero():
		p.CurrentStreak = 1
	case dateOnly(p.LastActivityAt).AddDate(0, 0, 1).Equal(today):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastActivityAt = at
	p.Points += pointsPerActivity
	p.Level = p.Points/pointsPerLevel + 1
	p.UpdatedAt = at

	s.awardBadgesLocked(at)

	result := *p
	if err := s.persistLocked(ctx, "record activity"); err != nil {
		return &result, err
	}

	logger.Debug("Gamification activity recorded",
		slog.Int("streak", result.CurrentStreak),
		slog.Int("points", result.Points),
		slog.Int("level", result.Level),
	)
	return &result, nil
}

// awardBadgesLocked grants any newly earned badges. Requires s.mu held.
func (s *gamificationService) awardBadgesLocked(at time.Time) {
	p := s.profile

	award := func(code string) {
		if !p.HasBadge(code) {
			p.Badges = append(p.Badges, domain.Badge{Code: code, EarnedAt: at})
		}
	}

	award(domain.BadgeFirstEntry)
	if p.CurrentStreak >= 3 {
		award(domain.BadgeStreak3Days)
	}
	if p.CurrentStreak >= 7 {
		award(domain.BadgeStreak7Days)
	}
	if p.CurrentStreak >= 30 {
		award(domain.BadgeStreak30Days)
	}
}

func (s *gamificationService) ensureLoadedLocked(ctx context.Context) error {
	if s.profile != nil {
		return nil
	}
	profile, err := s.store.LoadGamificationProfile(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load gamification profile", err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.ensureLoadedLocked(retryCtx)
		})
	}
	if profile == nil {
		profile = &domain.GamificationProfile{Level: 1, Badges: []domain.Badge{}}
	}
	s.profile = profile
	return nil
}

func (s *gamificationService) persistLocked(ctx context.Context, op string) error {
	if err := s.store.SaveGamificationProfile(ctx, *s.profile); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist gamification profile",
			slog.String("op", op), slog.String("error", err.Error()))
		return apperrors.NewPersistenceError(op, err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.persistLocked(retryCtx, op+" (retry)")
		})
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}
