package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
	"github.com/pocketfin/pocket_finance_app/internal/platform/config"
	"github.com/pocketfin/pocket_finance_app/internal/utils"
)

// authService implements the single-device app-lock flow on top of the
// settings document.
type authService struct {
	store portsrepo.SettingsRepository
	cfg   *config.Config

	mu sync.Mutex
}

// NewAuthService creates the app-lock service.
func NewAuthService(store portsrepo.SettingsRepository, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{store: store, cfg: cfg}
}

// SetupPasscode stores the bcrypt hash of the passcode. It only runs once;
// changing the passcode would need the old one and is not part of this flow.
func (s *authService) SetupPasscode(ctx context.Context, passcode string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load settings", err, nil)
	}

	now := time.Now()
	if settings == nil {
		settings = &domain.AppSettings{
			DeviceID:     uuid.NewString(),
			CurrencyCode: "USD",
			AuditFields:  domain.AuditFields{CreatedAt: now},
		}
	}
	if settings.PasscodeHash != "" {
		return fmt.Errorf("%w: passcode is already set", apperrors.ErrValidation)
	}

	hash, err := utils.HashPasscode(passcode)
	if err != nil {
		return fmt.Errorf("failed to hash passcode: %w", err)
	}
	settings.PasscodeHash = hash
	settings.UpdatedAt = now

	if err := s.store.SaveSettings(ctx, *settings); err != nil {
		return apperrors.NewPersistenceError("save settings", err, func(retryCtx context.Context) error {
			return s.store.SaveSettings(retryCtx, *settings)
		})
	}

	logger.Info("App-lock passcode configured", slog.String("device_id", settings.DeviceID))
	return nil
}

// Login verifies the passcode and mints a session JWT for the device.
func (s *authService) Login(ctx context.Context, passcode string) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return "", time.Time{}, apperrors.NewPersistenceError("load settings", err, nil)
	}
	if settings == nil || settings.PasscodeHash == "" {
		return "", time.Time{}, fmt.Errorf("%w: app lock has not been set up", apperrors.ErrValidation)
	}

	if !utils.CheckPasscode(settings.PasscodeHash, passcode) {
		logger.Warn("Passcode verification failed")
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := utils.GenerateSessionToken(settings.DeviceID, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		return "", time.Time{}, err
	}

	logger.Info("Device unlocked", slog.String("device_id", settings.DeviceID))
	return token, expiresAt, nil
}
