package services

import (
	"context"
	"time"
)

// AuthSvcFacade exposes the single-device app-lock flow.
type AuthSvcFacade interface {
	// SetupPasscode stores the bcrypt hash of the passcode. Fails with a
	// validation error when a passcode is already set.
	SetupPasscode(ctx context.Context, passcode string) error
	// Login verifies the passcode and mints a session JWT.
	Login(ctx context.Context, passcode string) (token string, expiresAt time.Time, err error)
}
