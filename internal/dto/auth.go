package dto

import "time"

// SetupPasscodeRequest sets the app-lock passcode for this device.
type SetupPasscodeRequest struct {
	Passcode string `json:"passcode" binding:"required,min=4,max=64"`
}

// LoginRequest unlocks the app with the passcode.
type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// LoginResponse carries the session token minted on a successful unlock.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
