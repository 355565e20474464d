package domain

// AppSettings is the single per-device settings document. PasscodeHash is a
// bcrypt hash of the app-lock passcode; empty means the lock is not set up yet.
type AppSettings struct {
	DeviceID     string `json:"deviceID"`
	PasscodeHash string `json:"passcodeHash,omitempty"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
