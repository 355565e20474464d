package domain

import "time"

// AuditFields holds standard audit timestamps for domain entities.
// The app is single-user, so there is no created-by/updated-by actor.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
