package entities

import (
	"time"

	"github.com/google/uuid"
)

// OtpCode is a pending one-time signup code. At most one live code exists
// per email; issuing a new one replaces the old.
type OtpCode struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is no longer usable at t.
// The boundary instant itself counts as expired.
func (o *OtpCode) Expired(t time.Time) bool {
	return !t.Before(o.ExpiresAt)
}
