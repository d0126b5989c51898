package service

import (
	"time"

	"github.com/google/uuid"
)

// RememberTokenService issues and verifies the long-lived "remember me" token
// that restores a session after the session cookie is gone.
type RememberTokenService interface {
	Issue(accountID uuid.UUID) (token string, expiresAt time.Time, err error)
	Verify(token string) (uuid.UUID, error)
	Duration() time.Duration
}
