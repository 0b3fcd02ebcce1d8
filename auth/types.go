package auth

import (
	"errors"
	"time"
)

// VerifiedEmail records that an email completed magic-link verification
// recently enough to bootstrap a session. Entries are lazily evicted:
// expiry is only enforced when the entry is read.
type VerifiedEmail struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	ErrNotFound          = errors.New("verified entry not found")
	ErrMalformedToken    = errors.New("malformed login token")
	ErrBadSignature      = errors.New("signature mismatch")
	ErrExpired           = errors.New("login token expired")
	ErrEmailNotAllowed   = errors.New("email not allowed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
