package auth

import (
	"context"
	"time"
)

// VerifiedStore holds the short-lived "this email verified recently"
// entries that bridge token verification to session bootstrap. The memory
// implementation is per-process; back it with Redis when the site runs more
// than one instance, otherwise the second leg of login can land on an
// instance that never saw the verification.
type VerifiedStore interface {
	Get(ctx context.Context, email string) (*VerifiedEmail, error)
	SetWithExpiry(ctx context.Context, entry VerifiedEmail, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}
