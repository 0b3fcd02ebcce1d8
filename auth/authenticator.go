package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTokenTTL is how long an emailed login link stays redeemable.
	DefaultTokenTTL = 15 * time.Minute

	// DefaultVerifiedTTL is how long a verified email can bootstrap a
	// session before the user has to click the link again.
	DefaultVerifiedTTL = 5 * time.Minute
)

// Authenticator implements the magic-link login flow for the single
// configured admin address: it mints signed login tokens, verifies redeemed
// ones and records successful verifications in the store so the session
// bootstrap can pick them up across the redirect.
type Authenticator struct {
	adminEmail  string
	signer      *Signer
	store       VerifiedStore
	now         func() time.Time
	tokenTTL    time.Duration
	verifiedTTL time.Duration
}

type Config struct {
	// AdminEmail is the only address allowed to authenticate.
	AdminEmail string

	// Secret keys the HMAC over token payloads.
	Secret string

	Store VerifiedStore

	// Now is overridable for tests.
	Now func() time.Time

	TokenTTL    time.Duration
	VerifiedTTL time.Duration
}

func New(cfg Config) (*Authenticator, error) {
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("admin email is required")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("verified store is required")
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	verifiedTTL := cfg.VerifiedTTL
	if verifiedTTL <= 0 {
		verifiedTTL = DefaultVerifiedTTL
	}
	return &Authenticator{
		adminEmail:  NormalizeEmail(cfg.AdminEmail),
		signer:      NewSigner(cfg.Secret),
		store:       cfg.Store,
		now:         nowFn,
		tokenTTL:    tokenTTL,
		verifiedTTL: verifiedTTL,
	}, nil
}

// NormalizeEmail lower-cases and trims an address. Every comparison in the
// package goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AdminEmail returns the configured admin address, normalized.
func (a *Authenticator) AdminEmail() string {
	return a.adminEmail
}

// IsAllowed reports whether email matches the configured admin address.
func (a *Authenticator) IsAllowed(email string) bool {
	return NormalizeEmail(email) == a.adminEmail
}

// Issue mints a login token for the configured admin address. Caller-supplied
// emails are never trusted for issuance; the token always asserts the admin
// identity.
func (a *Authenticator) Issue() (string, error) {
	expiresAt := a.now().Add(a.tokenTTL)
	return EncodeToken(a.signer, a.adminEmail, expiresAt)
}

// Verify checks a redeemed token and, on success, records the email as
// recently verified and returns it. Checks run in a fixed order and the
// first failure wins: structure, signature, payload decode, expiry,
// identity. Callers must not surface which check failed to the end user.
func (a *Authenticator) Verify(ctx context.Context, token string) (string, error) {
	payload, signature, err := splitToken(token)
	if err != nil {
		return "", err
	}
	if ok := a.signer.Verify([]byte(payload), signature); !ok {
		return "", ErrBadSignature
	}
	c, err := decodeClaims(payload)
	if err != nil {
		return "", err
	}
	now := a.now()
	if !now.Before(time.UnixMilli(c.ExpiresAt)) {
		return "", ErrExpired
	}
	email := NormalizeEmail(c.Email)
	if email != a.adminEmail {
		return "", ErrEmailNotAllowed
	}

	entry := VerifiedEmail{
		Email:     email,
		ExpiresAt: now.Add(a.verifiedTTL),
	}
	if err := a.store.SetWithExpiry(ctx, entry, a.verifiedTTL); err != nil {
		return "", err
	}
	return email, nil
}

// IsRecentlyVerified reports whether email completed token verification
// within the verified window. Stale entries are deleted on the way out.
func (a *Authenticator) IsRecentlyVerified(ctx context.Context, email string) bool {
	email = NormalizeEmail(email)
	entry, err := a.store.Get(ctx, email)
	if err != nil {
		return false
	}
	if !a.now().Before(entry.ExpiresAt) {
		_ = a.store.Delete(ctx, email)
		return false
	}
	return true
}
