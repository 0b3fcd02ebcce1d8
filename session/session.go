// Package session mints and checks the long-lived admin session credential
// that the magic-link flow bootstraps. The session is a signed JWT carried
// in a cookie; the short-lived "admin-email" cookie set at link redemption
// acts as a fallback corroboration signal for the bootstrap step.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "admin-session"

	// EmailCookie is set when a magic link is redeemed and corroborates the
	// verified identity across the login redirect.
	EmailCookie = "admin-email"

	// DefaultTTL matches the cookie lifetime of the login flow.
	DefaultTTL = 7 * 24 * time.Hour
)

var ErrInvalidSession = errors.New("invalid session token")

type Manager struct {
	secret []byte
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager. secure controls the Secure cookie
// attribute and should be true in production.
func NewManager(secret string, secure bool, ttl time.Duration, now func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		secret: []byte(secret),
		secure: secure,
		ttl:    ttl,
		now:    now,
	}
}

// Mint signs a session token for the given email.
func (m *Manager) Mint(email string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a session token and returns the email it was minted for.
func (m *Manager) Parse(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidSession
	}
	return sub, nil
}

// SetSessionCookie stores the minted session token on the response.
func (m *Manager) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
}

// SetEmailCookie stores the freshly verified email on the response.
func (m *Manager) SetEmailCookie(w http.ResponseWriter, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     EmailCookie,
		Value:    email,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(DefaultTTL.Seconds()),
	})
}

// ClearCookies removes both auth cookies on logout.
func (m *Manager) ClearCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookie, EmailCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

// GetCookie returns the named cookie value or the empty string.
func GetCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
