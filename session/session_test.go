package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMintParseRoundTrip(t *testing.T) {
	m := NewManager("secret", false, time.Hour, nil)

	token, err := m.Mint("admin@example.com")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	email, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if email != "admin@example.com" {
		t.Errorf("expected admin@example.com, got %q", email)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := NewManager("secret", false, time.Hour, nil)
	other := NewManager("other-secret", false, time.Hour, nil)

	token, err := other.Mint("admin@example.com")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := start
	m := NewManager("secret", false, time.Hour, func() time.Time { return current })

	token, err := m.Mint("admin@example.com")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	current = start.Add(2 * time.Hour)
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession after expiry, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("secret", false, time.Hour, nil)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Parse(%q): expected ErrInvalidSession, got %v", tok, err)
		}
	}
}

func TestCookies(t *testing.T) {
	m := NewManager("secret", true, time.Hour, nil)

	rec := httptest.NewRecorder()
	m.SetEmailCookie(rec, "admin@example.com")
	m.SetSessionCookie(rec, "token-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	email := byName[EmailCookie]
	if email == nil {
		t.Fatal("missing email cookie")
	}
	if !email.HttpOnly || !email.Secure || email.SameSite != http.SameSiteLaxMode || email.Path != "/" {
		t.Errorf("email cookie attributes wrong: %+v", email)
	}
	if email.MaxAge != int(DefaultTTL.Seconds()) {
		t.Errorf("expected email cookie max-age %d, got %d", int(DefaultTTL.Seconds()), email.MaxAge)
	}

	sess := byName[SessionCookie]
	if sess == nil {
		t.Fatal("missing session cookie")
	}
	if sess.Value != "token-value" {
		t.Errorf("unexpected session cookie value %q", sess.Value)
	}
}

func TestClearCookies(t *testing.T) {
	m := NewManager("secret", false, time.Hour, nil)

	rec := httptest.NewRecorder()
	m.ClearCookies(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge != -1 || c.Value != "" {
			t.Errorf("cookie %s not cleared: %+v", c.Name, c)
		}
	}
}
