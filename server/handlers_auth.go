package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/icy-r/portfolio/auth"
	"github.com/icy-r/portfolio/session"
)

// handleRequestLogin mints a magic link for the configured admin and emails
// it. Issuance is unconditional for the fixed admin identity; only rate
// limiting and delivery can fail.
func (s *Server) handleRequestLogin(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		if err := s.limiter.CheckAndIncrement(r.Context(), clientKey(r), loginRateLimit, loginRateWindow); err != nil {
			if errors.Is(err, auth.ErrRateLimitExceeded) {
				writeError(w, http.StatusTooManyRequests, "too many login requests, try again later")
				return
			}
			s.logger.Error("rate limiter unavailable", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "an error occurred")
			return
		}
	}

	adminEmail := s.authn.AdminEmail()
	token, err := s.authn.Issue()
	if err != nil {
		s.logger.Error("issue login token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	loginURL := fmt.Sprintf("%s/api/auth/verify-login?token=%s&email=%s",
		s.baseURL, token, url.QueryEscape(adminEmail))

	if s.mailer == nil {
		// Development fallback: hand the link back to the caller.
		writeJSON(w, http.StatusOK, map[string]string{
			"message":   "Email service not configured. Use this link to login:",
			"login_url": loginURL,
		})
		return
	}

	if err := s.mailer.SendLoginLink(adminEmail, loginURL, auth.DefaultTokenTTL); err != nil {
		s.logger.Error("send login email", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to send email, please try again later")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Check %s for a login link.", adminEmail),
	})
}

// handleVerifyLogin redeems the emailed link. Every failure collapses into
// the same generic redirect so callers cannot distinguish a forged token
// from an expired one; the specific reason only goes to the log.
func (s *Server) handleVerifyLogin(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		s.redirectLoginError(w, r)
		return
	}

	email, err := s.authn.Verify(r.Context(), token)
	if err != nil {
		s.logger.Warn("login token rejected", zap.Error(err))
		s.redirectLoginError(w, r)
		return
	}

	s.sessions.SetEmailCookie(w, email)
	q := url.Values{}
	q.Set("verified", "true")
	q.Set("email", email)
	http.Redirect(w, r, loginPage+"?"+q.Encode(), http.StatusFound)
}

func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("error", "Link expired or invalid")
	http.Redirect(w, r, loginPage+"?"+q.Encode(), http.StatusFound)
}

type sessionRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// handleCreateSession is the session bootstrap: it accepts an email as
// authenticated if it was recently verified through a magic link, or if the
// corroborating cookie from link redemption matches it exactly. The identity
// gate is enforced here independently of token verification.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	email := auth.NormalizeEmail(req.Email)

	if !s.authn.IsAllowed(email) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !s.authn.IsRecentlyVerified(r.Context(), email) {
		if session.GetCookie(r, session.EmailCookie) != email {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
	}

	token, err := s.sessions.Mint(email)
	if err != nil {
		s.logger.Error("mint session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	s.sessions.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, sessionResponse{Email: email, Token: token})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookies(w)
	w.WriteHeader(http.StatusNoContent)
}
