package server

import (
	"context"
	"net"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/icy-r/portfolio/session"
)

type contextKey string

const adminEmailKey contextKey = "admin_email"

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}

// requireAdmin guards the management routes. The session cookie must carry a
// valid session token, and the identity inside it is re-checked against the
// configured admin address.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.GetCookie(r, session.SessionCookie)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		email, err := s.sessions.Parse(token)
		if err != nil || !s.authn.IsAllowed(email) {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientKey identifies a client for rate limiting purposes.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
