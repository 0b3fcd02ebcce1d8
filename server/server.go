// Package server exposes the portfolio API over HTTP: the magic-link login
// flow, the admin content management endpoints and the public site data.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/icy-r/portfolio/auth"
	"github.com/icy-r/portfolio/content"
	"github.com/icy-r/portfolio/github"
	"github.com/icy-r/portfolio/mail"
	"github.com/icy-r/portfolio/session"
)

const (
	loginPage = "/admin/login"

	// Login link requests per client per window.
	loginRateLimit  = 5
	loginRateWindow = 15 * time.Minute
)

// ContentStore is the persistence surface the handlers need. Implemented by
// content.Store; tests substitute an in-memory fake.
type ContentStore interface {
	ListPosts(ctx context.Context) ([]content.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*content.BlogPost, error)
	CreatePost(ctx context.Context, post *content.BlogPost) error
	UpdatePost(ctx context.Context, id string, post *content.BlogPost) error
	DeletePost(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, msg *content.ContactMessage) error
	ListMessages(ctx context.Context) ([]content.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error

	ListPinnedRepos(ctx context.Context) ([]content.PinnedRepo, error)
	SetPinnedRepos(ctx context.Context, repos []content.PinnedRepo) error
}

// GitHubClient is the subset of the GitHub client the handlers use.
type GitHubClient interface {
	FetchUser(ctx context.Context) (*github.User, error)
	FetchRepos(ctx context.Context, limit int) ([]github.Repo, error)
}

type Server struct {
	authn    *auth.Authenticator
	sessions *session.Manager
	store    ContentStore
	gh       GitHubClient
	mailer   *mail.Mailer
	limiter  auth.RateLimiter
	baseURL  string
	logger   *zap.Logger
}

type Options struct {
	Authenticator *auth.Authenticator
	Sessions      *session.Manager
	Store         ContentStore
	GitHub        GitHubClient

	// Mailer may be nil; the login endpoint then returns the magic link in
	// its response instead of emailing it (development fallback).
	Mailer *mail.Mailer

	// Limiter may be nil to disable login rate limiting.
	Limiter auth.RateLimiter

	BaseURL string
	Logger  *zap.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		authn:    opts.Authenticator,
		sessions: opts.Sessions,
		store:    opts.Store,
		gh:       opts.GitHub,
		mailer:   opts.Mailer,
		limiter:  opts.Limiter,
		baseURL:  opts.BaseURL,
		logger:   logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/request-login", s.handleRequestLogin)
			r.Get("/verify-login", s.handleVerifyLogin)
			r.Post("/session", s.handleCreateSession)
			r.Delete("/session", s.handleDeleteSession)
		})

		r.Get("/blogs", s.handleListPosts)
		r.Get("/blogs/{slug}", s.handleGetPost)
		r.Post("/contacts", s.handleCreateMessage)
		r.Get("/pinned-repos", s.handleListPinnedRepos)
		r.Get("/github", s.handleGitHub)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/blogs", s.handleCreatePost)
			r.Put("/blogs/{id}", s.handleUpdatePost)
			r.Delete("/blogs/{id}", s.handleDeletePost)
			r.Get("/contacts", s.handleListMessages)
			r.Patch("/contacts/{id}/read", s.handleMarkMessageRead)
			r.Delete("/contacts/{id}", s.handleDeleteMessage)
			r.Put("/pinned-repos", s.handleSetPinnedRepos)
		})
	})

	return r
}
