package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/icy-r/portfolio/auth"
	"github.com/icy-r/portfolio/content"
	"github.com/icy-r/portfolio/github"
	"github.com/icy-r/portfolio/session"
)

const (
	testAdmin  = "admin@example.com"
	testSecret = "test-secret-key"
)

// fakeStore is an in-memory ContentStore for handler tests.
type fakeStore struct {
	posts  []content.BlogPost
	msgs   []content.ContactMessage
	pinned []content.PinnedRepo
}

func (f *fakeStore) ListPosts(_ context.Context) ([]content.BlogPost, error) {
	return f.posts, nil
}

func (f *fakeStore) GetPostBySlug(_ context.Context, slug string) (*content.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			return &f.posts[i], nil
		}
	}
	return nil, content.ErrNotFound
}

func (f *fakeStore) CreatePost(_ context.Context, post *content.BlogPost) error {
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return content.ErrDuplicateSlug
		}
	}
	post.ID = primitive.NewObjectID()
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakeStore) UpdatePost(_ context.Context, id string, post *content.BlogPost) error {
	for i := range f.posts {
		if f.posts[i].ID.Hex() == id {
			post.ID = f.posts[i].ID
			f.posts[i] = *post
			return nil
		}
	}
	return content.ErrNotFound
}

func (f *fakeStore) DeletePost(_ context.Context, id string) error {
	for i := range f.posts {
		if f.posts[i].ID.Hex() == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return content.ErrNotFound
}

func (f *fakeStore) CreateMessage(_ context.Context, msg *content.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeStore) ListMessages(_ context.Context) ([]content.ContactMessage, error) {
	return f.msgs, nil
}

func (f *fakeStore) MarkMessageRead(_ context.Context, id string) error {
	for i := range f.msgs {
		if f.msgs[i].ID.Hex() == id {
			f.msgs[i].Read = true
			return nil
		}
	}
	return content.ErrNotFound
}

func (f *fakeStore) DeleteMessage(_ context.Context, id string) error {
	for i := range f.msgs {
		if f.msgs[i].ID.Hex() == id {
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			return nil
		}
	}
	return content.ErrNotFound
}

func (f *fakeStore) ListPinnedRepos(_ context.Context) ([]content.PinnedRepo, error) {
	return f.pinned, nil
}

func (f *fakeStore) SetPinnedRepos(_ context.Context, repos []content.PinnedRepo) error {
	f.pinned = repos
	return nil
}

// fakeGitHub serves canned profile data.
type fakeGitHub struct {
	user  github.User
	repos []github.Repo
	err   error
}

func (f *fakeGitHub) FetchUser(_ context.Context) (*github.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.user, nil
}

func (f *fakeGitHub) FetchRepos(_ context.Context, _ int) ([]github.Repo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

type testEnv struct {
	server   *Server
	handler  http.Handler
	store    *fakeStore
	gh       *fakeGitHub
	sessions *session.Manager
	authn    *auth.Authenticator
}

func newTestEnv(t *testing.T, mutate func(*Options)) *testEnv {
	t.Helper()
	authn, err := auth.New(auth.Config{
		AdminEmail: testAdmin,
		Secret:     testSecret,
		Store:      auth.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	sessions := session.NewManager(testSecret, false, session.DefaultTTL, nil)
	store := &fakeStore{}
	gh := &fakeGitHub{}

	opts := Options{
		Authenticator: authn,
		Sessions:      sessions,
		Store:         store,
		GitHub:        gh,
		BaseURL:       "http://localhost:8080",
	}
	if mutate != nil {
		mutate(&opts)
	}
	srv := New(opts)
	return &testEnv{
		server:   srv,
		handler:  srv.Router(),
		store:    store,
		gh:       gh,
		sessions: sessions,
		authn:    authn,
	}
}

func httptestRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	return req
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// adminCookie returns a valid admin session cookie.
func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := e.sessions.Mint(testAdmin)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	return &http.Cookie{Name: session.SessionCookie, Value: token}
}
