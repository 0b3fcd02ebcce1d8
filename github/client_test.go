package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("octocat").WithBaseURL(srv.URL)
}

func TestFetchUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat","name":"The Octocat","public_repos":8,"followers":100}`))
	}))

	user, err := client.FetchUser(context.Background())
	if err != nil {
		t.Fatalf("FetchUser: %v", err)
	}
	if user.Login != "octocat" || user.Name != "The Octocat" || user.PublicRepos != 8 {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestFetchRepos(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort") != "updated" || q.Get("per_page") != "6" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"hello-world","stargazers_count":42,"language":"Go"}]`))
	}))

	repos, err := client.FetchRepos(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchRepos: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(repos))
	}
	if repos[0].Name != "hello-world" || repos[0].Stars != 42 {
		t.Errorf("unexpected repo: %+v", repos[0])
	}
}

func TestFetchUserNon200(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))

	if _, err := client.FetchUser(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
