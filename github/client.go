// Package github is a small read-only client for the public GitHub REST
// API, used to render the projects section without shipping a token to the
// browser.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Blog        string `json:"blog"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	CreatedAt   string `json:"created_at"`
}

type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stargazers_count"`
	HTMLURL     string   `json:"html_url"`
	Homepage    string   `json:"homepage"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
}

func NewClient(username string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		username:   username,
	}
}

// WithBaseURL points the client at a different API root. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github: %s returned %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+c.username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) FetchRepos(ctx context.Context, limit int) ([]Repo, error) {
	if limit <= 0 {
		limit = 6
	}
	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=%d", c.username, limit)
	var repos []Repo
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}
