package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/icy-r/portfolio/github"
)

type githubResponse struct {
	User  *github.User  `json:"user"`
	Repos []github.Repo `json:"repos"`
}

// handleGitHub proxies the public profile and repository list so the
// browser never talks to the GitHub API directly. Responses are cacheable
// for an hour.
func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	user, err := s.gh.FetchUser(r.Context())
	if err != nil {
		s.logger.Error("fetch github user", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to fetch profile")
		return
	}
	repos, err := s.gh.FetchRepos(r.Context(), 6)
	if err != nil {
		s.logger.Error("fetch github repos", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to fetch repositories")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, githubResponse{User: user, Repos: repos})
}
