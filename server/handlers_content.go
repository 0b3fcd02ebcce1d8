package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/icy-r/portfolio/content"
)

// --- blog posts ---

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		s.logger.Error("list posts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.store.GetPostBySlug(r.Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.logger.Error("get post", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

type postRequest struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

func (p *postRequest) validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Slug) == "" ||
		strings.TrimSpace(p.Excerpt) == "" || strings.TrimSpace(p.Content) == "" {
		return errors.New("title, slug, excerpt and content are required")
	}
	return nil
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post := content.BlogPost{
		Title:   req.Title,
		Slug:    req.Slug,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Date:    req.Date,
		Tags:    req.Tags,
	}
	if err := s.store.CreatePost(r.Context(), &post); err != nil {
		if errors.Is(err, content.ErrDuplicateSlug) {
			writeError(w, http.StatusConflict, "slug already in use")
			return
		}
		s.logger.Error("create post", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post := content.BlogPost{
		Title:   req.Title,
		Slug:    req.Slug,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Date:    req.Date,
		Tags:    req.Tags,
	}
	err := s.store.UpdatePost(r.Context(), chi.URLParam(r, "id"), &post)
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.logger.Error("update post", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeletePost(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.logger.Error("delete post", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- contact messages ---

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	msg := content.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.store.CreateMessage(r.Context(), &msg); err != nil {
		s.logger.Error("create message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.store.ListMessages(r.Context())
	if err != nil {
		s.logger.Error("list messages", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	err := s.store.MarkMessageRead(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		s.logger.Error("mark message read", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteMessage(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}
	if err != nil {
		s.logger.Error("delete message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- pinned repos ---

func (s *Server) handleListPinnedRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := s.store.ListPinnedRepos(r.Context())
	if err != nil {
		s.logger.Error("list pinned repos", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) handleSetPinnedRepos(w http.ResponseWriter, r *http.Request) {
	var repos []content.PinnedRepo
	if err := json.NewDecoder(r.Body).Decode(&repos); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.SetPinnedRepos(r.Context(), repos); err != nil {
		s.logger.Error("set pinned repos", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	writeJSON(w, http.StatusOK, repos)
}
