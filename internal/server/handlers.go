package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"newsdesk/internal/auth"
	"newsdesk/internal/bookmarks"
	"newsdesk/internal/models"
	"newsdesk/internal/summarizer"
)

const defaultCategory = "technology"

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = defaultCategory
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, r, http.StatusBadRequest, "page must be a positive integer")

			return
		}
		page = parsed
	}

	articles, err := s.source.Headlines(r.Context(), category, page)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to fetch news",
			"error", err,
			"category", category,
			"page", page)
		s.writeError(w, r, http.StatusInternalServerError, err.Error())

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"articles": articles})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")

		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), summarizer.Input{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to generate summary",
			"error", err,
			"title", req.Title)
		s.writeError(w, r, http.StatusInternalServerError, "Failed to generate summary")

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"summary": summary})
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string          `json:"userId"`
		Article *models.Article `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")

		return
	}

	if req.UserID == "" || req.Article == nil {
		s.writeError(w, r, http.StatusBadRequest, "Missing userId or article")

		return
	}

	if err := s.bookmarks.Add(r.Context(), req.UserID, req.Article); err != nil {
		if errors.Is(err, bookmarks.ErrInvalidRequest) {
			s.writeError(w, r, http.StatusBadRequest, "Missing userId or article")

			return
		}

		s.writeError(w, r, http.StatusInternalServerError, "Failed to save bookmark")

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"message": "Bookmark saved!"})
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	articles, err := s.bookmarks.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to fetch bookmarks")

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"bookmarks": articles})
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	articleTitle := r.PathValue("articleTitle")

	if err := s.bookmarks.Remove(r.Context(), userID, articleTitle); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to remove bookmark")

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"message": "Bookmark removed!"})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")

		return
	}

	session, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err)

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"userId": session.UserID,
		"token":  session.Token,
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")

		return
	}

	session, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err)

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"userId": session.UserID,
		"token":  session.Token,
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")

		return
	}

	if err := s.auth.SignOut(r.Context(), req.Token); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to sign out")

		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{"message": "Signed out"})
}

func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailInUse):
		s.writeError(w, r, http.StatusConflict,
			"This email is already registered. Try logging in instead.")
	case errors.Is(err, auth.ErrInvalidEmail):
		s.writeError(w, r, http.StatusBadRequest,
			"Please enter a valid email address")
	case errors.Is(err, auth.ErrUserNotFound):
		s.writeError(w, r, http.StatusNotFound,
			"No account found with this email. Please register first.")
	case errors.Is(err, auth.ErrWrongPassword):
		s.writeError(w, r, http.StatusUnauthorized,
			"Incorrect password. Please try again.")
	case errors.Is(err, auth.ErrTooManyAttempts):
		s.writeError(w, r, http.StatusTooManyRequests,
			"Too many failed login attempts. Please try again later.")
	default:
		s.writeError(w, r, http.StatusInternalServerError,
			"Authentication failed: "+err.Error())
	}
}

func (s *Server) writeJSON(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	body any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to encode response",
			"error", err,
			"path", r.URL.Path)
	}
}

func (s *Server) writeError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
) {
	s.writeJSON(w, r, status, map[string]any{"error": message})
}
