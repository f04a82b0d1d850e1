package server

import (
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/inovacc/trendr/internal/core"
	"github.com/inovacc/trendr/internal/encoding"
	"github.com/inovacc/trendr/internal/model"
)

//go:embed openapi.json
var openAPISpec []byte

// APIResponse is a generic API response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RepositoriesData is the payload of GET /api/repositories.
type RepositoriesData struct {
	Loading      bool               `json:"loading"`
	Error        string             `json:"error,omitempty"`
	Repositories []model.Repository `json:"repositories"`
}

// ToggleData is the payload of POST /api/repositories/{id}/star.
type ToggleData struct {
	ID                  int64              `json:"id"`
	IsStarred           bool               `json:"isStarred"`
	StarredRepositories []model.Repository `json:"starredRepositories"`
}

// handleListRepositories returns one tab, filtered and sorted
func (s *Server) handleListRepositories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortKey, err := core.ParseSortKey(q.Get("sort"))
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := s.rec.State()

	var list []model.Repository

	switch q.Get("tab") {
	case "", "all":
		list = view.AllRepositories
	case "starred":
		list = view.StarredRepositories
	default:
		s.jsonError(w, "tab must be all or starred", http.StatusBadRequest)
		return
	}

	filtered := core.Filter(list, core.FilterOptions{
		SearchTerm: q.Get("search"),
		Language:   q.Get("language"),
	})

	s.jsonResponse(w, APIResponse{
		Success: true,
		Data: RepositoriesData{
			Loading:      view.Loading,
			Error:        view.Error,
			Repositories: core.Sort(filtered, sortKey),
		},
	})
}

// handleListStarred returns the starred set in stored order
func (s *Server) handleListStarred(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, APIResponse{
		Success: true,
		Data:    s.rec.State().StarredRepositories,
	})
}

// handleToggleStar stars or unstars a repository known to the reconciler
func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.jsonError(w, "Invalid repository id", http.StatusBadRequest)
		return
	}

	starred, err := s.rec.ToggleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.jsonError(w, "Repository not found", http.StatusNotFound)
			return
		}

		s.logger.Error("star toggle failed",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
			slog.String("request_id", RequestID(r.Context())))
		s.jsonError(w, err.Error(), http.StatusInternalServerError)

		return
	}

	isStarred := slices.ContainsFunc(starred, func(repo model.Repository) bool { return repo.ID == id })

	message := "Repository unstarred"
	if isStarred {
		message = "Repository starred"
	}

	s.jsonResponse(w, APIResponse{
		Success: true,
		Message: message,
		Data: ToggleData{
			ID:                  id,
			IsStarred:           isStarred,
			StarredRepositories: starred,
		},
	})
}

// handleLanguages returns the distinct languages of the trending list
func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, APIResponse{
		Success: true,
		Data:    s.rec.Languages(),
	})
}

// handleRefresh refetches the trending list
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.rec.Refresh(r.Context())

	switch {
	case err == nil:
		s.jsonResponse(w, APIResponse{Success: true, Message: "Trending repositories refreshed"})
	case errors.Is(err, core.ErrStaleRefresh):
		s.jsonError(w, "Refresh superseded by a newer request", http.StatusConflict)
	default:
		s.jsonError(w, core.LoadErrorMessage, http.StatusBadGateway)
	}
}

// handleOpenAPI serves the embedded API description
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openAPISpec)
}

// handleHealth returns the health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(); err != nil {
			s.logger.Warn("health check failed", slog.String("error", err.Error()))
			s.jsonStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})

			return
		}
	}

	s.jsonStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	s.jsonStatus(w, http.StatusOK, data)
}

// jsonError writes a JSON error response
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonStatus(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

func (s *Server) jsonStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := encoding.WriteIndent(w, data); err != nil {
		s.logger.Error("JSON encode error", slog.String("error", err.Error()))
	}
}
