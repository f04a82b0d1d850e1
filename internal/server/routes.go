package server

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Repositories
	mux.HandleFunc("GET /api/repositories", s.handleListRepositories)
	mux.HandleFunc("GET /api/starred", s.handleListStarred)
	mux.HandleFunc("POST /api/repositories/{id}/star", s.handleToggleStar)
	mux.HandleFunc("GET /api/languages", s.handleLanguages)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	// Docs
	mux.HandleFunc("GET /swagger/doc.json", s.handleOpenAPI)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// System
	mux.HandleFunc("GET /health", s.handleHealth)
}
