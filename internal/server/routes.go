package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/", s.handleRoot)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// API routes - Analysis
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.AnalyzeHandler)
	mux.HandleFunc("/api/analysis/export", s.app.AnalysisHandler.ExportHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Unmatched API paths get a JSON 404
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleRoot serves the dashboard for "/" and 404s everything else,
// since the root pattern on ServeMux is a catch-all.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.app.PageHandler.ServePage("index.html", "dashboard")(w, r)
}
