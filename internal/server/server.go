// Package server provides the HTTP tuning and diagnostics surface for
// the irpoint tracking daemon.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/irpoint/internal/app"
	"github.com/ayusman/irpoint/internal/capture"
	"github.com/ayusman/irpoint/internal/server/api"
	"github.com/ayusman/irpoint/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	App       *app.App
}

// Server represents the HTTP server for the irpoint daemon.
type Server struct {
	config   Config
	mux      *http.ServeMux
	tracking *TrackingHandler
	start    time.Time
}

// New creates a new Server with the given configuration. If an App is
// configured, its per-cycle telemetry is forwarded to the tracking
// websocket.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		var applier api.ProfileApplier
		if s.config.App != nil {
			applier = s.config.App
		}
		profileHandler := api.NewProfileHandler(s.config.Store, applier)
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	s.tracking = NewTrackingHandler()
	s.mux.Handle("/api/tracking", s.tracking)
	if s.config.App != nil {
		s.config.App.OnCycle(s.tracking.Publish)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
