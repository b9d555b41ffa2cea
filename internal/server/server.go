// Package server provides the HTTP overlay surface for the bubble game:
// health, game-state snapshots, a camera stream and a settings API for
// external renderers and tuning tools.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/bubblepop/internal/app"
	"github.com/ayusman/bubblepop/internal/capture"
	"github.com/ayusman/bubblepop/internal/server/api"
	"github.com/ayusman/bubblepop/internal/store"
)

// Snapshotter yields the most recent published session snapshot.
type Snapshotter interface {
	Snapshot() app.Snapshot
}

// Config holds the server configuration. Nil/empty fields disable the
// corresponding endpoints.
type Config struct {
	StaticDir string
	Settings  *store.SettingsRepository
	Camera    capture.Camera
	Session   Snapshotter
}

// Server is the HTTP server of the bubble game overlay.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
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

	// Settings API needs the settings repository
	if s.config.Settings != nil {
		settingsHandler := api.NewSettingsHandler(s.config.Settings)
		s.mux.Handle("/api/settings", settingsHandler)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	// Snapshot endpoints need a running session
	if s.config.Session != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.Handle("/api/ws", NewSnapshotHandler(s.config.Session))
	}

	// Camera stream endpoint needs the camera
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Serve static files if StaticDir is configured
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

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Session != nil {
		snap := s.config.Session.Snapshot()
		response["session_id"] = snap.SessionID
		response["state"] = snap.State
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state and returns the most
// recent session snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.Session.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
