// Package server provides the HTTP server for hoopshot: the game API, the
// snapshot websocket, the camera stream and the static front end.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/hoopshot/internal/capture"
	"github.com/ayusman/hoopshot/internal/server/api"
	"github.com/ayusman/hoopshot/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Game      api.Game
	Frames    *capture.FrameBuffer
}

// Server represents the HTTP server for the hoopshot application.
type Server struct {
	config Config
	mux    *http.ServeMux
	hub    *Hub
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		hub:    NewHub(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/snapshots", s.hub)

	if s.config.Game != nil {
		gameHandler := api.NewGameHandler(s.config.Game)
		for _, path := range []string{"/api/state", "/api/layout", "/api/reset", "/api/pause"} {
			s.mux.Handle(path, gameHandler)
		}
	}

	if s.config.Store != nil {
		calibrations := api.NewCalibrationHandler(s.config.Store, s.config.Game)
		s.mux.Handle("/api/calibrations", calibrations)
		s.mux.Handle("/api/calibrations/", calibrations)
	}

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Hub returns the snapshot broadcaster. Register it as a renderer to feed
// /api/snapshots.
func (s *Server) Hub() *Hub {
	return s.hub
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
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"viewers": s.hub.Clients(),
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
