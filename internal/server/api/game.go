package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/hoopshot/internal/physics"
)

// GameHandler serves the live game state and its controls:
//
//	GET       /api/state   latest snapshot
//	GET, PUT  /api/layout  rim-post positions
//	POST      /api/reset   respawn balls and zero the score
//	GET, PUT  /api/pause   pause state
type GameHandler struct {
	game Game
}

// NewGameHandler creates a GameHandler for g.
func NewGameHandler(g Game) *GameHandler {
	return &GameHandler{game: g}
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

type pauseResponse struct {
	Paused bool `json:"paused"`
}

// ServeHTTP routes by path.
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/state":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, h.game.Snapshot())

	case "/api/layout":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.game.Layout())
		case http.MethodPut:
			h.setLayout(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	case "/api/reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.game.Reset()
		writeJSON(w, http.StatusOK, h.game.Snapshot())

	case "/api/pause":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, pauseResponse{Paused: h.game.IsPaused()})
		case http.MethodPut:
			var req pauseRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid JSON")
				return
			}
			h.game.SetPaused(req.Paused)
			writeJSON(w, http.StatusOK, pauseResponse{Paused: h.game.IsPaused()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}

	default:
		http.NotFound(w, r)
	}
}

func (h *GameHandler) setLayout(w http.ResponseWriter, r *http.Request) {
	var l physics.Layout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.game.SetLayout(l); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.game.Layout())
}
