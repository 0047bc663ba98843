// Package api provides the HTTP handlers for game control and rim
// calibration.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/hoopshot/internal/game"
	"github.com/ayusman/hoopshot/internal/physics"
	"github.com/ayusman/hoopshot/internal/store"
)

// Game is the running game as the API sees it.
type Game interface {
	Snapshot() game.Snapshot
	Layout() physics.Layout
	SetLayout(l physics.Layout) error
	Reset()
	SetPaused(paused bool)
	IsPaused() bool
	ApplyCalibration(c *store.Calibration) error
	CurrentCalibration(name string) *store.Calibration
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
