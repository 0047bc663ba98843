// Package plugin runs external score hooks. A hook is an executable in its
// own directory next to a plugin.json manifest; it receives one JSON request
// on stdin per event and answers with one JSON response on stdout.
package plugin

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/ayusman/hoopshot/internal/physics"
)

// Manifest describes a hook.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Executable  string `json:"executable"`
	// Events lists the event kinds the hook wants, e.g. "score".
	Events []string        `json:"events"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Request is sent to a hook on stdin.
type Request struct {
	Event   string          `json:"event"`
	Session string          `json:"session"`
	At      time.Time       `json:"at"`
	BallID  int             `json:"ballId"`
	Hoop    physics.Side    `json:"hoop"`
	Scorer  physics.Side    `json:"scorer"`
	Left    int             `json:"left"`
	Right   int             `json:"right"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// Response is read from a hook's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered hook.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the hook subscribed to event.
func (p *Plugin) Handles(event string) bool {
	return slices.Contains(p.Manifest.Events, event)
}
