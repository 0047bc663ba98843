// Package gesture turns raw per-frame hand detections into smoothed,
// persistent hand poses with a pinch classification.
package gesture

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayusman/hoopshot/internal/geom"
)

// Mode selects how many hands are tracked.
type Mode int

const (
	// ModeSingle tracks one hand: the first one detected each frame.
	ModeSingle Mode = iota + 1
	// ModeDual tracks a left and a right hand, split at the display midline.
	ModeDual
)

// Slots returns the number of hand slots tracked in this mode.
func (m Mode) Slots() int {
	if m == ModeDual {
		return 2
	}
	return 1
}

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeDual:
		return "dual"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "single" or "dual" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1":
		return ModeSingle, nil
	case "dual", "2":
		return ModeDual, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Slot indices in dual mode.
const (
	SlotLeft  = 0
	SlotRight = 1
)

// Hand is the tracked state of one hand slot, in display coordinates.
type Hand struct {
	Slot     int
	Pos      geom.Vec2
	Vel      geom.Vec2
	Radius   float64
	Visible  bool
	Pinching bool
	LastSeen time.Time

	// Thumb and Index are the mapped fingertip positions, for display only.
	Thumb geom.Vec2
	Index geom.Vec2

	history []geom.Vec2
	histCap int
}

// Circle returns the hand's contact circle.
func (h *Hand) Circle() geom.Circle {
	return geom.Circle{Center: h.Pos, R: h.Radius}
}

// History returns a copy of the recent velocity samples, oldest first.
func (h *Hand) History() []geom.Vec2 {
	out := make([]geom.Vec2, len(h.history))
	copy(out, h.history)
	return out
}

// AverageVelocity averages the recorded velocity samples. It is the zero
// vector when no samples have been recorded.
func (h *Hand) AverageVelocity() geom.Vec2 {
	return geom.Mean(h.history)
}

// NewHand returns an undetected hand for slot with the given contact radius
// and velocity history capacity.
func NewHand(slot int, radius float64, historySize int) Hand {
	return Hand{
		Slot:    slot,
		Radius:  radius,
		histCap: historySize,
		history: make([]geom.Vec2, 0, historySize),
	}
}

// RecordVelocity records a velocity sample, evicting the oldest once the
// history is full.
func (h *Hand) RecordVelocity(v geom.Vec2) {
	if h.histCap <= 0 {
		return
	}
	if len(h.history) >= h.histCap {
		copy(h.history, h.history[1:])
		h.history = h.history[:h.histCap-1]
	}
	h.history = append(h.history, v)
}

// ScaleVelocity multiplies Vel and every recorded sample by f. Velocities are
// measured per detector frame; the simulation uses it to convert them to
// per-tick units.
func (h *Hand) ScaleVelocity(f float64) {
	h.Vel = h.Vel.Scale(f)
	for i := range h.history {
		h.history[i] = h.history[i].Scale(f)
	}
}

func (h *Hand) clearHistory() {
	h.history = h.history[:0]
}

// clone returns a deep copy so callers cannot alias the tracker's history.
func (h *Hand) clone() Hand {
	c := *h
	c.history = h.History()
	return c
}
