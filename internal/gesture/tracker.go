package gesture

import (
	"time"

	"github.com/ayusman/hoopshot/internal/detector"
	"github.com/ayusman/hoopshot/internal/geom"
)

// Tracker defaults.
const (
	DefaultPinchThreshold = 30.0
	DefaultSmoothing      = 0.5
	DefaultPersistence    = 150 * time.Millisecond
	DefaultCoastFactor    = 0.5
	DefaultHandRadius     = 70.0
	DefaultHistorySize    = 3
)

// Config holds the tracker tunables.
type Config struct {
	Mode Mode

	// PinchThreshold is the maximum thumb-to-index distance, in raw detector
	// pixels, that counts as a pinch.
	PinchThreshold float64

	// Smoothing is the exponential smoothing factor. 1.0 disables smoothing.
	Smoothing float64

	// Persistence is how long a hand stays visible, coasting, after its last
	// real detection.
	Persistence time.Duration

	// CoastFactor scales the last velocity while coasting.
	CoastFactor float64

	HandRadius  float64
	HistorySize int

	// SnapOnAcquire places a hand that was not visible directly on its first
	// target with no velocity. When false every detection, including the
	// first, records target-Pos and smooths toward the target.
	SnapOnAcquire bool
}

// DefaultConfig returns the single-hand tracker configuration.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeSingle,
		PinchThreshold: DefaultPinchThreshold,
		Smoothing:      DefaultSmoothing,
		Persistence:    DefaultPersistence,
		CoastFactor:    DefaultCoastFactor,
		HandRadius:     DefaultHandRadius,
		HistorySize:    DefaultHistorySize,
		SnapOnAcquire:  true,
	}
}

// Tracker owns the hand slots and updates them from raw detections.
type Tracker struct {
	config Config
	hands  []Hand
}

// NewTracker creates a tracker with one slot per hand the mode allows.
func NewTracker(config Config) *Tracker {
	if config.Mode == 0 {
		config.Mode = ModeSingle
	}
	t := &Tracker{config: config}
	t.Reset()
	return t
}

// Config returns the tracker configuration.
func (t *Tracker) Config() Config {
	return t.config
}

// Reset returns every slot to the undetected state.
func (t *Tracker) Reset() {
	t.hands = make([]Hand, t.config.Mode.Slots())
	for i := range t.hands {
		t.hands[i] = NewHand(i, t.config.HandRadius, t.config.HistorySize)
	}
}

// Len returns the number of hand slots.
func (t *Tracker) Len() int {
	return len(t.hands)
}

// Hand returns the live state of slot i, or nil when out of range.
func (t *Tracker) Hand(i int) *Hand {
	if i < 0 || i >= len(t.hands) {
		return nil
	}
	return &t.hands[i]
}

// Hands returns copies of every slot.
func (t *Tracker) Hands() []Hand {
	out := make([]Hand, len(t.hands))
	for i := range t.hands {
		out[i] = t.hands[i].clone()
	}
	return out
}

// observation is one usable detected hand, mapped into display space.
type observation struct {
	target geom.Vec2
	thumb  geom.Vec2
	index  geom.Vec2
	pinch  bool
}

// observe reads the thumb and index tips of a detected hand. It reports false
// when either keypoint is missing.
func (t *Tracker) observe(lm *detector.HandLandmarks, fit geom.CoverFit) (observation, bool) {
	thumb, ok := lm.Keypoint(detector.ThumbTip)
	if !ok {
		return observation{}, false
	}
	index, ok := lm.Keypoint(detector.IndexTip)
	if !ok {
		return observation{}, false
	}

	rawThumb := geom.V(thumb.X, thumb.Y)
	rawIndex := geom.V(index.X, index.Y)

	return observation{
		target: fit.Map(geom.Midpoint(rawThumb, rawIndex)),
		thumb:  fit.Map(rawThumb),
		index:  fit.Map(rawIndex),
		pinch:  rawThumb.Dist(rawIndex) < t.config.PinchThreshold,
	}, true
}

// slotFor picks the slot for a mapped target. In dual mode the choice is
// purely positional, so a hand crossing the midline changes slot.
func (t *Tracker) slotFor(target geom.Vec2, view geom.Size) int {
	if t.config.Mode != ModeDual {
		return 0
	}
	if target.X < view.W/2 {
		return SlotLeft
	}
	return SlotRight
}

// Update advances every slot by one frame of detections. view is the display
// size the hands are mapped into.
func (t *Tracker) Update(now time.Time, det detector.Detection, view geom.Size) {
	fit := geom.NewCoverFit(geom.Size{W: det.SourceWidth, H: det.SourceHeight}, view)

	seen := make([]bool, len(t.hands))
	invalid := false

	for i := range det.Hands {
		obs, ok := t.observe(&det.Hands[i], fit)
		if !ok {
			continue
		}
		if !obs.target.IsFinite() {
			invalid = true
			continue
		}

		slot := t.slotFor(obs.target, view)
		if seen[slot] {
			continue
		}
		seen[slot] = true
		t.detected(&t.hands[slot], obs, now)
	}

	for i := range t.hands {
		if seen[i] {
			continue
		}
		if invalid {
			t.suppress(&t.hands[i])
			continue
		}
		t.absent(&t.hands[i], now)
	}
}

// detected applies a real detection to h.
func (t *Tracker) detected(h *Hand, obs observation, now time.Time) {
	h.Pinching = obs.pinch
	h.Thumb = obs.thumb
	h.Index = obs.index

	if !h.Visible && t.config.SnapOnAcquire {
		h.Pos = obs.target
		h.Vel = geom.Vec2{}
		h.clearHistory()
	} else {
		h.Vel = obs.target.Sub(h.Pos)
		h.RecordVelocity(h.Vel)
		h.Pos = h.Pos.Lerp(obs.target, t.config.Smoothing)
	}

	h.Visible = true
	h.LastSeen = now
}

// absent handles a frame without a detection for h: coast within the
// persistence window, then disappear.
func (t *Tracker) absent(h *Hand, now time.Time) {
	h.Pinching = false

	if !h.LastSeen.IsZero() && now.Sub(h.LastSeen) < t.config.Persistence {
		h.Visible = true
		h.Pos = h.Pos.Add(h.Vel.Scale(t.config.CoastFactor))
		return
	}

	h.Visible = false
	h.Vel = geom.Vec2{}
}

// suppress hides h after a frame whose geometry could not be mapped.
func (t *Tracker) suppress(h *Hand) {
	h.Visible = false
	h.Pinching = false
	h.Vel = geom.Vec2{}
	h.LastSeen = time.Time{}
}
