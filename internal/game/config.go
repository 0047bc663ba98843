// Package game ties hand tracking and the ball simulation into a frame-driven
// session and produces render snapshots.
package game

import (
	"time"

	"github.com/ayusman/hoopshot/internal/gesture"
	"github.com/ayusman/hoopshot/internal/physics"
)

// Default play area when none is configured.
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 720.0
)

// DefaultMaxFrameDelta is the longest frame the clock catches up on. It
// covers the idle capture rate with room to spare.
const DefaultMaxFrameDelta = 250 * time.Millisecond

// Config bundles everything a session needs.
type Config struct {
	Mode gesture.Mode

	// Width and Height are the display size hands are mapped into and the
	// play area the balls live in.
	Width  float64
	Height float64

	BallCount int

	// TickRate is the physics rate in ticks per second. Zero runs exactly
	// one tick per frame regardless of elapsed time.
	TickRate int
	// MaxFrameDelta bounds catch-up after a slow frame; elapsed time past it
	// is dropped.
	MaxFrameDelta time.Duration

	// Seed seeds ball spawning. Zero seeds from the clock.
	Seed uint64

	Tracker gesture.Config
	Physics physics.Config
}

// SingleHandConfig is the one-hand variant: a strong throw, contact shoves
// balls and a single combined score.
func SingleHandConfig() Config {
	tracker := gesture.DefaultConfig()
	tracker.Mode = gesture.ModeSingle

	return Config{
		Mode:          gesture.ModeSingle,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		BallCount:     physics.DefaultBallCount,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Tracker:       tracker,
		Physics:       physics.DefaultConfig(DefaultWidth, DefaultHeight),
	}
}

// DualHandConfig is the two-hand variant: soft throws with spin, no shove,
// damped baskets and a hoop flash.
func DualHandConfig() Config {
	c := SingleHandConfig()
	c.Mode = gesture.ModeDual
	c.Tracker.Mode = gesture.ModeDual

	c.Physics.ReleaseTicks = 3
	c.Physics.ReleaseMultiplier = 0.2
	c.Physics.SpinFactor = 0.02
	c.Physics.ShoveOnContact = false
	c.Physics.ScoreDamping = 0.5
	c.Physics.FlashDuration = 600 * time.Millisecond
	return c
}

// ConfigForMode returns the preset for mode.
func ConfigForMode(mode gesture.Mode) Config {
	if mode == gesture.ModeDual {
		return DualHandConfig()
	}
	return SingleHandConfig()
}

// normalize copies the top-level fields into the nested configs.
func (c Config) normalize() Config {
	if c.Mode == 0 {
		c.Mode = gesture.ModeSingle
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if c.BallCount <= 0 {
		c.BallCount = physics.DefaultBallCount
	}
	if c.Tracker == (gesture.Config{}) {
		c.Tracker = gesture.DefaultConfig()
	}
	if c.Physics == (physics.Config{}) {
		c.Physics = physics.DefaultConfig(c.Width, c.Height)
	}
	c.Tracker.Mode = c.Mode
	c.Physics.Width = c.Width
	c.Physics.Height = c.Height
	c.Physics.BallCount = c.BallCount
	return c
}
