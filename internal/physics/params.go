// Package physics is the ball simulation: free-flight integration, the
// hand grab/release protocol, collision resolution against hands, rim posts,
// backboards, other balls and the play area, and basket detection.
//
// Units are display pixels and ticks. The package never returns errors from
// a tick: degenerate geometry is skipped rather than reported.
package physics

import "time"

// Params are the process-wide engine tunables.
type Params struct {
	// Gravity is added to vertical velocity every tick.
	Gravity float64
	// AirResistance multiplies linear and angular velocity every tick.
	AirResistance float64
	// Friction multiplies horizontal velocity on floor contact.
	Friction float64
	// Bounce is the restitution used by every bounce-type collision.
	Bounce float64
}

// DefaultParams returns the tuned engine constants.
func DefaultParams() Params {
	return Params{
		Gravity:       0.6,
		AirResistance: 0.995,
		Friction:      0.98,
		Bounce:        0.7,
	}
}

// Default world geometry and protocol values.
const (
	DefaultBallCount       = 10
	DefaultBallRadius      = 30.0
	DefaultBallMass        = 1.0
	DefaultReleaseGrace    = 500 * time.Millisecond
	DefaultShoveHandFactor = 0.6
	DefaultShoveImpulse    = 2.0
	DefaultSpawnSpeed      = 4.0
	DefaultSpawnSpin       = 0.05
)

// Config holds everything the world needs besides the hands.
type Config struct {
	Params Params

	// Width and Height are the play area in display pixels.
	Width  float64
	Height float64

	BallCount  int
	BallRadius float64
	BallMass   float64

	// ReleaseTicks is how many consecutive non-pinch frames release a ball.
	ReleaseTicks int
	// ReleaseMultiplier scales the averaged hand velocity on release.
	ReleaseMultiplier float64
	// ReleaseGrace is how long a released ball ignores the hand that threw it.
	ReleaseGrace time.Duration
	// SpinFactor converts horizontal release velocity into spin (negated).
	// Zero imparts no spin.
	SpinFactor float64

	// ShoveOnContact makes a visible, empty hand push balls it touches.
	// When false, contact without a grab does nothing.
	ShoveOnContact  bool
	ShoveHandFactor float64
	ShoveImpulse    float64

	// BackboardCollision enables ball-backboard resolution.
	BackboardCollision bool

	// ScoreDamping multiplies a ball's velocity when it scores. Zero or 1 leaves
	// it unchanged.
	ScoreDamping float64
	// FlashDuration is how long a hoop reports a flash after a basket.
	FlashDuration time.Duration

	// SpawnSpeed bounds the random horizontal velocity of new balls.
	SpawnSpeed float64
	// SpawnSpin bounds the random spin of new balls.
	SpawnSpin float64
}

// DefaultConfig returns the single-hand world configuration for a play area
// of the given size.
func DefaultConfig(width, height float64) Config {
	return Config{
		Params:            DefaultParams(),
		Width:             width,
		Height:            height,
		BallCount:         DefaultBallCount,
		BallRadius:        DefaultBallRadius,
		BallMass:          DefaultBallMass,
		ReleaseTicks:      4,
		ReleaseMultiplier: 1.5,
		ReleaseGrace:      DefaultReleaseGrace,
		ShoveOnContact:    true,
		ShoveHandFactor:   DefaultShoveHandFactor,
		ShoveImpulse:      DefaultShoveImpulse,
		ScoreDamping:      1,
		SpawnSpeed:        DefaultSpawnSpeed,
		SpawnSpin:         DefaultSpawnSpin,
	}
}
