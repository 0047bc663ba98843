package physics

import (
	"math/rand/v2"
	"time"

	"github.com/ayusman/hoopshot/internal/geom"
)

// NoHolder marks a ball that no hand is holding.
const NoHolder = -1

// Ball is one simulated ball.
type Ball struct {
	ID       int
	Pos      geom.Vec2
	Vel      geom.Vec2
	Radius   float64
	Mass     float64
	Rotation float64
	Spin     float64

	// Scored blocks repeat baskets until the ball next touches the floor.
	Scored bool

	// Holder is the hand slot holding the ball, or NoHolder.
	Holder int

	// IgnoreHand and IgnoreUntil form the post-release grace window: the
	// ball ignores contact with hand slot IgnoreHand until IgnoreUntil.
	IgnoreHand  int
	IgnoreUntil time.Time
}

// Held reports whether a hand is holding the ball.
func (b *Ball) Held() bool {
	return b.Holder != NoHolder
}

// Circle returns the ball's collision circle.
func (b *Ball) Circle() geom.Circle {
	return geom.Circle{Center: b.Pos, R: b.Radius}
}

// ignoring reports whether the ball is still in its grace window for slot.
func (b *Ball) ignoring(slot int, now time.Time) bool {
	return b.IgnoreHand == slot && now.Before(b.IgnoreUntil)
}

// Registry owns the fixed pool of balls. Balls are addressed by index and
// are never removed.
type Registry struct {
	balls []Ball
}

// NewRegistry creates count balls of the given radius and mass, all at the
// origin and at rest.
func NewRegistry(count int, radius, mass float64) *Registry {
	r := &Registry{balls: make([]Ball, count)}
	for i := range r.balls {
		r.balls[i] = Ball{
			ID:         i,
			Radius:     radius,
			Mass:       mass,
			Holder:     NoHolder,
			IgnoreHand: NoHolder,
		}
	}
	return r
}

// Len returns the number of balls.
func (r *Registry) Len() int {
	return len(r.balls)
}

// At returns ball i, or nil when out of range.
func (r *Registry) At(i int) *Ball {
	if i < 0 || i >= len(r.balls) {
		return nil
	}
	return &r.balls[i]
}

// All returns a copy of every ball.
func (r *Registry) All() []Ball {
	out := make([]Ball, len(r.balls))
	copy(out, r.balls)
	return out
}

// Spawn drops every ball in from above the play area.
func (r *Registry) Spawn(rng *rand.Rand, width, speed, spin float64) {
	for i := range r.balls {
		r.Respawn(i, rng, width, speed, spin)
	}
}

// Respawn drops ball i in from above the play area at a random x with a
// small random horizontal velocity and spin.
func (r *Registry) Respawn(i int, rng *rand.Rand, width, speed, spin float64) {
	b := r.At(i)
	if b == nil {
		return
	}
	*b = Ball{
		ID:         b.ID,
		Radius:     b.Radius,
		Mass:       b.Mass,
		Pos:        geom.V(rng.Float64()*width, -b.Radius),
		Vel:        geom.V(rng.Float64()*2*speed-speed, 0),
		Spin:       rng.Float64()*2*spin - spin,
		Holder:     NoHolder,
		IgnoreHand: NoHolder,
	}
}

// integrate advances a free ball by one tick and clamps it to the play area.
func integrate(b *Ball, p Params, width, height float64) {
	b.Vel.Y += p.Gravity

	b.Vel = b.Vel.Scale(p.AirResistance)
	b.Spin *= p.AirResistance

	b.Pos = b.Pos.Add(b.Vel)
	b.Rotation += b.Spin

	clampToBounds(b, p, width, height)
}

// clampToBounds keeps a ball inside the play area, bouncing off the walls,
// floor and ceiling. Floor contact also applies friction and rearms scoring.
func clampToBounds(b *Ball, p Params, width, height float64) {
	r := b.Radius

	if b.Pos.X+r > width {
		b.Pos.X = width - r
		b.Vel.X *= -p.Bounce
	} else if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X *= -p.Bounce
	}

	if b.Pos.Y+r > height {
		b.Pos.Y = height - r
		b.Vel.Y *= -p.Bounce
		b.Vel.X *= p.Friction
		b.Scored = false
	} else if b.Pos.Y-r < 0 {
		b.Pos.Y = r
		b.Vel.Y *= -p.Bounce
	}
}
