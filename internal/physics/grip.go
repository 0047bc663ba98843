package physics

import (
	"time"

	"github.com/ayusman/hoopshot/internal/gesture"
)

// GripState is a hand slot's position in the grab/release protocol.
type GripState int

const (
	// GripFree means the hand holds nothing.
	GripFree GripState = iota
	// GripHeld means the hand holds a ball and is pinching.
	GripHeld
	// GripReleasing means the hand holds a ball but has stopped pinching;
	// the ball is let go once the counter reaches the release threshold.
	GripReleasing
)

func (s GripState) String() string {
	switch s {
	case GripHeld:
		return "held"
	case GripReleasing:
		return "releasing"
	default:
		return "free"
	}
}

// NoBall marks a grip that holds nothing.
const NoBall = -1

// Grip is one hand slot's entry in the grip table.
type Grip struct {
	State   GripState
	Ball    int
	Counter int
}

func freeGrip() Grip {
	return Grip{State: GripFree, Ball: NoBall}
}

// grab attaches ball i to hand slot. Both sides of the relation change
// together.
func (w *World) grab(slot, i int) {
	b := w.balls.At(i)
	w.grips[slot] = Grip{State: GripHeld, Ball: i}
	b.Holder = slot
	b.Spin = 0
}

// release lets go of whatever slot holds, throwing it with the hand's
// averaged recent velocity. A nil hand throws with zero velocity.
func (w *World) release(slot int, hand *gesture.Hand, now time.Time) {
	g := w.grips[slot]
	w.grips[slot] = freeGrip()

	b := w.balls.At(g.Ball)
	if b == nil {
		return
	}
	b.Holder = NoHolder
	b.Vel = zeroVec
	if hand != nil {
		b.Vel = hand.AverageVelocity().Scale(w.config.ReleaseMultiplier)
	}
	b.Spin = -b.Vel.X * w.config.SpinFactor
	b.IgnoreHand = slot
	b.IgnoreUntil = now.Add(w.config.ReleaseGrace)
}

// advanceGrip runs one frame of the protocol for a slot that holds a ball.
func (w *World) advanceGrip(slot int, hand *gesture.Hand, now time.Time) {
	g := &w.grips[slot]
	if g.State == GripFree {
		return
	}
	if hand != nil && hand.Pinching {
		g.State = GripHeld
		g.Counter = 0
		return
	}
	g.State = GripReleasing
	g.Counter++
	if g.Counter >= w.config.ReleaseTicks {
		w.release(slot, hand, now)
	}
}
