package physics

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ayusman/hoopshot/internal/gesture"
)

// World is the simulation state: balls, hoops, the grip table and scores.
// It is not safe for concurrent use.
type World struct {
	config Config
	rng    *rand.Rand

	balls  *Registry
	hoops  [2]Hoop
	grips  []Grip
	scores Scores
	tick   uint64
}

// NewWorld creates a world for the given number of hand slots and drops the
// balls in from above.
func NewWorld(config Config, slots int, rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	w := &World{
		config: config,
		rng:    rng,
		balls:  NewRegistry(config.BallCount, config.BallRadius, config.BallMass),
		hoops:  DefaultHoops(config.Width, config.Height),
		grips:  make([]Grip, slots),
	}
	for i := range w.grips {
		w.grips[i] = freeGrip()
	}
	w.balls.Spawn(rng, config.Width, config.SpawnSpeed, config.SpawnSpin)
	return w
}

// Config returns the world configuration.
func (w *World) Config() Config {
	return w.config
}

// Balls returns the ball registry.
func (w *World) Balls() *Registry {
	return w.balls
}

// Hoops returns a copy of both hoops.
func (w *World) Hoops() [2]Hoop {
	return w.hoops
}

// Scores returns the current tally.
func (w *World) Scores() Scores {
	return w.scores
}

// Tick returns how many ticks have run.
func (w *World) Tick() uint64 {
	return w.tick
}

// Grip returns hand slot's grip table entry.
func (w *World) Grip(slot int) Grip {
	if slot < 0 || slot >= len(w.grips) {
		return freeGrip()
	}
	return w.grips[slot]
}

// Layout returns the current rim-post positions.
func (w *World) Layout() Layout {
	return LayoutOf(w.hoops)
}

// SetLayout moves the rim posts. It takes effect on the next tick.
func (w *World) SetLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.apply(&w.hoops)
	return nil
}

// Reset drops every ball back in, frees all grips and zeroes the scores.
// The rim layout is kept.
func (w *World) Reset() {
	for i := range w.grips {
		w.grips[i] = freeGrip()
	}
	w.balls.Spawn(w.rng, w.config.Width, w.config.SpawnSpeed, w.config.SpawnSpin)
	w.scores = Scores{}
	for i := range w.hoops {
		w.hoops[i].FlashUntil = time.Time{}
	}
}

// Step runs one frame that owes exactly one tick: Simulate, then
// UpdateGrips. A ball released during the frame is not integrated until the
// next one.
func (w *World) Step(now time.Time, hands []gesture.Hand) []ScoreEvent {
	events := w.Simulate(now, hands)
	w.UpdateGrips(now, hands)
	return events
}

// Simulate advances the simulation by one tick against the given hands,
// indexed by slot, and returns any baskets made during the tick. Hand
// velocities are expected in per-tick units.
func (w *World) Simulate(now time.Time, hands []gesture.Hand) []ScoreEvent {
	w.tick++

	w.updateBalls(hands)
	w.resolveHands(hands, now)
	w.resolveRims()
	if w.config.BackboardCollision {
		w.resolveBackboards()
	}
	w.resolveBalls()
	return w.detectScores(now)
}

// UpdateGrips runs the release protocol once for every hand that holds a
// ball. It is called once per observed frame, so ReleaseTicks counts frames
// however many ticks each frame owes.
func (w *World) UpdateGrips(now time.Time, hands []gesture.Hand) {
	for slot := range w.grips {
		if w.grips[slot].State == GripFree {
			continue
		}
		w.advanceGrip(slot, handAt(hands, slot), now)
	}
}

// updateBalls moves held balls with their hands; every other ball is
// integrated in free flight.
func (w *World) updateBalls(hands []gesture.Hand) {
	for i := 0; i < w.balls.Len(); i++ {
		b := w.balls.At(i)
		if !b.Held() {
			integrate(b, w.config.Params, w.config.Width, w.config.Height)
			continue
		}

		if hand := handAt(hands, b.Holder); hand != nil {
			b.Pos = hand.Pos
			b.Vel = hand.Vel
		}
		b.Spin = 0
	}
}

func handAt(hands []gesture.Hand, slot int) *gesture.Hand {
	if slot < 0 || slot >= len(hands) {
		return nil
	}
	return &hands[slot]
}

// CheckInvariants verifies that the grip table and the balls' holder
// back-references agree: each ball has at most one holder and each hand at
// most one ball.
func (w *World) CheckInvariants() error {
	for slot, g := range w.grips {
		if g.State == GripFree {
			if g.Ball != NoBall {
				return fmt.Errorf("slot %d: free grip references ball %d", slot, g.Ball)
			}
			continue
		}
		b := w.balls.At(g.Ball)
		if b == nil {
			return fmt.Errorf("slot %d: grip references missing ball %d", slot, g.Ball)
		}
		if b.Holder != slot {
			return fmt.Errorf("slot %d: ball %d holder is %d", slot, g.Ball, b.Holder)
		}
	}
	for i := 0; i < w.balls.Len(); i++ {
		b := w.balls.At(i)
		if !b.Held() {
			continue
		}
		if b.Holder < 0 || b.Holder >= len(w.grips) {
			return fmt.Errorf("ball %d: holder %d out of range", i, b.Holder)
		}
		g := w.grips[b.Holder]
		if g.State == GripFree || g.Ball != i {
			return fmt.Errorf("ball %d: slot %d grip is %s with ball %d", i, b.Holder, g.State, g.Ball)
		}
	}
	return nil
}
