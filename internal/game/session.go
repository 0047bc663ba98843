package game

import (
	"math/rand/v2"
	"time"

	"github.com/ayusman/hoopshot/internal/detector"
	"github.com/ayusman/hoopshot/internal/geom"
	"github.com/ayusman/hoopshot/internal/gesture"
	"github.com/ayusman/hoopshot/internal/physics"
)

// Session is one running game: the hand tracker, the world and the clock
// that paces physics ticks against frames. It is not safe for concurrent
// use; callers serialize Advance with the other methods.
type Session struct {
	config  Config
	tracker *gesture.Tracker
	world   *physics.World

	step  time.Duration
	last  time.Time
	acc   time.Duration
	frame uint64

	latest Snapshot
}

// NewSession creates a session and drops the balls in.
func NewSession(config Config) *Session {
	config = config.normalize()

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Session{
		config:  config,
		tracker: gesture.NewTracker(config.Tracker),
		world:   physics.NewWorld(config.Physics, config.Mode.Slots(), rng),
	}
	if config.TickRate > 0 {
		s.step = time.Second / time.Duration(config.TickRate)
	}
	s.latest = s.snapshot(time.Time{})
	return s
}

// Config returns the normalized session configuration.
func (s *Session) Config() Config {
	return s.config
}

// World returns the simulation.
func (s *Session) World() *physics.World {
	return s.world
}

// Tracker returns the hand tracker.
func (s *Session) Tracker() *gesture.Tracker {
	return s.tracker
}

// Advance processes one frame: the detection updates the hands once, the
// world runs as many ticks as the clock allows, then the release protocol
// sees the frame. Baskets made during those ticks are returned in order.
func (s *Session) Advance(now time.Time, det detector.Detection) (Snapshot, []physics.ScoreEvent) {
	s.frame++
	s.tracker.Update(now, det, geom.Size{W: s.config.Width, H: s.config.Height})
	hands := s.tracker.Hands()

	n, scale := s.ticks(now)
	if scale != 1 {
		for i := range hands {
			hands[i].ScaleVelocity(scale)
		}
	}

	var events []physics.ScoreEvent
	for ; n > 0; n-- {
		events = append(events, s.world.Simulate(now, hands)...)
	}
	s.world.UpdateGrips(now, hands)

	s.latest = s.snapshot(now)
	return s.latest.Clone(), events
}

// ticks returns how many physics ticks the frame at now owes, and the factor
// that converts per-frame hand velocities into per-tick ones. Elapsed time
// past MaxFrameDelta is dropped.
func (s *Session) ticks(now time.Time) (int, float64) {
	if s.step == 0 {
		return 1, 1
	}
	if s.last.IsZero() {
		s.last = now
		return 1, 1
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed <= 0 {
		return 0, 1
	}
	if elapsed > s.config.MaxFrameDelta {
		elapsed = s.config.MaxFrameDelta
	}
	s.acc += elapsed

	n := int(s.acc / s.step)
	s.acc -= time.Duration(n) * s.step
	return n, float64(s.step) / float64(elapsed)
}

// Snapshot returns the snapshot produced by the last Advance.
func (s *Session) Snapshot() Snapshot {
	return s.latest.Clone()
}

func (s *Session) snapshot(now time.Time) Snapshot {
	scores := s.world.Scores()
	return Snapshot{
		Frame:  s.frame,
		Tick:   s.world.Tick(),
		Time:   now,
		Mode:   s.config.Mode.String(),
		Width:  s.config.Width,
		Height: s.config.Height,
		Balls:  viewBalls(s.world.Balls().All()),
		Hands:  viewHands(s.tracker.Hands()),
		Hoops:  viewHoops(s.world.Hoops(), now),
		Scores: scores,
		Total:  scores.Total(),
	}
}

// Layout returns the rim-post calibration.
func (s *Session) Layout() physics.Layout {
	return s.world.Layout()
}

// SetLayout replaces the rim-post calibration from the next tick on.
func (s *Session) SetLayout(l physics.Layout) error {
	return s.world.SetLayout(l)
}

// Reset respawns the balls, zeroes the scores and forgets tracked hands.
func (s *Session) Reset() {
	s.world.Reset()
	s.tracker.Reset()
	s.acc = 0
	s.last = time.Time{}
	s.latest = s.snapshot(s.latest.Time)
}
