package capture

import "time"

// Frame rates and the idle timeout used by the capture loop.
const (
	IdleFPS     = 5
	ActiveFPS   = 30
	IdleTimeout = 2 * time.Second
)

// Pacer picks the capture rate: active while there is motion or a hand in
// view, idle once neither has been seen for the idle timeout.
type Pacer struct {
	IdleFPS     int
	ActiveFPS   int
	IdleTimeout time.Duration

	active   bool
	lastSeen time.Time
}

// NewPacer returns a pacer using the default rates, starting idle.
func NewPacer() *Pacer {
	return &Pacer{
		IdleFPS:     IdleFPS,
		ActiveFPS:   ActiveFPS,
		IdleTimeout: IdleTimeout,
	}
}

// Observe records one frame's activity and returns the rate to use next.
// changed reports whether the rate differs from the previous frame's.
func (p *Pacer) Observe(now time.Time, motion, handVisible bool) (fps int, changed bool) {
	if motion || handVisible {
		p.lastSeen = now
		if !p.active {
			p.active = true
			return p.ActiveFPS, true
		}
		return p.ActiveFPS, false
	}

	if p.active && now.Sub(p.lastSeen) > p.IdleTimeout {
		p.active = false
		return p.IdleFPS, true
	}
	return p.FPS(), false
}

// Active reports whether the pacer is in the active state.
func (p *Pacer) Active() bool {
	return p.active
}

// FPS returns the current rate.
func (p *Pacer) FPS() int {
	if p.active {
		return p.ActiveFPS
	}
	return p.IdleFPS
}

// Interval returns the frame interval for the current rate.
func (p *Pacer) Interval() time.Duration {
	return time.Second / time.Duration(p.FPS())
}
