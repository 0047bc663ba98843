package physics

import "time"

// Scores is the per-side basket tally.
type Scores struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Total returns the combined tally.
func (s Scores) Total() int {
	return s.Left + s.Right
}

func (s *Scores) add(side Side) {
	if side == SideLeft {
		s.Left++
	} else {
		s.Right++
	}
}

// ScoreEvent describes one basket.
type ScoreEvent struct {
	Tick   uint64    `json:"tick"`
	At     time.Time `json:"at"`
	BallID int       `json:"ballId"`
	// Hoop is the side whose hoop the ball went through.
	Hoop Side `json:"hoop"`
	// Scorer is the side credited with the point.
	Scorer Side   `json:"scorer"`
	Scores Scores `json:"scores"`
}

// detectScores credits a basket for every free, unscored ball crossing a
// rim plane downward inside the scoring window.
func (w *World) detectScores(now time.Time) []ScoreEvent {
	var events []ScoreEvent
	for hi := range w.hoops {
		hoop := &w.hoops[hi]
		center := hoop.RimCenter()
		rimTop := hoop.Y
		rimBottom := hoop.Y + hoop.RimRadiusY

		for i := 0; i < w.balls.Len(); i++ {
			b := w.balls.At(i)
			if b.Held() || b.Scored {
				continue
			}
			inWindow := b.Pos.X > center.X-hoop.RimRadiusX && b.Pos.X < center.X+hoop.RimRadiusX
			spansRim := b.Pos.Y-b.Radius < rimTop && b.Pos.Y+b.Radius > rimBottom
			if !inWindow || !spansRim || b.Vel.Y <= 0 {
				continue
			}

			b.Scored = true
			scorer := hoop.Side.Opposite()
			w.scores.add(scorer)
			if d := w.config.ScoreDamping; d > 0 && d != 1 {
				b.Vel = b.Vel.Scale(d)
			}
			if w.config.FlashDuration > 0 {
				hoop.FlashUntil = now.Add(w.config.FlashDuration)
			}

			events = append(events, ScoreEvent{
				Tick:   w.tick,
				At:     now,
				BallID: b.ID,
				Hoop:   hoop.Side,
				Scorer: scorer,
				Scores: w.scores,
			})
		}
	}
	return events
}
