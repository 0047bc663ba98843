package physics

import (
	"time"

	"github.com/ayusman/hoopshot/internal/geom"
	"github.com/ayusman/hoopshot/internal/gesture"
)

var zeroVec geom.Vec2

// resolveHands grabs or shoves free balls touching visible hands.
func (w *World) resolveHands(hands []gesture.Hand, now time.Time) {
	for slot := range hands {
		if slot >= len(w.grips) {
			break
		}
		h := &hands[slot]
		if !h.Visible {
			continue
		}
		for i := 0; i < w.balls.Len(); i++ {
			b := w.balls.At(i)
			if b.Held() || b.ignoring(slot, now) {
				continue
			}

			d := b.Pos.Sub(h.Pos)
			dist := d.Len()
			minDist := b.Radius + h.Radius
			if dist >= minDist {
				continue
			}

			if w.grips[slot].State != GripFree {
				continue
			}
			if h.Pinching {
				w.grab(slot, i)
				continue
			}
			if !w.config.ShoveOnContact || dist == 0 {
				continue
			}

			n := d.Scale(1 / dist)
			b.Pos = b.Pos.Add(n.Scale((minDist - dist) * 0.5))
			b.Vel = b.Vel.
				Add(h.Vel.Scale(w.config.ShoveHandFactor)).
				Add(n.Scale(w.config.ShoveImpulse))
		}
	}
}

// resolveRims bounces free balls off each hoop's rim posts, left post first.
func (w *World) resolveRims() {
	bounce := w.config.Params.Bounce
	for hi := range w.hoops {
		hoop := &w.hoops[hi]
		for i := 0; i < w.balls.Len(); i++ {
			b := w.balls.At(i)
			if b.Held() {
				continue
			}
			for _, post := range []geom.Circle{hoop.PostLeft, hoop.PostRight} {
				c, ok := geom.Overlap(post, b.Circle())
				if !ok {
					continue
				}
				b.Pos = b.Pos.Add(c.Normal.Scale(c.Depth))
				b.Vel = b.Vel.Reflect(c.Normal).Scale(bounce)
			}
		}
	}
}

// resolveBackboards pushes free balls out of each hoop's backboard and
// reflects the approaching velocity component.
func (w *World) resolveBackboards() {
	bounce := w.config.Params.Bounce
	for hi := range w.hoops {
		board := w.hoops[hi].Backboard
		for i := 0; i < w.balls.Len(); i++ {
			b := w.balls.At(i)
			if b.Held() {
				continue
			}
			c, ok := geom.CircleRect(b.Circle(), board)
			if !ok {
				continue
			}
			b.Pos = b.Pos.Add(c.Normal.Scale(c.Depth))
			if vn := b.Vel.Dot(c.Normal); vn < 0 {
				b.Vel = b.Vel.Sub(c.Normal.Scale((1 + bounce) * vn))
			}
		}
	}
}

// resolveBalls separates every overlapping pair of balls and exchanges an
// impulse when they are approaching.
func (w *World) resolveBalls() {
	e := w.config.Params.Bounce
	n := w.balls.Len()
	for i := 0; i < n; i++ {
		a := w.balls.At(i)
		for j := i + 1; j < n; j++ {
			b := w.balls.At(j)
			c, ok := geom.Overlap(a.Circle(), b.Circle())
			if !ok {
				continue
			}

			half := c.Normal.Scale(c.Depth / 2)
			a.Pos = a.Pos.Sub(half)
			b.Pos = b.Pos.Add(half)

			vn := b.Vel.Sub(a.Vel).Dot(c.Normal)
			if vn >= 0 {
				continue
			}
			imp := -(1 + e) * vn / (a.Mass + b.Mass)
			a.Vel = a.Vel.Sub(c.Normal.Scale(imp * b.Mass))
			b.Vel = b.Vel.Add(c.Normal.Scale(imp * a.Mass))
		}
	}
}
