package game

import (
	"time"

	"github.com/ayusman/hoopshot/internal/geom"
	"github.com/ayusman/hoopshot/internal/gesture"
	"github.com/ayusman/hoopshot/internal/physics"
)

// Snapshot is a read-only copy of everything a renderer draws for one frame.
type Snapshot struct {
	Frame  uint64         `json:"frame"`
	Tick   uint64         `json:"tick"`
	Time   time.Time      `json:"time"`
	Mode   string         `json:"mode"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Balls  []BallView     `json:"balls"`
	Hands  []HandView     `json:"hands"`
	Hoops  []HoopView     `json:"hoops"`
	Scores physics.Scores `json:"scores"`
	Total  int            `json:"total"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	s.Balls = append([]BallView(nil), s.Balls...)
	s.Hands = append([]HandView(nil), s.Hands...)
	s.Hoops = append([]HoopView(nil), s.Hoops...)
	return s
}

// AnyHandVisible reports whether at least one hand is on screen.
func (s Snapshot) AnyHandVisible() bool {
	for _, h := range s.Hands {
		if h.Visible {
			return true
		}
	}
	return false
}

// BallView is a ball as drawn.
type BallView struct {
	ID       int       `json:"id"`
	Pos      geom.Vec2 `json:"pos"`
	Radius   float64   `json:"radius"`
	Rotation float64   `json:"rotation"`
	Held     bool      `json:"held"`
	Scored   bool      `json:"scored"`
}

// HandView is a hand slot as drawn.
type HandView struct {
	Slot     int       `json:"slot"`
	Visible  bool      `json:"visible"`
	Pinching bool      `json:"pinching"`
	Pos      geom.Vec2 `json:"pos"`
	Radius   float64   `json:"radius"`
	Thumb    geom.Vec2 `json:"thumb"`
	Index    geom.Vec2 `json:"index"`
}

// HoopView is a hoop as drawn.
type HoopView struct {
	Side          physics.Side `json:"side"`
	X             float64      `json:"x"`
	Y             float64      `json:"y"`
	Width         float64      `json:"width"`
	RimCenter     geom.Vec2    `json:"rimCenter"`
	RimRadiusX    float64      `json:"rimRadiusX"`
	RimRadiusY    float64      `json:"rimRadiusY"`
	RimPostLeft   geom.Vec2    `json:"rimPostLeft"`
	RimPostRight  geom.Vec2    `json:"rimPostRight"`
	RimPostRadius float64      `json:"rimPostRadius"`
	Backboard     geom.Rect    `json:"backboard"`
	Flashing      bool         `json:"flashing"`
}

func viewBalls(balls []physics.Ball) []BallView {
	out := make([]BallView, len(balls))
	for i, b := range balls {
		out[i] = BallView{
			ID:       b.ID,
			Pos:      b.Pos,
			Radius:   b.Radius,
			Rotation: b.Rotation,
			Held:     b.Held(),
			Scored:   b.Scored,
		}
	}
	return out
}

func viewHands(hands []gesture.Hand) []HandView {
	out := make([]HandView, len(hands))
	for i, h := range hands {
		out[i] = HandView{
			Slot:     h.Slot,
			Visible:  h.Visible,
			Pinching: h.Pinching,
			Pos:      h.Pos,
			Radius:   h.Radius,
			Thumb:    h.Thumb,
			Index:    h.Index,
		}
	}
	return out
}

func viewHoops(hoops [2]physics.Hoop, now time.Time) []HoopView {
	out := make([]HoopView, len(hoops))
	for i := range hoops {
		h := &hoops[i]
		out[i] = HoopView{
			Side:          h.Side,
			X:             h.X,
			Y:             h.Y,
			Width:         h.Width,
			RimCenter:     h.RimCenter(),
			RimRadiusX:    h.RimRadiusX,
			RimRadiusY:    h.RimRadiusY,
			RimPostLeft:   h.PostLeft.Center,
			RimPostRight:  h.PostRight.Center,
			RimPostRadius: h.PostLeft.R,
			Backboard:     h.Backboard,
			Flashing:      h.Flashing(now),
		}
	}
	return out
}
