package physics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ayusman/hoopshot/internal/geom"
)

// ErrInvalidLayout is returned when a rim-post layout has non-finite
// coordinates.
var ErrInvalidLayout = errors.New("invalid layout")

// Side names one end of the court.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Opposite returns the other side. A basket in one side's hoop scores for
// the opposite side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// MarshalText encodes the side as "left" or "right".
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "left" or "right".
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Hoop geometry defaults, in display pixels.
const (
	HoopWidth          = 200.0
	RimRadiusX         = 70.0
	RimRadiusY         = 10.0
	RimPostRadius      = 10.0
	RimPostSpacing     = 134.0
	BackboardHeight    = 150.0
	BackboardThickness = 10.0

	// hoopHeightRatio places the rim plane relative to the play area height.
	hoopHeightRatio = 0.6
)

// Hoop is one basket: a scoring window at the rim plane, two rim posts and a
// backboard at the outer edge.
type Hoop struct {
	Side Side

	// X and Y locate the hoop's top-left corner. Y is the rim plane.
	X     float64
	Y     float64
	Width float64

	RimRadiusX float64
	RimRadiusY float64

	PostLeft  geom.Circle
	PostRight geom.Circle

	Backboard geom.Rect

	// FlashUntil is set when a basket is made; renderers highlight the hoop
	// until then. It has no effect on the simulation.
	FlashUntil time.Time
}

// RimCenter returns the centre of the scoring window at the rim plane.
func (h *Hoop) RimCenter() geom.Vec2 {
	return geom.V(h.X+h.Width/2, h.Y)
}

// Flashing reports whether the hoop should be highlighted at now.
func (h *Hoop) Flashing(now time.Time) bool {
	return now.Before(h.FlashUntil)
}

// NewHoop builds a hoop with default geometry whose left edge is at x and
// whose rim plane is at y.
func NewHoop(side Side, x, y float64) Hoop {
	h := Hoop{
		Side:       side,
		X:          x,
		Y:          y,
		Width:      HoopWidth,
		RimRadiusX: RimRadiusX,
		RimRadiusY: RimRadiusY,
	}
	c := h.RimCenter()
	h.PostLeft = geom.Circle{Center: geom.V(c.X-RimPostSpacing/2, y), R: RimPostRadius}
	h.PostRight = geom.Circle{Center: geom.V(c.X+RimPostSpacing/2, y), R: RimPostRadius}

	bx := x
	if side == SideRight {
		bx = x + HoopWidth - BackboardThickness
	}
	h.Backboard = geom.Rect{X: bx, Y: y - BackboardHeight, W: BackboardThickness, H: BackboardHeight}
	return h
}

// DefaultHoops places one hoop flush against each side wall.
func DefaultHoops(width, height float64) [2]Hoop {
	y := math.Round(height * hoopHeightRatio)
	return [2]Hoop{
		NewHoop(SideLeft, 0, y),
		NewHoop(SideRight, width-HoopWidth, y),
	}
}

// PostPair is the calibrated position of one hoop's rim posts.
type PostPair struct {
	RimPostLeft  geom.Vec2 `json:"rimPostLeft"`
	RimPostRight geom.Vec2 `json:"rimPostRight"`
}

// Layout is the rim-post calibration for both hoops.
type Layout struct {
	LeftHoop  PostPair `json:"leftHoop"`
	RightHoop PostPair `json:"rightHoop"`
}

// Validate checks that every coordinate is finite.
func (l Layout) Validate() error {
	for _, p := range []geom.Vec2{
		l.LeftHoop.RimPostLeft, l.LeftHoop.RimPostRight,
		l.RightHoop.RimPostLeft, l.RightHoop.RimPostRight,
	} {
		if !p.IsFinite() {
			return fmt.Errorf("%w: non-finite rim post %v", ErrInvalidLayout, p)
		}
	}
	return nil
}

// LayoutOf captures the rim-post positions of a pair of hoops.
func LayoutOf(hoops [2]Hoop) Layout {
	pair := func(h Hoop) PostPair {
		return PostPair{RimPostLeft: h.PostLeft.Center, RimPostRight: h.PostRight.Center}
	}
	return Layout{LeftHoop: pair(hoops[SideLeft]), RightHoop: pair(hoops[SideRight])}
}

// apply moves the rim posts to the layout's positions. Other hoop geometry is
// left alone.
func (l Layout) apply(hoops *[2]Hoop) {
	hoops[SideLeft].PostLeft.Center = l.LeftHoop.RimPostLeft
	hoops[SideLeft].PostRight.Center = l.LeftHoop.RimPostRight
	hoops[SideRight].PostLeft.Center = l.RightHoop.RimPostLeft
	hoops[SideRight].PostRight.Center = l.RightHoop.RimPostRight
}
