package geom

import "math"

// Circle is a circle with a center and radius.
type Circle struct {
	Center Vec2
	R      float64
}

// Contact describes an overlap between two shapes.
type Contact struct {
	// Normal is the unit vector pointing from the first shape toward the second.
	Normal Vec2
	// Depth is how far the shapes interpenetrate.
	Depth float64
	// Dist is the center distance (circles) or center-to-closest-point distance (rects).
	Dist float64
}

// Overlap tests two circles. It reports false when they do not overlap and
// when their centers coincide, since no contact normal exists then.
func Overlap(a, b Circle) (Contact, bool) {
	d := b.Center.Sub(a.Center)
	dist := d.Len()
	minDist := a.R + b.R
	if dist >= minDist || dist == 0 {
		return Contact{}, false
	}
	return Contact{
		Normal: d.Scale(1 / dist),
		Depth:  minDist - dist,
		Dist:   dist,
	}, true
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ClosestPoint returns the point inside r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: math.Max(r.X, math.Min(p.X, r.X+r.W)),
		Y: math.Max(r.Y, math.Min(p.Y, r.Y+r.H)),
	}
}

// CircleRect tests a circle against a rectangle. The returned normal points
// from the rectangle toward the circle center. A circle whose center lies
// inside the rectangle has no usable normal and is reported as no contact.
func CircleRect(c Circle, r Rect) (Contact, bool) {
	closest := r.ClosestPoint(c.Center)
	d := c.Center.Sub(closest)
	dist := d.Len()
	if dist >= c.R || dist == 0 {
		return Contact{}, false
	}
	return Contact{
		Normal: d.Scale(1 / dist),
		Depth:  c.R - dist,
		Dist:   dist,
	}, true
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}
