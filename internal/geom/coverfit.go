package geom

// CoverFit maps source-video pixel coordinates onto a display that shows the
// video aspect-cropped to fill (CSS object-fit: cover) and mirrored
// horizontally, as a front-facing camera preview is.
type CoverFit struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
}

// NewCoverFit computes the uniform scale and single-axis offset for src
// covering dst. When the source is wider than the display it is scaled by
// height and cropped horizontally; otherwise it is scaled by width and
// cropped vertically.
//
// Zero source dimensions are not rejected here: they produce non-finite
// values that Map propagates, and callers check the result with IsFinite.
func NewCoverFit(src, dst Size) CoverFit {
	srcRatio := src.W / src.H
	dstRatio := dst.W / dst.H

	f := CoverFit{Scale: 1, Width: dst.W}
	if srcRatio > dstRatio {
		f.Scale = dst.H / src.H
		f.OffsetX = (dst.W - src.W*f.Scale) / 2
	} else {
		f.Scale = dst.W / src.W
		f.OffsetY = (dst.H - src.H*f.Scale) / 2
	}
	return f
}

// Map converts a source-space point to mirrored display space.
func (f CoverFit) Map(p Vec2) Vec2 {
	x := p.X*f.Scale + f.OffsetX
	y := p.Y*f.Scale + f.OffsetY
	return Vec2{X: f.Width - x, Y: y}
}
