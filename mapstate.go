package ggplan

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// DefaultEpsilon is the per-field tolerance used by [MapState.Equal].
const DefaultEpsilon = 1e-6

// Mapper is the coordinate-mapper collaborator. Only ScaleFactor and the
// optional offset/origin are captured into a MapState; MathToScreen and
// ScaleValue are used by draw callbacks during recording.
type Mapper interface {
	// ScaleFactor returns the number of pixels per math unit (> 0).
	ScaleFactor() float64
	// MathToScreen maps a math point to screen pixels.
	MathToScreen(x, y float64) (float64, float64)
	// ScaleValue maps a math length to pixels.
	ScaleValue(v float64) float64
}

// OffsetMapper is implemented by mappers that carry a pan offset.
type OffsetMapper interface {
	Offset() (x, y float64)
}

// OriginMapper is implemented by mappers that carry a screen origin.
type OriginMapper interface {
	Origin() (x, y float64)
}

// MapState is an immutable snapshot of the affine view transform:
//
//	screen.X = OriginX + math.X*Scale + OffsetX
//	screen.Y = OriginY - math.Y*Scale + OffsetY
type MapState struct {
	Scale            float64
	OffsetX, OffsetY float64
	OriginX, OriginY float64
}

// Capture snapshots the view transform of m. Offset and origin default to
// zero when m does not expose them.
func Capture(m Mapper) MapState {
	if m == nil {
		return MapState{Scale: 1}
	}
	s := MapState{Scale: m.ScaleFactor()}
	if om, ok := m.(OffsetMapper); ok {
		s.OffsetX, s.OffsetY = om.Offset()
	}
	if om, ok := m.(OriginMapper); ok {
		s.OriginX, s.OriginY = om.Origin()
	}
	return s
}

// Equal reports whether every field of s and o differs by at most eps.
func (s MapState) Equal(o MapState, eps float64) bool {
	return math.Abs(s.Scale-o.Scale) <= eps &&
		math.Abs(s.OffsetX-o.OffsetX) <= eps &&
		math.Abs(s.OffsetY-o.OffsetY) <= eps &&
		math.Abs(s.OriginX-o.OriginX) <= eps &&
		math.Abs(s.OriginY-o.OriginY) <= eps
}

// safeScale returns Scale, or 1 when it is zero, negative or not finite.
func (s MapState) safeScale() float64 {
	return safeDivisor(s.Scale)
}

// MathToScreen maps a math point into screen space under s.
func (s MapState) MathToScreen(p vec.Vec2) Point {
	scale := s.safeScale()
	return Point{
		X: s.OriginX + p.X*scale + s.OffsetX,
		Y: s.OriginY - p.Y*scale + s.OffsetY,
	}
}

// ScreenToMath is the inverse of MathToScreen.
func (s MapState) ScreenToMath(p Point) vec.Vec2 {
	scale := s.safeScale()
	return vec.Vec2{
		X: (p.X - s.OriginX - s.OffsetX) / scale,
		Y: (s.OriginY + s.OffsetY - p.Y) / scale,
	}
}

// Reproject moves a screen point placed under s to its place under target
// by going through math space.
func (s MapState) Reproject(p Point, target MapState) Point {
	return target.MathToScreen(s.ScreenToMath(p))
}

// TransformParams returns the similarity transform that relocates any point
// placed under base to its position under target:
//
//	scaleRatio = target.Scale / base.Scale
//	tx = (target.OriginX + target.OffsetX) - scaleRatio*(base.OriginX + base.OffsetX)
//	ty = (target.OriginY + target.OffsetY) - scaleRatio*(base.OriginY + base.OffsetY)
//
// A zero base scale yields a ratio of 1.
func TransformParams(base, target MapState) (scaleRatio, tx, ty float64) {
	scaleRatio = 1
	if base.Scale != 0 {
		scaleRatio = target.Scale / base.Scale
	}
	tx = (target.OriginX + target.OffsetX) - scaleRatio*(base.OriginX+base.OffsetX)
	ty = (target.OriginY + target.OffsetY) - scaleRatio*(base.OriginY+base.OffsetY)
	return scaleRatio, tx, ty
}

// safeDivisor clamps zero, negative and non-finite divisors to 1.
func safeDivisor(v float64) float64 {
	if v <= 0 || !isFinite(v) {
		return 1
	}
	return v
}
