package ggplan

import "math"

// Point is a position in screen space (pixels, Y down).
// Math-space positions use vec.Vec2 from seehuhn.de/go/geom.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the direction of the vector in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// quantizeDecimals is the number of decimals recorded geometry is rounded to.
const quantizeDecimals = 4

var quantizeFactor = math.Pow(10, quantizeDecimals)

// quantize rounds v to quantizeDecimals decimals.
func quantize(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	q := math.Round(v*quantizeFactor) / quantizeFactor
	if q == 0 {
		return 0 // drop negative zero
	}
	return q
}

// quantizePoint rounds both coordinates of p.
func quantizePoint(p Point) Point {
	return Point{X: quantize(p.X), Y: quantize(p.Y)}
}

func quantizePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = quantizePoint(p)
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
