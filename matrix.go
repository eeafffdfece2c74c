package ggplan

import (
	"math"
	"strconv"
	"strings"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Similarity returns the uniform scale + translate matrix produced by
// [TransformParams].
func Similarity(scaleRatio, tx, ty float64) Matrix {
	return Matrix{
		A: scaleRatio, B: 0, C: tx,
		D: 0, E: scaleRatio, F: ty,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// TransformRect maps the four corners of r and returns their bounding box.
func (m Matrix) TransformRect(r Rect) Rect {
	out := emptyRect()
	for _, p := range [...]Point{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY},
		{r.MinX, r.MaxY}, {r.MaxX, r.MaxY},
	} {
		out = out.Extend(m.TransformPoint(p))
	}
	return out
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m.A-1) < eps && math.Abs(m.B) < eps && math.Abs(m.C) < eps &&
		math.Abs(m.D) < eps && math.Abs(m.E-1) < eps && math.Abs(m.F) < eps
}

// ScaleFactor returns the maximum scale factor of the transformation.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Sqrt(m.A*m.A + m.D*m.D)
	sy := math.Sqrt(m.B*m.B + m.E*m.E)
	if sx > sy {
		return sx
	}
	return sy
}

// String formats the matrix as an SVG transform attribute value,
// "matrix(a b c d e f)" in SVG's column order.
func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("matrix(")
	for i, v := range [...]float64{m.A, m.D, m.B, m.E, m.C, m.F} {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(quantize(v), 'f', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Rect represents an axis-aligned rectangle in screen space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// emptyRect returns an inverted rectangle that any Extend call replaces.
func emptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsValid reports whether the rectangle contains at least one point.
func (r Rect) IsValid() bool {
	return r.MinX <= r.MaxX && r.MinY <= r.MaxY
}

// Extend returns the smallest rectangle containing r and p.
// Non-finite points are ignored.
func (r Rect) Extend(p Point) Rect {
	if !p.IsFinite() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Intersects reports whether r and other overlap (edges included).
func (r Rect) Intersects(other Rect) bool {
	return r.MinX <= other.MaxX && other.MinX <= r.MaxX &&
		r.MinY <= other.MaxY && other.MinY <= r.MaxY
}
