package drawables

import (
	"github.com/gogpu/ggplan"
	"seehuhn.de/go/geom/vec"
)

// Styled is a drawable with per-object appearance overrides.
type Styled interface {
	ggplan.Drawable
	Appearance() Appearance
}

// PointView is read by the point callback.
type PointView interface {
	Styled
	Position() vec.Vec2
	Label() string
}

// SegmentView is read by the segment callback.
type SegmentView interface {
	Styled
	Endpoints() (a, b vec.Vec2)
}

// VectorView is read by the vector callback. A TipSize of 0 selects the
// configured default.
type VectorView interface {
	Styled
	Endpoints() (start, end vec.Vec2)
	TipSize() float64
}

// CircleView is read by the circle callback.
type CircleView interface {
	Styled
	Center() vec.Vec2
	Radius() float64
}

// EllipseView is read by the ellipse callback.
type EllipseView interface {
	Styled
	Center() vec.Vec2
	Radii() (rx, ry float64)
	// Rotation in degrees.
	Rotation() float64
}

// CircleArcView is read by the circle-arc callback. The arc runs around
// Center from the first endpoint to the second.
type CircleArcView interface {
	Styled
	Center() vec.Vec2
	Endpoints() (p1, p2 vec.Vec2)
	Major() bool
}

// AngleView is read by the angle callback.
type AngleView interface {
	Styled
	Vertex() vec.Vec2
	Arms() (arm1, arm2 vec.Vec2)
	// ArcRadius is the math radius of the arc; 0 selects the default.
	ArcRadius() float64
	Label() string
}

// LabelView is read by the label callback.
type LabelView interface {
	Styled
	Position() vec.Vec2
	Text() string
	// Offset is a pixel offset from the projected position.
	Offset() ggplan.Point
	Rotation() float64
	// ReferenceScale is the view scale the font size was chosen for.
	ReferenceScale() float64
}

// FunctionPlotView is read by the function plot callback.
type FunctionPlotView interface {
	Styled
	// Samples returns the sampled graph in math space. Non-finite samples
	// break the curve.
	Samples() []vec.Vec2
}

// PolygonView is read by the polygon callback.
type PolygonView interface {
	Styled
	Vertices() []vec.Vec2
}

// ClosedAreaView is read by the closed area callback. The area is bounded
// by two open curves sharing their x range.
type ClosedAreaView interface {
	Styled
	Boundaries() (upper, lower []vec.Vec2)
}
