package drawables

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"

	"github.com/gogpu/ggplan"
	"seehuhn.de/go/geom/vec"
)

// Class names of the built-in kinds.
const (
	KindPoint        = "point"
	KindSegment      = "segment"
	KindVector       = "vector"
	KindCircle       = "circle"
	KindEllipse      = "ellipse"
	KindCircleArc    = "circlearc"
	KindAngle        = "angle"
	KindLabel        = "label"
	KindFunctionPlot = "function"
	KindPolygon      = "polygon"
	KindClosedArea   = "area"
)

// Appearance holds the per-object style overrides. Zero fields fall back to
// the callback options.
type Appearance struct {
	Color    string    `yaml:"color"`
	Fill     string    `yaml:"fill"`
	Width    float64   `yaml:"width"`
	Dash     []float64 `yaml:"dash"`
	Opacity  float64   `yaml:"opacity"`
	FontSize float64   `yaml:"font_size"`
}

// Base carries the fields every built-in drawable shares.
type Base struct {
	ID     string     `yaml:"name"`
	Hidden bool       `yaml:"hidden"`
	Style  Appearance `yaml:"style"`
}

// Name implements ggplan.Drawable.
func (b *Base) Name() string { return b.ID }

// IsRenderable implements ggplan.Drawable.
func (b *Base) IsRenderable() bool { return !b.Hidden }

// Appearance implements Styled.
func (b *Base) Appearance() Appearance { return b.Style }

// signature hashes the printed form of a drawable's fields.
func signature(v any) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%T%+v", v, v)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Point is a free point with an optional name label.
type Point struct {
	Base    `yaml:",inline"`
	At      vec.Vec2 `yaml:"at"`
	Caption string   `yaml:"label"`
}

func (*Point) ClassName() string    { return KindPoint }
func (p *Point) Position() vec.Vec2 { return p.At }
func (p *Point) Label() string      { return p.Caption }
func (p *Point) Signature() string  { return signature(*p) }

// Segment is a line segment between two points.
type Segment struct {
	Base `yaml:",inline"`
	From vec.Vec2 `yaml:"from"`
	To   vec.Vec2 `yaml:"to"`
}

func (*Segment) ClassName() string            { return KindSegment }
func (s *Segment) Endpoints() (a, b vec.Vec2) { return s.From, s.To }
func (s *Segment) Signature() string          { return signature(*s) }

// Vector is a segment with an arrowhead at its end.
type Vector struct {
	Base `yaml:",inline"`
	From vec.Vec2 `yaml:"from"`
	To   vec.Vec2 `yaml:"to"`
	// Tip is the arrowhead height in pixels.
	Tip float64 `yaml:"tip"`
}

func (*Vector) ClassName() string                  { return KindVector }
func (v *Vector) Endpoints() (start, end vec.Vec2) { return v.From, v.To }
func (v *Vector) TipSize() float64                 { return v.Tip }
func (v *Vector) Signature() string                { return signature(*v) }

// Circle is a circle given by center and math radius.
type Circle struct {
	Base   `yaml:",inline"`
	Centre vec.Vec2 `yaml:"center"`
	R      float64  `yaml:"radius"`
}

func (*Circle) ClassName() string   { return KindCircle }
func (c *Circle) Center() vec.Vec2  { return c.Centre }
func (c *Circle) Radius() float64   { return c.R }
func (c *Circle) Signature() string { return signature(*c) }

// Ellipse is a rotated ellipse with math radii.
type Ellipse struct {
	Base   `yaml:",inline"`
	Centre vec.Vec2 `yaml:"center"`
	RX     float64  `yaml:"rx"`
	RY     float64  `yaml:"ry"`
	Angle  float64  `yaml:"rotation"`
}

func (*Ellipse) ClassName() string         { return KindEllipse }
func (e *Ellipse) Center() vec.Vec2        { return e.Centre }
func (e *Ellipse) Radii() (rx, ry float64) { return e.RX, e.RY }
func (e *Ellipse) Rotation() float64       { return e.Angle }
func (e *Ellipse) Signature() string       { return signature(*e) }

// CircleArc is the arc of the circle around Centre through From, ending
// on the ray towards To.
type CircleArc struct {
	Base   `yaml:",inline"`
	Centre vec.Vec2 `yaml:"center"`
	From   vec.Vec2 `yaml:"from"`
	To     vec.Vec2 `yaml:"to"`
	Long   bool     `yaml:"major"`
}

func (*CircleArc) ClassName() string              { return KindCircleArc }
func (a *CircleArc) Center() vec.Vec2             { return a.Centre }
func (a *CircleArc) Endpoints() (p1, p2 vec.Vec2) { return a.From, a.To }
func (a *CircleArc) Major() bool                  { return a.Long }
func (a *CircleArc) Signature() string            { return signature(*a) }

// Angle is the angle at Apex between the rays towards Arm1 and Arm2.
type Angle struct {
	Base    `yaml:",inline"`
	Apex    vec.Vec2 `yaml:"vertex"`
	Arm1    vec.Vec2 `yaml:"arm1"`
	Arm2    vec.Vec2 `yaml:"arm2"`
	R       float64  `yaml:"radius"`
	Caption string   `yaml:"label"`
}

func (*Angle) ClassName() string             { return KindAngle }
func (a *Angle) Vertex() vec.Vec2            { return a.Apex }
func (a *Angle) Arms() (arm1, arm2 vec.Vec2) { return a.Arm1, a.Arm2 }
func (a *Angle) ArcRadius() float64          { return a.R }
func (a *Angle) Label() string               { return a.Caption }
func (a *Angle) Signature() string           { return signature(*a) }

// Label is a free text anchored at a math position.
type Label struct {
	Base     `yaml:",inline"`
	At       vec.Vec2     `yaml:"at"`
	Content  string       `yaml:"text"`
	Shift    ggplan.Point `yaml:"offset"`
	Turn     float64      `yaml:"rotation"`
	RefScale float64      `yaml:"reference_scale"`
}

func (*Label) ClassName() string         { return KindLabel }
func (l *Label) Position() vec.Vec2      { return l.At }
func (l *Label) Text() string            { return l.Content }
func (l *Label) Offset() ggplan.Point    { return l.Shift }
func (l *Label) Rotation() float64       { return l.Turn }
func (l *Label) ReferenceScale() float64 { return l.RefScale }
func (l *Label) Signature() string       { return signature(*l) }

// defaultSteps is the number of plot intervals when Steps is unset.
const defaultSteps = 200

// FunctionPlot is the graph of a function of x over [From, To]. F is used
// when set; otherwise the polynomial with the given coefficients (constant
// term first) is plotted.
type FunctionPlot struct {
	Base         `yaml:",inline"`
	Coefficients []float64               `yaml:"coefficients"`
	From         float64                 `yaml:"from"`
	To           float64                 `yaml:"to"`
	Steps        int                     `yaml:"steps"`
	F            func(x float64) float64 `yaml:"-"`
}

func (*FunctionPlot) ClassName() string   { return KindFunctionPlot }
func (f *FunctionPlot) Signature() string { return signature(*f) }

// Eval returns the function value at x.
func (f *FunctionPlot) Eval(x float64) float64 {
	if f.F != nil {
		return f.F(x)
	}
	// Horner
	y := 0.0
	for i := len(f.Coefficients) - 1; i >= 0; i-- {
		y = y*x + f.Coefficients[i]
	}
	return y
}

// Samples implements FunctionPlotView.
func (f *FunctionPlot) Samples() []vec.Vec2 {
	n := f.Steps
	if n <= 0 {
		n = defaultSteps
	}
	if f.To == f.From || math.IsNaN(f.From) || math.IsNaN(f.To) {
		return nil
	}
	pts := make([]vec.Vec2, n+1)
	dx := (f.To - f.From) / float64(n)
	for i := range pts {
		x := f.From + float64(i)*dx
		pts[i] = vec.Vec2{X: x, Y: f.Eval(x)}
	}
	return pts
}

// Polygon is a filled closed polygon.
type Polygon struct {
	Base   `yaml:",inline"`
	Points []vec.Vec2 `yaml:"vertices"`
}

func (*Polygon) ClassName() string      { return KindPolygon }
func (p *Polygon) Vertices() []vec.Vec2 { return p.Points }
func (p *Polygon) Signature() string    { return signature(*p) }

// ClosedArea is the region between two curves, such as the area under a
// function plot.
type ClosedArea struct {
	Base  `yaml:",inline"`
	Upper []vec.Vec2 `yaml:"upper"`
	Lower []vec.Vec2 `yaml:"lower"`
}

func (*ClosedArea) ClassName() string                       { return KindClosedArea }
func (a *ClosedArea) Boundaries() (upper, lower []vec.Vec2) { return a.Upper, a.Lower }
func (a *ClosedArea) Signature() string                     { return signature(*a) }

var (
	_ PointView        = (*Point)(nil)
	_ SegmentView      = (*Segment)(nil)
	_ VectorView       = (*Vector)(nil)
	_ CircleView       = (*Circle)(nil)
	_ EllipseView      = (*Ellipse)(nil)
	_ CircleArcView    = (*CircleArc)(nil)
	_ AngleView        = (*Angle)(nil)
	_ LabelView        = (*Label)(nil)
	_ FunctionPlotView = (*FunctionPlot)(nil)
	_ PolygonView      = (*Polygon)(nil)
	_ ClosedAreaView   = (*ClosedArea)(nil)
)
