package ggplan

import "math"

// Reprojection handlers for the exact update path. Each handler rebuilds
// the command's screen geometry as a fresh recording under the target state
// would produce it. Plans call them on the geometry recorded under the base
// state, never on the output of a previous update. Plain coordinates go
// through math space (inverse under from, forward under to), and commands
// carrying metadata are recomputed from their stored math inputs.

const (
	twoPi = 2 * math.Pi

	// sweepEpsilon is the angular tolerance under which two arc end
	// directions are treated as coincident.
	sweepEpsilon = 1e-9

	// arrowHalfWidthRatio is the arrowhead half-width relative to its height.
	arrowHalfWidthRatio = 0.5
)

func reprojectPoint(from, to MapState, p Point) Point {
	return quantizePoint(from.Reproject(p, to))
}

func reprojectPoints(from, to MapState, pts []Point) {
	for i, p := range pts {
		pts[i] = reprojectPoint(from, to, p)
	}
}

// rescaleLength converts a pixel length recorded under from to to.
func rescaleLength(from, to MapState, v float64) float64 {
	return quantize(v / from.safeScale() * to.safeScale())
}

func (c *LineCommand) reproject(from, to MapState) {
	c.P1 = reprojectPoint(from, to, c.P1)
	c.P2 = reprojectPoint(from, to, c.P2)
}

func (c *PolylineCommand) reproject(from, to MapState) {
	reprojectPoints(from, to, c.Points)
}

func (c *JoinedAreaCommand) reproject(from, to MapState) {
	reprojectPoints(from, to, c.Forward)
	reprojectPoints(from, to, c.Reverse)
}

func (c *CircleCommand) reproject(from, to MapState) {
	c.Center = reprojectPoint(from, to, c.Center)
	if !c.screenSpace {
		c.Radius = rescaleLength(from, to, c.Radius)
	}
}

func (c *EllipseCommand) reproject(from, to MapState) {
	c.Center = reprojectPoint(from, to, c.Center)
	if !c.screenSpace {
		c.RX = rescaleLength(from, to, c.RX)
		c.RY = rescaleLength(from, to, c.RY)
	}
}

func (c *PolygonCommand) reproject(from, to MapState) {
	if c.Arrow == nil {
		reprojectPoints(from, to, c.Points)
		return
	}
	start := to.MathToScreen(c.Arrow.Start)
	end := to.MathToScreen(c.Arrow.End)
	c.Points = quantizePoints(ArrowHead(start, end, c.Arrow.TipSize))
}

func (c *ArcCommand) reproject(from, to MapState) {
	switch m := c.Meta.(type) {
	case *AngleMeta:
		if m != nil {
			c.reprojectAngle(m, to)
			return
		}
	case *CircleArcMeta:
		if m != nil {
			c.reprojectCircleArc(m, from, to)
			return
		}
	}
	c.Center = reprojectPoint(from, to, c.Center)
	if !c.screenSpace {
		c.Radius = rescaleLength(from, to, c.Radius)
	}
}

// reprojectAngle rebuilds an angle arc. The radius is the base math radius
// at the target scale, clamped to the shorter arm; the sweep is
// scale-invariant.
func (c *ArcCommand) reprojectAngle(m *AngleMeta, to MapState) {
	c.Center = quantizePoint(to.MathToScreen(m.Vertex))
	c.Radius = quantize(m.Radius(to))
	c.Start = m.StartAngle(to)
	c.End = c.Start + m.Sweep()
	c.Clockwise = m.Clockwise
}

// reprojectCircleArc rebuilds a circle arc from its three math points. The
// radius keeps the ratio between the recorded radius and the math radius,
// so a callback that draws the arc larger than its circle stays larger.
func (c *ArcCommand) reprojectCircleArc(m *CircleArcMeta, from, to MapState) {
	center := to.MathToScreen(m.Center)
	p1 := to.MathToScreen(m.Point1)
	p2 := to.MathToScreen(m.Point2)

	if m.Radius > 0 {
		ratio := (c.Radius / from.safeScale()) / m.Radius
		c.Radius = quantize(m.Radius * ratio * to.safeScale())
	} else {
		c.Radius = rescaleLength(from, to, c.Radius)
	}

	start := p1.Sub(center).Angle()
	sweep := ArcSweep(start, p2.Sub(center).Angle(), m.Major)
	c.Center = quantizePoint(center)
	c.Start = start
	c.End = start + sweep
	c.Clockwise = sweep >= 0
}

// ArcSweep returns the signed sweep from angle a1 to angle a2 selecting the
// minor arc (|sweep| <= pi) or the major arc. Positive sweeps increase the
// screen angle. Coincident directions yield 0 for a minor arc and a full
// turn for a major one.
func ArcSweep(a1, a2 float64, major bool) float64 {
	d := math.Mod(a2-a1, twoPi)
	if d < 0 {
		d += twoPi
	}
	if d < sweepEpsilon || twoPi-d < sweepEpsilon {
		if major {
			return twoPi
		}
		return 0
	}
	if major {
		if d > math.Pi {
			return d
		}
		return d - twoPi
	}
	if d <= math.Pi {
		return d
	}
	return d - twoPi
}

func (c *TextCommand) reproject(from, to MapState) {
	switch m := c.Meta.(type) {
	case *AngleMeta:
		if m != nil {
			c.Pos = quantizePoint(AngleLabelAnchor(m, to))
			return
		}
	case *LabelMeta:
		if m != nil {
			c.reprojectLabel(m, to)
			return
		}
	}
	c.Pos = reprojectPoint(from, to, c.Pos)
}

// reprojectLabel applies the reference-scale font policy and re-anchors the
// text. Free labels shrink their pixel offset together with the font.
func (c *TextCommand) reprojectLabel(m *LabelMeta, to MapState) {
	base := m.BaseFontSize
	if base <= 0 {
		base = c.Font.Size
	}
	size := m.Policy.FontSize(base, to.Scale, m.ReferenceScale)
	offset := m.Offset
	if m.Kind == FreeLabel && base > 0 && size > 0 {
		offset = offset.Mul(size / base)
	}
	c.FontSize = size
	c.Pos = quantizePoint(to.MathToScreen(m.Position).Add(offset))
}

func (c *ShapeCommand) reproject(MapState, MapState) {}

// ArrowHead returns the triangle of an arrow tip pointing from start to end
// in screen space: the tip at end, height tipSize, half-width
// tipSize*arrowHalfWidthRatio. A zero-length vector or non-positive tip size
// yields a degenerate triangle collapsed onto end.
func ArrowHead(start, end Point, tipSize float64) []Point {
	d := end.Sub(start)
	length := d.Length()
	if length == 0 || tipSize <= 0 || !isFinite(length) {
		return []Point{end, end, end}
	}
	u := d.Mul(1 / length)
	n := Point{X: -u.Y, Y: u.X}
	base := end.Sub(u.Mul(tipSize))
	half := tipSize * arrowHalfWidthRatio
	return []Point{end, base.Add(n.Mul(half)), base.Sub(n.Mul(half))}
}

// AngleLabelAnchor returns where the label of an angle is anchored under s:
// on the bisector of the arc, TextGap pixels beyond the clamped radius,
// shifted by Baseline.
func AngleLabelAnchor(m *AngleMeta, s MapState) Point {
	vertex := s.MathToScreen(m.Vertex)
	mid := m.StartAngle(s) + m.Sweep()/2
	dist := m.Radius(s) + m.TextGap
	return Point{
		X: vertex.X + dist*math.Cos(mid),
		Y: vertex.Y + dist*math.Sin(mid) + m.Baseline,
	}
}
