package ggplan

// Replay sends commands to a surface. xf is nil when the stored screen
// coordinates are current; otherwise it maps recorded coordinates to the
// current view and radii are scaled by its factor. Stroke widths and font
// sizes are pixel-constant and never scaled.

func xfPoint(xf *Matrix, p Point) Point {
	if xf == nil {
		return p
	}
	return xf.TransformPoint(p)
}

func xfPoints(xf *Matrix, pts []Point) []Point {
	if xf == nil {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = xf.TransformPoint(p)
	}
	return out
}

func xfLength(xf *Matrix, v float64) float64 {
	if xf == nil {
		return v
	}
	return v * xf.ScaleFactor()
}

func (c *LineCommand) replay(s Surface, xf *Matrix) {
	s.StrokeLine(xfPoint(xf, c.P1), xfPoint(xf, c.P2), *c.Stroke)
}

func (c *PolylineCommand) replay(s Surface, xf *Matrix) {
	s.StrokePolyline(xfPoints(xf, c.Points), *c.Stroke)
}

func (c *CircleCommand) replay(s Surface, xf *Matrix) {
	r := c.Radius
	if !c.screenSpace {
		r = xfLength(xf, r)
	}
	if c.Filled {
		s.FillCircle(xfPoint(xf, c.Center), r, *c.Fill, c.Stroke)
		return
	}
	s.StrokeCircle(xfPoint(xf, c.Center), r, *c.Stroke)
}

func (c *EllipseCommand) replay(s Surface, xf *Matrix) {
	rx, ry := c.RX, c.RY
	if !c.screenSpace {
		rx, ry = xfLength(xf, rx), xfLength(xf, ry)
	}
	s.StrokeEllipse(xfPoint(xf, c.Center), rx, ry, c.Rotation, *c.Stroke)
}

func (c *JoinedAreaCommand) replay(s Surface, xf *Matrix) {
	s.FillJoinedArea(xfPoints(xf, c.Forward), xfPoints(xf, c.Reverse), *c.Fill)
}

func (c *PolygonCommand) replay(s Surface, xf *Matrix) {
	s.FillPolygon(xfPoints(xf, c.Points), *c.Fill, c.Stroke)
}

func (c *ArcCommand) replay(s Surface, xf *Matrix) {
	r := c.Radius
	if !c.screenSpace {
		r = xfLength(xf, r)
	}
	s.StrokeArc(xfPoint(xf, c.Center), r, c.Start, c.End, c.Clockwise, *c.Stroke)
}

func (c *TextCommand) replay(s Surface, xf *Matrix) {
	if c.FontSize <= 0 || c.Text == "" {
		return
	}
	font := *c.Font
	font.Size = c.FontSize
	s.DrawText(c.Text, xfPoint(xf, c.Pos), font, WithRotation(c.Rotation), WithAlign(c.Align))
}

func (c *ShapeCommand) replay(s Surface, _ *Matrix) {
	g, ok := s.(ShapeGrouper)
	if !ok {
		return
	}
	if c.Begin {
		g.BeginShape()
	} else {
		g.EndShape()
	}
}
