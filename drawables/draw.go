package drawables

import (
	"math"
	"strconv"

	"github.com/gogpu/ggplan"
	"seehuhn.de/go/geom/vec"
)

// Options holds the defaults the draw callbacks fall back to when a
// drawable leaves an attribute unset.
type Options struct {
	// Stroke is the default outline style.
	Stroke ggplan.StrokeStyle
	// FillOpacity is the default opacity of filled areas.
	FillOpacity float64
	// Font is the default label font.
	Font ggplan.FontStyle
	// PointRadius is the pixel radius of point markers.
	PointRadius float64
	// ArrowTipSize is the pixel height of vector arrowheads.
	ArrowTipSize float64
	// AngleRadius is the math radius of angle arcs.
	AngleRadius float64
	// TextGap is the pixel distance between a shape and its label.
	TextGap float64
	// LabelPolicy controls label shrinking below the reference scale.
	LabelPolicy ggplan.LabelPolicy
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Stroke:       ggplan.StrokeStyle{Color: "#1a1a1a", Width: 2, Opacity: 1},
		FillOpacity:  0.25,
		Font:         ggplan.FontStyle{Family: "Go", Size: 14, Color: "#1a1a1a"},
		PointRadius:  4,
		ArrowTipSize: 12,
		AngleRadius:  0.5,
		TextGap:      4,
		LabelPolicy:  ggplan.DefaultLabelPolicy(),
	}
}

// Register installs the draw callbacks of every built-in kind in reg.
// It panics if one of the class names is already registered.
func Register(reg *ggplan.Registry, o Options) {
	reg.Register(KindPoint, o.drawPoint)
	reg.Register(KindSegment, o.drawSegment)
	reg.Register(KindVector, o.drawVector)
	reg.Register(KindCircle, o.drawCircle)
	reg.Register(KindEllipse, o.drawEllipse)
	reg.Register(KindCircleArc, o.drawCircleArc)
	reg.Register(KindAngle, o.drawAngle)
	reg.Register(KindLabel, o.drawLabel)
	reg.Register(KindFunctionPlot, o.drawFunctionPlot)
	reg.Register(KindPolygon, o.drawPolygon)
	reg.Register(KindClosedArea, o.drawClosedArea)
}

// NewRegistry returns a registry holding the built-in callbacks.
func NewRegistry(o Options) *ggplan.Registry {
	reg := ggplan.NewRegistry()
	Register(reg, o)
	return reg
}

func screen(m ggplan.Mapper, p vec.Vec2) ggplan.Point {
	x, y := m.MathToScreen(p.X, p.Y)
	return ggplan.Pt(x, y)
}

func screenAll(m ggplan.Mapper, pts []vec.Vec2) []ggplan.Point {
	out := make([]ggplan.Point, len(pts))
	for i, p := range pts {
		out[i] = screen(m, p)
	}
	return out
}

func (o Options) stroke(a Appearance) ggplan.StrokeStyle {
	st := o.Stroke
	if a.Color != "" {
		st.Color = a.Color
	}
	if a.Width > 0 {
		st.Width = a.Width
	}
	if len(a.Dash) > 0 {
		st.Dash = a.Dash
	}
	return st
}

func (o Options) fill(a Appearance) ggplan.FillStyle {
	fs := ggplan.FillStyle{Color: a.Fill, Opacity: a.Opacity}
	if fs.Color == "" {
		fs.Color = o.stroke(a).Color
	}
	if fs.Opacity <= 0 {
		fs.Opacity = o.FillOpacity
	}
	return fs
}

func (o Options) font(a Appearance) ggplan.FontStyle {
	f := o.Font
	if a.FontSize > 0 {
		f.Size = a.FontSize
	}
	if a.Color != "" {
		f.Color = a.Color
	}
	return f
}

// shape brackets the primitives drawn by fn as one shape group.
func shape(s ggplan.Surface, fn func()) {
	g, ok := s.(ggplan.ShapeGrouper)
	if ok {
		g.BeginShape()
	}
	fn()
	if ok {
		g.EndShape()
	}
}

func (o Options) drawPoint(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	p, ok := d.(PointView)
	if !ok {
		return
	}
	a := p.Appearance()
	pos := screen(m, p.Position())
	outline := o.stroke(a)
	outline.Width = 1
	fill := ggplan.FillStyle{Color: o.stroke(a).Color, Opacity: 1}
	if a.Fill != "" {
		fill.Color = a.Fill
	}

	shape(s, func() {
		s.FillCircle(pos, o.PointRadius, fill, &outline, ggplan.ScreenSpace())
		text := p.Label()
		if text == "" {
			return
		}
		gap := o.PointRadius + o.TextGap
		meta := &ggplan.LabelMeta{
			Kind:     ggplan.PointLabel,
			Position: p.Position(),
			Offset:   ggplan.Pt(gap, -gap),
			Policy:   o.LabelPolicy,
		}
		s.DrawText(text, pos.Add(meta.Offset), o.font(a), ggplan.WithMeta(meta))
	})
}

func (o Options) drawSegment(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	seg, ok := d.(SegmentView)
	if !ok {
		return
	}
	a, b := seg.Endpoints()
	s.StrokeLine(screen(m, a), screen(m, b), o.stroke(seg.Appearance()))
}

func (o Options) drawVector(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	v, ok := d.(VectorView)
	if !ok {
		return
	}
	start, end := v.Endpoints()
	tip := v.TipSize()
	if tip <= 0 {
		tip = o.ArrowTipSize
	}
	st := o.stroke(v.Appearance())
	head := ggplan.FillStyle{Color: st.Color, Opacity: 1}
	p1, p2 := screen(m, start), screen(m, end)

	shape(s, func() {
		s.StrokeLine(p1, p2, st)
		meta := &ggplan.ArrowMeta{Start: start, End: end, TipSize: tip}
		s.FillPolygon(ggplan.ArrowHead(p1, p2, tip), head, nil, ggplan.WithMeta(meta))
	})
}

func (o Options) drawCircle(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	c, ok := d.(CircleView)
	if !ok {
		return
	}
	a := c.Appearance()
	center := screen(m, c.Center())
	r := m.ScaleValue(c.Radius())
	st := o.stroke(a)
	if a.Fill != "" {
		s.FillCircle(center, r, o.fill(a), &st)
		return
	}
	s.StrokeCircle(center, r, st)
}

func (o Options) drawEllipse(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	e, ok := d.(EllipseView)
	if !ok {
		return
	}
	rx, ry := e.Radii()
	s.StrokeEllipse(screen(m, e.Center()), m.ScaleValue(rx), m.ScaleValue(ry), e.Rotation(), o.stroke(e.Appearance()))
}

func (o Options) drawCircleArc(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	arc, ok := d.(CircleArcView)
	if !ok {
		return
	}
	c := arc.Center()
	p1, p2 := arc.Endpoints()
	mathR := p1.Sub(c).Length()

	center := screen(m, c)
	a1 := screen(m, p1).Sub(center).Angle()
	a2 := screen(m, p2).Sub(center).Angle()
	sweep := ggplan.ArcSweep(a1, a2, arc.Major())

	meta := &ggplan.CircleArcMeta{
		Center:    c,
		Point1:    p1,
		Point2:    p2,
		Radius:    mathR,
		Major:     arc.Major(),
		Clockwise: sweep >= 0,
	}
	s.StrokeArc(center, m.ScaleValue(mathR), a1, a1+sweep, sweep >= 0, o.stroke(arc.Appearance()), ggplan.WithMeta(meta))
}

func (o Options) drawAngle(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	ang, ok := d.(AngleView)
	if !ok {
		return
	}
	radius := ang.ArcRadius()
	if radius <= 0 {
		radius = o.AngleRadius
	}
	arm1, arm2 := ang.Arms()
	meta := ggplan.NewAngleMeta(ang.Vertex(), arm1, arm2, radius)
	meta.TextGap = o.TextGap

	a := ang.Appearance()
	state := ggplan.Capture(m)
	start := meta.StartAngle(state)

	shape(s, func() {
		s.StrokeArc(screen(m, meta.Vertex), meta.Radius(state), start, start+meta.Sweep(), meta.Clockwise,
			o.stroke(a), ggplan.WithMeta(meta))

		text := ang.Label()
		if text == "" {
			text = strconv.FormatFloat(meta.SweepDegrees, 'f', 1, 64) + "°"
		}
		s.DrawText(text, ggplan.AngleLabelAnchor(meta, state), o.font(a),
			ggplan.WithMeta(meta), ggplan.WithAlign(ggplan.AlignCenter))
	})
}

func (o Options) drawLabel(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	l, ok := d.(LabelView)
	if !ok || l.Text() == "" {
		return
	}
	font := o.font(l.Appearance())
	meta := &ggplan.LabelMeta{
		Kind:           ggplan.FreeLabel,
		Position:       l.Position(),
		Offset:         l.Offset(),
		Rotation:       l.Rotation(),
		ReferenceScale: l.ReferenceScale(),
		BaseFontSize:   font.Size,
		Policy:         o.LabelPolicy,
	}

	base := font.Size
	font.Size = o.LabelPolicy.FontSize(base, m.ScaleFactor(), meta.ReferenceScale)
	offset := meta.Offset
	if font.Size > 0 && base > 0 {
		offset = offset.Mul(font.Size / base)
	}
	s.DrawText(l.Text(), screen(m, meta.Position).Add(offset), font,
		ggplan.WithMeta(meta), ggplan.WithRotation(meta.Rotation))
}

func (o Options) drawFunctionPlot(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	f, ok := d.(FunctionPlotView)
	if !ok {
		return
	}
	st := o.stroke(f.Appearance())
	samples := f.Samples()

	shape(s, func() {
		var run []ggplan.Point
		flush := func() {
			if len(run) >= 2 {
				s.StrokePolyline(run, st)
			}
			run = nil
		}
		for _, p := range samples {
			if !finite(p.X) || !finite(p.Y) {
				flush()
				continue
			}
			run = append(run, screen(m, p))
		}
		flush()
	})
}

func (o Options) drawPolygon(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	p, ok := d.(PolygonView)
	if !ok {
		return
	}
	a := p.Appearance()
	st := o.stroke(a)
	s.FillPolygon(screenAll(m, p.Vertices()), o.fill(a), &st)
}

func (o Options) drawClosedArea(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
	area, ok := d.(ClosedAreaView)
	if !ok {
		return
	}
	upper, lower := area.Boundaries()
	reverse := screenAll(m, lower)
	for i, j := 0, len(reverse)-1; i < j; i, j = i+1, j-1 {
		reverse[i], reverse[j] = reverse[j], reverse[i]
	}
	s.FillJoinedArea(screenAll(m, upper), reverse, o.fill(area.Appearance()))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
