// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package svg is a surface backend that writes each frame as an SVG
// document.
//
// Plans replay into nested groups: a <g> per plan (BeginBatch), a <g> per
// shape, and a <g transform="matrix(...)"> when an affine plan replays
// through PushTransform. Inside transform groups strokes carry
// vector-effect="non-scaling-stroke" and font sizes are divided by the
// group scale, so both stay pixel-constant.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/surface"
)

func init() {
	surface.Register("svg", 20, func(opts surface.Options) (surface.Target, error) {
		return New(opts.Width, opts.Height, opts.Background), nil
	}, ".svg")
}

// SVG collects the primitives of one frame as SVG elements.
//
// SVG is not safe for concurrent use.
type SVG struct {
	width, height int
	background    string

	body     bytes.Buffer
	scales   []float64 // scale of each open transform group
	open     int       // open <g> elements of any kind
	elements int
}

var (
	_ surface.Target      = (*SVG)(nil)
	_ ggplan.Batcher      = (*SVG)(nil)
	_ ggplan.ShapeGrouper = (*SVG)(nil)
	_ ggplan.Transformer  = (*SVG)(nil)
)

// New returns an empty SVG frame. An empty background leaves the frame
// transparent.
func New(width, height int, background string) *SVG {
	return &SVG{width: width, height: height, background: background}
}

// Elements returns the number of drawing elements in the frame.
func (r *SVG) Elements() int {
	return r.elements
}

// Reset implements surface.Target.
func (r *SVG) Reset() {
	r.body.Reset()
	r.scales = r.scales[:0]
	r.open = 0
	r.elements = 0
}

// Close implements surface.Target.
func (r *SVG) Close() error {
	return nil
}

// WriteTo writes the frame as a complete SVG document. Groups left open
// are closed in the output.
func (r *SVG) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		r.width, r.height, r.width, r.height)
	if r.background != "" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`, attr(r.background))
	}
	buf.Write(r.body.Bytes())
	buf.WriteString(strings.Repeat("</g>", r.open))
	buf.WriteString("</svg>")
	return buf.WriteTo(w)
}

// String returns the document WriteTo would write.
func (r *SVG) String() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}

// BeginBatch implements ggplan.Batcher.
func (r *SVG) BeginBatch() { r.openGroup() }

// EndBatch implements ggplan.Batcher.
func (r *SVG) EndBatch() { r.closeGroup() }

// BeginShape implements ggplan.ShapeGrouper.
func (r *SVG) BeginShape() { r.openGroup() }

// EndShape implements ggplan.ShapeGrouper.
func (r *SVG) EndShape() { r.closeGroup() }

// PushTransform implements ggplan.Transformer.
func (r *SVG) PushTransform(m ggplan.Matrix) {
	fmt.Fprintf(&r.body, `<g transform="matrix(%v %v %v %v %v %v)">`,
		dec(m.A), dec(m.D), dec(m.B), dec(m.E), dec(m.C), dec(m.F))
	r.open++
	r.scales = append(r.scales, m.ScaleFactor())
}

// PopTransform implements ggplan.Transformer.
func (r *SVG) PopTransform() {
	if len(r.scales) == 0 {
		return
	}
	r.scales = r.scales[:len(r.scales)-1]
	r.closeGroup()
}

func (r *SVG) openGroup() {
	r.body.WriteString("<g>")
	r.open++
}

func (r *SVG) closeGroup() {
	if r.open == 0 {
		return
	}
	r.body.WriteString("</g>")
	r.open--
}

// scale returns the combined scale of the open transform groups.
func (r *SVG) scale() float64 {
	s := 1.0
	for _, f := range r.scales {
		s *= f
	}
	if s <= 0 {
		return 1
	}
	return s
}

// StrokeLine implements ggplan.Surface.
func (r *SVG) StrokeLine(p1, p2 ggplan.Point, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	fmt.Fprintf(&r.body, `<line x1="%v" y1="%v" x2="%v" y2="%v"`, dec(p1.X), dec(p1.Y), dec(p2.X), dec(p2.Y))
	r.writeStroke(&stroke)
	r.end()
}

// StrokePolyline implements ggplan.Surface.
func (r *SVG) StrokePolyline(points []ggplan.Point, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if len(points) < 2 {
		return
	}
	fmt.Fprintf(&r.body, `<polyline points="%s" fill="none"`, pointList(points))
	r.writeStroke(&stroke)
	r.end()
}

// StrokeCircle implements ggplan.Surface.
func (r *SVG) StrokeCircle(center ggplan.Point, radius float64, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	fmt.Fprintf(&r.body, `<circle cx="%v" cy="%v" r="%v" fill="none"`, dec(center.X), dec(center.Y), dec(radius))
	r.writeStroke(&stroke)
	r.end()
}

// FillCircle implements ggplan.Surface.
func (r *SVG) FillCircle(center ggplan.Point, radius float64, fill ggplan.FillStyle, stroke *ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	fmt.Fprintf(&r.body, `<circle cx="%v" cy="%v" r="%v"`, dec(center.X), dec(center.Y), dec(radius))
	r.writeFill(fill)
	r.writeStroke(stroke)
	r.end()
}

// StrokeEllipse implements ggplan.Surface. Rotation is in degrees,
// counter-clockwise on screen.
func (r *SVG) StrokeEllipse(center ggplan.Point, rx, ry, rotation float64, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	fmt.Fprintf(&r.body, `<ellipse cx="%v" cy="%v" rx="%v" ry="%v"`, dec(center.X), dec(center.Y), dec(rx), dec(ry))
	if rotation != 0 {
		fmt.Fprintf(&r.body, ` transform="rotate(%v %v %v)"`, dec(-rotation), dec(center.X), dec(center.Y))
	}
	r.body.WriteString(` fill="none"`)
	r.writeStroke(&stroke)
	r.end()
}

// FillJoinedArea implements ggplan.Surface.
func (r *SVG) FillJoinedArea(forward, reverse []ggplan.Point, fill ggplan.FillStyle, _ ...ggplan.DrawOption) {
	pts := make([]ggplan.Point, 0, len(forward)+len(reverse))
	pts = append(pts, forward...)
	pts = append(pts, reverse...)
	if len(pts) < 3 {
		return
	}
	fmt.Fprintf(&r.body, `<path d="%s"`, closedPath(pts))
	r.writeFill(fill)
	r.end()
}

// FillPolygon implements ggplan.Surface.
func (r *SVG) FillPolygon(points []ggplan.Point, fill ggplan.FillStyle, stroke *ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if len(points) < 3 {
		return
	}
	fmt.Fprintf(&r.body, `<polygon points="%s"`, pointList(points))
	r.writeFill(fill)
	r.writeStroke(stroke)
	r.end()
}

// StrokeArc implements ggplan.Surface. Arcs of zero sweep are skipped; a
// sweep of a full turn or more is drawn as a circle.
func (r *SVG) StrokeArc(center ggplan.Point, radius, start, end float64, clockwise bool, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	sweep := end - start
	if radius <= 0 || sweep == 0 {
		return
	}
	if math.Abs(sweep) >= 2*math.Pi {
		r.StrokeCircle(center, radius, stroke)
		return
	}
	p1 := ggplan.Pt(center.X+radius*math.Cos(start), center.Y+radius*math.Sin(start))
	p2 := ggplan.Pt(center.X+radius*math.Cos(end), center.Y+radius*math.Sin(end))
	large, sweepFlag := 0, 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep > 0 {
		sweepFlag = 1
	}
	fmt.Fprintf(&r.body, `<path d="M%v %vA%v %v 0 %d %d %v %v" fill="none"`,
		dec(p1.X), dec(p1.Y), dec(radius), dec(radius), large, sweepFlag, dec(p2.X), dec(p2.Y))
	r.writeStroke(&stroke)
	r.end()
}

// DrawText implements ggplan.Surface. Text with a font size of 0 is
// skipped.
func (r *SVG) DrawText(text string, pos ggplan.Point, font ggplan.FontStyle, opts ...ggplan.DrawOption) {
	if font.Size <= 0 || text == "" {
		return
	}
	o := ggplan.ResolveOptions(opts...)
	fmt.Fprintf(&r.body, `<text x="%v" y="%v"`, dec(pos.X), dec(pos.Y))
	if font.Family != "" {
		fmt.Fprintf(&r.body, ` font-family="%s"`, attr(font.Family))
	}
	fmt.Fprintf(&r.body, ` font-size="%v"`, dec(font.Size/r.scale()))
	if font.Weight != "" {
		fmt.Fprintf(&r.body, ` font-weight="%s"`, attr(font.Weight))
	}
	switch o.Align {
	case ggplan.AlignCenter:
		r.body.WriteString(` text-anchor="middle"`)
	case ggplan.AlignRight:
		r.body.WriteString(` text-anchor="end"`)
	}
	if o.Rotation != 0 {
		fmt.Fprintf(&r.body, ` transform="rotate(%v %v %v)"`, dec(-o.Rotation), dec(pos.X), dec(pos.Y))
	}
	color := font.Color
	if color == "" {
		color = "#000000"
	}
	fmt.Fprintf(&r.body, ` fill="%s">`, attr(color))
	xml.EscapeText(&r.body, []byte(text))
	r.body.WriteString("</text>")
	r.elements++
}

func (r *SVG) writeStroke(s *ggplan.StrokeStyle) {
	if s == nil || s.Width <= 0 {
		if s != nil {
			r.body.WriteString(` stroke="none"`)
		}
		return
	}
	color := s.Color
	if color == "" {
		color = "#000000"
	}
	fmt.Fprintf(&r.body, ` stroke="%s" stroke-width="%v"`, attr(color), dec(s.Width))
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = dec(d).String()
		}
		fmt.Fprintf(&r.body, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	if 0 < s.Opacity && s.Opacity < 1 {
		fmt.Fprintf(&r.body, ` stroke-opacity="%v"`, dec(s.Opacity))
	}
	if len(r.scales) > 0 {
		r.body.WriteString(` vector-effect="non-scaling-stroke"`)
	}
}

func (r *SVG) writeFill(f ggplan.FillStyle) {
	color := f.Color
	if color == "" {
		color = "#000000"
	}
	fmt.Fprintf(&r.body, ` fill="%s"`, attr(color))
	if 0 < f.Opacity && f.Opacity < 1 {
		fmt.Fprintf(&r.body, ` fill-opacity="%v"`, dec(f.Opacity))
	}
}

func (r *SVG) end() {
	r.body.WriteString("/>")
	r.elements++
}

func pointList(pts []ggplan.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v,%v", dec(p.X), dec(p.Y))
	}
	return sb.String()
}

func closedPath(pts []ggplan.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		fmt.Fprintf(&sb, "%v %v", dec(p.X), dec(p.Y))
	}
	sb.WriteByte('Z')
	return sb.String()
}

// attr escapes s for use inside a double-quoted attribute.
func attr(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
