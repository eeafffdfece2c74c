// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is a surface backend that draws each frame into a
// gogpu/gg context and encodes it as PNG.
//
// Colors are resolved with [surface.ParseColor]; unknown colors draw black.
// Text is set in the Go fonts. Text rotation is not supported and is
// ignored.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/surface"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func init() {
	surface.Register("png", 10, func(opts surface.Options) (surface.Target, error) {
		return New(opts.Width, opts.Height, opts.Background)
	}, ".png")
}

// faceSizeStep is the font size granularity of cached faces.
const faceSizeStep = 0.25

type faceKey struct {
	bold bool
	size float64
}

// Raster draws primitives into a gg.Context.
//
// Raster is not safe for concurrent use.
type Raster struct {
	ctx        *gg.Context
	background color.NRGBA
	regular    *text.FontSource
	bold       *text.FontSource
	faces      map[faceKey]text.Face

	err   error // first failed fill or stroke
	calls int
}

var _ surface.Target = (*Raster)(nil)

// New returns a cleared frame of the given size.
func New(width, height int, background string) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, surface.ErrInvalidSize
	}
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load bold font: %w", err)
	}
	r := &Raster{
		ctx:     gg.NewContext(width, height),
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]text.Face),
	}
	if bg, ok := surface.ParseColor(background); ok {
		r.background = bg
	}
	r.Reset()
	return r, nil
}

// Image returns a copy of the current frame.
func (r *Raster) Image() image.Image {
	return r.ctx.Image()
}

// Err returns the first error reported by the rasterizer since the last
// Reset.
func (r *Raster) Err() error {
	return r.err
}

// Calls returns the number of primitives drawn since the last Reset.
func (r *Raster) Calls() int {
	return r.calls
}

// Reset implements surface.Target.
func (r *Raster) Reset() {
	r.ctx.ClearPath()
	if r.background.A == 0 {
		r.ctx.Clear()
	} else {
		r.ctx.ClearWithColor(gg.FromColor(r.background))
	}
	r.err = nil
	r.calls = 0
	clear(r.faces)
}

// WriteTo encodes the frame as PNG.
func (r *Raster) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := r.ctx.EncodePNG(&buf); err != nil {
		return 0, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.WriteTo(w)
}

// SavePNG writes the frame to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}

// Close implements surface.Target.
func (r *Raster) Close() error {
	return r.ctx.Close()
}

func (r *Raster) setStroke(s ggplan.StrokeStyle) {
	r.ctx.SetColor(resolve(s.Color, s.Opacity))
	r.ctx.SetLineWidth(s.Width)
	if len(s.Dash) > 0 {
		r.ctx.SetDash(s.Dash...)
	} else {
		r.ctx.ClearDash()
	}
}

func (r *Raster) setFill(f ggplan.FillStyle) {
	r.ctx.SetColor(resolve(f.Color, f.Opacity))
}

func (r *Raster) stroke(s ggplan.StrokeStyle) {
	if s.Width <= 0 {
		r.ctx.ClearPath()
		return
	}
	r.setStroke(s)
	r.check(r.ctx.Stroke())
}

// fill fills the current path, then strokes it when stroke is set.
func (r *Raster) fill(f ggplan.FillStyle, stroke *ggplan.StrokeStyle) {
	r.setFill(f)
	if stroke == nil || stroke.Width <= 0 {
		r.check(r.ctx.Fill())
		return
	}
	r.check(r.ctx.FillPreserve())
	r.stroke(*stroke)
}

func (r *Raster) check(err error) {
	r.calls++
	if err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Raster) path(pts []ggplan.Point, closed bool) {
	r.ctx.ClearPath()
	for i, p := range pts {
		if i == 0 {
			r.ctx.MoveTo(p.X, p.Y)
		} else {
			r.ctx.LineTo(p.X, p.Y)
		}
	}
	if closed {
		r.ctx.ClosePath()
	}
}

// StrokeLine implements ggplan.Surface.
func (r *Raster) StrokeLine(p1, p2 ggplan.Point, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	r.path([]ggplan.Point{p1, p2}, false)
	r.stroke(stroke)
}

// StrokePolyline implements ggplan.Surface.
func (r *Raster) StrokePolyline(points []ggplan.Point, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if len(points) < 2 {
		return
	}
	r.path(points, false)
	r.stroke(stroke)
}

// StrokeCircle implements ggplan.Surface.
func (r *Raster) StrokeCircle(center ggplan.Point, radius float64, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if radius <= 0 {
		return
	}
	r.ctx.ClearPath()
	r.ctx.DrawCircle(center.X, center.Y, radius)
	r.stroke(stroke)
}

// FillCircle implements ggplan.Surface.
func (r *Raster) FillCircle(center ggplan.Point, radius float64, fill ggplan.FillStyle, stroke *ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if radius <= 0 {
		return
	}
	r.ctx.ClearPath()
	r.ctx.DrawCircle(center.X, center.Y, radius)
	r.fill(fill, stroke)
}

// StrokeEllipse implements ggplan.Surface. Rotation is in degrees,
// counter-clockwise on screen.
func (r *Raster) StrokeEllipse(center ggplan.Point, rx, ry, rotation float64, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if rx <= 0 || ry <= 0 {
		return
	}
	r.ctx.ClearPath()
	r.ctx.Push()
	r.ctx.Translate(center.X, center.Y)
	r.ctx.Rotate(-rotation * math.Pi / 180)
	r.ctx.DrawEllipse(0, 0, rx, ry)
	r.ctx.Pop()
	r.stroke(stroke)
}

// FillJoinedArea implements ggplan.Surface.
func (r *Raster) FillJoinedArea(forward, reverse []ggplan.Point, fill ggplan.FillStyle, _ ...ggplan.DrawOption) {
	pts := make([]ggplan.Point, 0, len(forward)+len(reverse))
	pts = append(pts, forward...)
	pts = append(pts, reverse...)
	if len(pts) < 3 {
		return
	}
	r.path(pts, true)
	r.fill(fill, nil)
}

// FillPolygon implements ggplan.Surface.
func (r *Raster) FillPolygon(points []ggplan.Point, fill ggplan.FillStyle, stroke *ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if len(points) < 3 {
		return
	}
	r.path(points, true)
	r.fill(fill, stroke)
}

// StrokeArc implements ggplan.Surface.
func (r *Raster) StrokeArc(center ggplan.Point, radius, start, end float64, clockwise bool, stroke ggplan.StrokeStyle, _ ...ggplan.DrawOption) {
	if radius <= 0 || start == end {
		return
	}
	r.ctx.ClearPath()
	switch {
	case math.Abs(end-start) >= 2*math.Pi:
		r.ctx.DrawCircle(center.X, center.Y, radius)
	case end > start:
		r.ctx.DrawArc(center.X, center.Y, radius, start, end)
	default:
		// Same arc walked from the other end.
		r.ctx.DrawArc(center.X, center.Y, radius, end, start)
	}
	r.stroke(stroke)
}

// DrawText implements ggplan.Surface. Text with a font size of 0 is
// skipped.
func (r *Raster) DrawText(s string, pos ggplan.Point, font ggplan.FontStyle, opts ...ggplan.DrawOption) {
	if font.Size <= 0 || s == "" {
		return
	}
	o := ggplan.ResolveOptions(opts...)
	r.ctx.SetFont(r.face(font))
	r.ctx.SetColor(resolve(font.Color, 1))

	var ax float64
	switch o.Align {
	case ggplan.AlignCenter:
		ax = 0.5
	case ggplan.AlignRight:
		ax = 1
	}
	r.ctx.DrawStringAnchored(s, pos.X, pos.Y, ax, 0)
	r.calls++
}

func (r *Raster) face(font ggplan.FontStyle) text.Face {
	size := max(math.Round(font.Size/faceSizeStep)*faceSizeStep, faceSizeStep)
	key := faceKey{bold: strings.EqualFold(font.Weight, "bold"), size: size}
	if f, ok := r.faces[key]; ok {
		return f
	}
	src := r.regular
	if key.bold {
		src = r.bold
	}
	f := src.Face(size)
	r.faces[key] = f
	return f
}

func resolve(s string, opacity float64) color.NRGBA {
	c, ok := surface.ParseColor(s)
	if !ok {
		c = color.NRGBA{A: 255}
	}
	return surface.WithOpacity(c, opacity)
}
