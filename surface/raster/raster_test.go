// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/surface"
)

func newRaster(t *testing.T, w, h int, bg string) *Raster {
	t.Helper()
	r, err := New(w, h, bg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func near(got, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= 2 && d(got.G, want.G) <= 2 && d(got.B, want.B) <= 2 && d(got.A, want.A) <= 2
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0, 10, "white"); err != surface.ErrInvalidSize {
		t.Errorf("New(0, 10) error = %v, want ErrInvalidSize", err)
	}
}

func TestBackground(t *testing.T) {
	r := newRaster(t, 40, 30, "white")
	img := r.Image()
	for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 29}, {39, 29}} {
		if got := rgba(img, p.X, p.Y); !near(got, white) {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}

	clear := newRaster(t, 4, 4, "")
	if got := rgba(clear.Image(), 1, 1); got.A != 0 {
		t.Errorf("unset background alpha = %d, want 0", got.A)
	}
}

func TestFillCircle(t *testing.T) {
	r := newRaster(t, 100, 100, "white")
	r.FillCircle(ggplan.Pt(50, 50), 20, ggplan.FillStyle{Color: "#ff0000", Opacity: 1}, nil)
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	img := r.Image()
	if got := rgba(img, 50, 50); !near(got, red) {
		t.Errorf("center = %v, want red", got)
	}
	if got := rgba(img, 5, 5); !near(got, white) {
		t.Errorf("corner = %v, want white", got)
	}
	if r.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1", r.Calls())
	}
}

func TestStrokeLine(t *testing.T) {
	r := newRaster(t, 50, 50, "white")
	r.StrokeLine(ggplan.Pt(0, 25), ggplan.Pt(50, 25), ggplan.StrokeStyle{Color: "red", Width: 6})

	img := r.Image()
	if got := rgba(img, 25, 25); !near(got, red) {
		t.Errorf("on line = %v, want red", got)
	}
	if got := rgba(img, 25, 5); !near(got, white) {
		t.Errorf("off line = %v, want white", got)
	}
}

func TestSkippedPrimitives(t *testing.T) {
	r := newRaster(t, 30, 30, "white")
	before := r.Image().(*image.RGBA).Pix

	font := ggplan.FontStyle{Size: 0, Color: "#000000"}
	r.DrawText("hidden", ggplan.Pt(5, 20), font)
	r.StrokeLine(ggplan.Pt(0, 0), ggplan.Pt(30, 30), ggplan.StrokeStyle{Color: "red"})
	r.StrokeCircle(ggplan.Pt(15, 15), 0, ggplan.StrokeStyle{Color: "red", Width: 2})
	r.StrokeArc(ggplan.Pt(15, 15), 10, 1, 1, false, ggplan.StrokeStyle{Color: "red", Width: 2})
	r.FillPolygon([]ggplan.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, ggplan.FillStyle{Color: "red", Opacity: 1}, nil)

	after := r.Image().(*image.RGBA).Pix
	if !bytes.Equal(before, after) {
		t.Error("skipped primitives changed the frame")
	}
}

func TestText(t *testing.T) {
	r := newRaster(t, 120, 40, "white")
	r.DrawText("Hello", ggplan.Pt(60, 30), ggplan.FontStyle{Size: 24, Weight: "bold", Color: "#000000"},
		ggplan.WithAlign(ggplan.AlignCenter))

	img := r.Image().(*image.RGBA)
	dark := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 128 {
			dark++
		}
	}
	if dark == 0 {
		t.Error("DrawText() left no dark pixels")
	}
	if len(r.faces) != 1 {
		t.Errorf("cached faces = %d, want 1", len(r.faces))
	}
}

func TestTextFaceCacheBounded(t *testing.T) {
	r := newRaster(t, 120, 40, "white")
	for i := 0; i < 100; i++ {
		size := 12 + float64(i)/1000
		r.DrawText("a", ggplan.Pt(10, 30), ggplan.FontStyle{Size: size, Color: "#000000"})
	}
	if len(r.faces) != 1 {
		t.Errorf("cached faces = %d, want 1 for sizes within a quarter pixel", len(r.faces))
	}

	r.DrawText("a", ggplan.Pt(10, 30), ggplan.FontStyle{Size: 18, Color: "#000000"})
	r.Reset()
	if len(r.faces) != 0 {
		t.Errorf("cached faces after Reset = %d, want 0", len(r.faces))
	}
}

func TestReset(t *testing.T) {
	r := newRaster(t, 20, 20, "white")
	r.FillPolygon([]ggplan.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}},
		ggplan.FillStyle{Color: "red", Opacity: 1}, nil)
	if got := rgba(r.Image(), 10, 10); !near(got, red) {
		t.Fatalf("filled = %v, want red", got)
	}

	r.Reset()
	if got := rgba(r.Image(), 10, 10); !near(got, white) {
		t.Errorf("after Reset = %v, want white", got)
	}
	if r.Calls() != 0 {
		t.Errorf("Calls() after Reset = %d, want 0", r.Calls())
	}
}

func TestWriteTo(t *testing.T) {
	r := newRaster(t, 64, 32, "white")
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, want %d", n, buf.Len())
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want 64x32", b)
	}
}

func TestSavePNG(t *testing.T) {
	r := newRaster(t, 8, 8, "black")
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
}

func TestRegistered(t *testing.T) {
	target, err := surface.NewTargetForFile("out/frame.PNG", surface.Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("NewTargetForFile() error = %v", err)
	}
	defer target.Close()
	if _, ok := target.(*Raster); !ok {
		t.Errorf("NewTargetForFile() = %T, want *Raster", target)
	}
}
