package ggplan

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()

	if m.A != 1 || m.B != 0 || m.C != 0 ||
		m.D != 0 || m.E != 1 || m.F != 0 {
		t.Errorf("Identity() = %+v, want identity matrix", m)
	}
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false, want true")
	}
}

func TestSimilarity(t *testing.T) {
	m := Similarity(2, 10, -20)

	p := m.TransformPoint(Pt(5, 5))
	if p != Pt(20, -10) {
		t.Errorf("TransformPoint(5, 5) = %v, want (20, -10)", p)
	}
	if got := m.ScaleFactor(); got != 2 {
		t.Errorf("ScaleFactor() = %v, want 2", got)
	}
	if m.IsIdentity() {
		t.Error("Similarity(2, 10, -20).IsIdentity() = true, want false")
	}
}

func TestMatrixString(t *testing.T) {
	tests := []struct {
		m    Matrix
		want string
	}{
		{Identity(), "matrix(1 0 0 1 0 0)"},
		{Similarity(2, -250, 12.5), "matrix(2 0 0 2 -250 12.5)"},
		{Similarity(1.0/3, 0, 0), "matrix(0.3333 0 0 0.3333 0 0)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTransformRect(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	got := Similarity(2, 1, -1).TransformRect(r)
	want := Rect{MinX: 1, MinY: -1, MaxX: 21, MaxY: 9}
	if got != want {
		t.Errorf("TransformRect() = %+v, want %+v", got, want)
	}
}

func TestRectExtendAndIntersects(t *testing.T) {
	r := emptyRect()
	if r.IsValid() {
		t.Fatal("emptyRect().IsValid() = true, want false")
	}
	r = r.Extend(Pt(1, 2)).Extend(Pt(-3, 4)).Extend(Pt(math.NaN(), 0))
	want := Rect{MinX: -3, MinY: 2, MaxX: 1, MaxY: 4}
	if r != want {
		t.Errorf("Extend() = %+v, want %+v", r, want)
	}

	if !r.Intersects(Rect{MinX: 1, MinY: 4, MaxX: 9, MaxY: 9}) {
		t.Error("touching rectangles should intersect")
	}
	if r.Intersects(Rect{MinX: 1.5, MinY: 0, MaxX: 9, MaxY: 9}) {
		t.Error("disjoint rectangles should not intersect")
	}
}
