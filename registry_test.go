package ggplan

import (
	"errors"
	"reflect"
	"testing"
)

// testSegment is a minimal drawable used by the registry and factory tests.
type testSegment struct {
	name       string
	renderable bool
	a, b       [2]float64
}

func (s *testSegment) Name() string       { return s.name }
func (s *testSegment) ClassName() string  { return "testsegment" }
func (s *testSegment) IsRenderable() bool { return s.renderable }

func drawTestSegment(s Surface, d Drawable, m Mapper) {
	seg := d.(*testSegment)
	x1, y1 := m.MathToScreen(seg.a[0], seg.a[1])
	x2, y2 := m.MathToScreen(seg.b[0], seg.b[1])
	s.StrokeLine(Pt(x1, y1), Pt(x2, y2), defaultStroke)
}

func TestRegistryRegisterLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register("testsegment", drawTestSegment)
	reg.Register("other", func(Surface, Drawable, Mapper) {})

	if _, ok := reg.Lookup("testsegment"); !ok {
		t.Error("Lookup(testsegment) ok = false")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("Lookup(missing) ok = true")
	}
	if got, want := reg.Names(), []string{"other", "testsegment"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	reg.Unregister("other")
	reg.Unregister("never registered")
	if got := reg.Names(); len(got) != 1 {
		t.Errorf("Names() after Unregister = %v", got)
	}
}

func TestRegistryPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *Registry)
	}{
		{"duplicate", func(r *Registry) {
			r.Register("x", drawTestSegment)
			r.Register("x", drawTestSegment)
		}},
		{"nil func", func(r *Registry) {
			r.Register("y", nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register did not panic")
				}
			}()
			tt.fn(NewRegistry())
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != defaultRegistry {
		t.Error("DefaultRegistry() returned a different registry")
	}
	Register("ggplan.test.default", drawTestSegment)
	defer DefaultRegistry().Unregister("ggplan.test.default")

	if _, ok := DefaultRegistry().Lookup("ggplan.test.default"); !ok {
		t.Error("package-level Register did not reach the default registry")
	}
}

func TestBuild(t *testing.T) {
	reg := NewRegistry()
	reg.Register("testsegment", drawTestSegment)
	m := &CoordinateMapper{Scale: 1, OriginX: 250, OriginY: 250}

	p, err := Build(&testSegment{name: "s", renderable: true, b: [2]float64{3, 4}}, m, reg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.BaseState() != Capture(m) {
		t.Errorf("BaseState() = %+v, want %+v", p.BaseState(), Capture(m))
	}
	line := p.Commands()[0].(*LineCommand)
	if line.P2 != Pt(253, 246) {
		t.Errorf("P2 = %v, want (253, 246)", line.P2)
	}
}

func TestBuildErrors(t *testing.T) {
	reg := NewRegistry()
	reg.Register("testsegment", drawTestSegment)
	m := NewCoordinateMapper(100, 100)

	tests := []struct {
		name string
		d    Drawable
		reg  *Registry
		want error
	}{
		{"nil drawable", nil, reg, ErrNilDrawable},
		{"hidden", &testSegment{renderable: false}, reg, ErrNotRenderable},
		{"unknown class", &testSegment{renderable: true}, NewRegistry(), ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.d, m, tt.reg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
			if p != nil {
				t.Error("Build() returned a plan on error")
			}
		})
	}
}

func TestRecordCapturesStateBeforeDrawing(t *testing.T) {
	m := &CoordinateMapper{Scale: 2}
	mutating := func(s Surface, d Drawable, mm Mapper) {
		drawTestSegment(s, d, mm)
		m.Scale = 9
	}
	p := Record(mutating, &testSegment{renderable: true, b: [2]float64{1, 1}}, m)
	if p.BaseState().Scale != 2 {
		t.Errorf("BaseState().Scale = %v, want 2", p.BaseState().Scale)
	}
}
