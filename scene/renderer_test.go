package scene

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/drawables"
	"seehuhn.de/go/geom/vec"
)

// countSurface counts the primitives it is asked to draw.
type countSurface struct {
	calls map[string]int
}

func newCountSurface() *countSurface { return &countSurface{calls: make(map[string]int)} }

func (s *countSurface) StrokeLine(ggplan.Point, ggplan.Point, ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["line"]++
}

func (s *countSurface) StrokePolyline([]ggplan.Point, ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["polyline"]++
}

func (s *countSurface) StrokeCircle(ggplan.Point, float64, ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["circle"]++
}

func (s *countSurface) FillCircle(ggplan.Point, float64, ggplan.FillStyle, *ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["circle"]++
}

func (s *countSurface) StrokeEllipse(ggplan.Point, float64, float64, float64, ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["ellipse"]++
}

func (s *countSurface) FillJoinedArea([]ggplan.Point, []ggplan.Point, ggplan.FillStyle, ...ggplan.DrawOption) {
	s.calls["area"]++
}

func (s *countSurface) FillPolygon([]ggplan.Point, ggplan.FillStyle, *ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["polygon"]++
}

func (s *countSurface) StrokeArc(ggplan.Point, float64, float64, float64, bool, ggplan.StrokeStyle, ...ggplan.DrawOption) {
	s.calls["arc"]++
}

func (s *countSurface) DrawText(string, ggplan.Point, ggplan.FontStyle, ...ggplan.DrawOption) {
	s.calls["text"]++
}

// boom is a drawable whose callback panics.
type boom struct{}

func (boom) Name() string       { return "boom" }
func (boom) ClassName() string  { return "boom" }
func (boom) IsRenderable() bool { return true }

var registry = func() *ggplan.Registry {
	reg := drawables.NewRegistry(drawables.DefaultOptions())
	reg.Register("boom", func(ggplan.Surface, ggplan.Drawable, ggplan.Mapper) {
		panic("callback exploded")
	})
	return reg
}()

func v2(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func segment(name string, x1, y1, x2, y2 float64) *drawables.Segment {
	return &drawables.Segment{Base: drawables.Base{ID: name}, From: v2(x1, y1), To: v2(x2, y2)}
}

func newMapper() *ggplan.CoordinateMapper {
	m := ggplan.NewCoordinateMapper(800, 600)
	m.Scale = 50
	return m
}

func TestRenderLifecycle(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	m := newMapper()
	s := newCountSurface()
	ds := []ggplan.Drawable{
		segment("s", 0, 0, 1, 1),
		&drawables.Point{Base: drawables.Base{ID: "P"}, At: v2(1, 1)},
	}

	st := r.Render(s, m, ds)
	if st.Built != 2 || st.Applied != 2 || st.Updated != 0 {
		t.Errorf("first frame = %+v, want 2 built, 2 applied", st)
	}
	if s.calls["line"] != 1 || s.calls["circle"] != 1 {
		t.Errorf("surface calls = %v, want one line and one circle", s.calls)
	}

	st = r.Render(s, m, ds)
	if st.Built != 0 || st.Updated != 0 || st.Applied != 0 {
		t.Errorf("unchanged frame = %+v, want no work", st)
	}

	m.ZoomAt(2, 400, 300)
	st = r.Render(s, m, ds)
	if st.Built != 0 || st.Updated != 2 || st.Applied != 2 {
		t.Errorf("zoomed frame = %+v, want 2 updated, 2 applied", st)
	}
	if r.Stats() != st {
		t.Errorf("Stats() = %+v, want last frame %+v", r.Stats(), st)
	}
}

func TestRenderFullRedraw(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry), WithFullRedraw())
	m := newMapper()
	ds := []ggplan.Drawable{segment("a", 0, 0, 1, 0), segment("b", 0, 0, 0, 1)}

	r.Render(newCountSurface(), m, ds)
	s := newCountSurface()
	st := r.Render(s, m, ds)
	if st.Applied != 2 || s.calls["line"] != 2 {
		t.Errorf("Applied = %d, lines = %d, want 2 and 2", st.Applied, s.calls["line"])
	}
}

func TestRenderRebuildsOnContentChange(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	m := newMapper()
	seg := segment("s", 0, 0, 1, 1)
	ds := []ggplan.Drawable{seg}

	r.Render(newCountSurface(), m, ds)
	before, _ := r.Plan("s")

	seg.To = v2(2, 2)
	st := r.Render(newCountSurface(), m, ds)
	if st.Built != 1 || st.Rebuilt != 1 || st.Applied != 1 {
		t.Errorf("frame = %+v, want 1 built, 1 rebuilt, 1 applied", st)
	}
	after, ok := r.Plan("s")
	if !ok || after == before {
		t.Error("content change did not replace the plan")
	}
}

func TestRenderEvictsVanishedDrawables(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	m := newMapper()
	a, b := segment("a", 0, 0, 1, 0), segment("b", 0, 0, 0, 1)

	r.Render(newCountSurface(), m, []ggplan.Drawable{a, b})
	st := r.Render(newCountSurface(), m, []ggplan.Drawable{a})
	if st.Evicted != 1 {
		t.Errorf("Evicted = %d, want 1", st.Evicted)
	}
	if _, ok := r.Plan("b"); ok {
		t.Error("plan of a vanished drawable is still cached")
	}
}

func TestRenderCulling(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	m := newMapper()
	ds := []ggplan.Drawable{segment("far", 100, 100, 101, 101)}

	st := r.Render(newCountSurface(), m, ds)
	if st.Culled != 1 || st.Applied != 0 {
		t.Errorf("offscreen frame = %+v, want 1 culled", st)
	}

	m.Pan(-5000, 5000)
	s := newCountSurface()
	st = r.Render(s, m, ds)
	if st.Culled != 0 || st.Applied != 1 || s.calls["line"] != 1 {
		t.Errorf("panned frame = %+v, want 1 applied", st)
	}
}

func TestRenderSurvivesPanickingCallback(t *testing.T) {
	var buf bytes.Buffer
	ggplan.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer ggplan.SetLogger(nil)

	r := NewRenderer(800, 600, WithRegistry(registry))
	s := newCountSurface()
	st := r.Render(s, newMapper(), []ggplan.Drawable{boom{}, segment("s", 0, 0, 1, 1)})

	if st.Failed != 1 || st.Built != 1 || st.Applied != 1 {
		t.Errorf("frame = %+v, want 1 failed, 1 built, 1 applied", st)
	}
	if !strings.Contains(buf.String(), "callback exploded") {
		t.Errorf("log output %q does not mention the panic", buf.String())
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(ggplan.NewRegistry()))
	st := r.Render(newCountSurface(), newMapper(), []ggplan.Drawable{segment("s", 0, 0, 1, 1)})
	if st.Failed != 1 || st.Built != 0 {
		t.Errorf("frame = %+v, want 1 failed", st)
	}
}

func TestRenderHiddenDrawable(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	seg := segment("s", 0, 0, 1, 1)
	seg.Hidden = true

	st := r.Render(newCountSurface(), newMapper(), []ggplan.Drawable{seg, nil})
	if st.Hidden != 1 || st.Built != 0 || st.Applied != 0 {
		t.Errorf("frame = %+v, want 1 hidden", st)
	}
}

func TestRenderCacheSoftLimit(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry), WithCacheSize(4))
	ds := make([]ggplan.Drawable, 10)
	for i := range ds {
		ds[i] = segment("s"+strconv.Itoa(i), 0, 0, 1, float64(i))
	}

	st := r.Render(newCountSurface(), newMapper(), ds)
	if st.Applied != 10 {
		t.Errorf("Applied = %d, want 10", st.Applied)
	}
	if st.Evicted != 6 {
		t.Errorf("Evicted = %d, want 6", st.Evicted)
	}
	if cs := r.CacheStats(); cs.Len != 4 {
		t.Errorf("cache Len = %d, want 4", cs.Len)
	}
}

func TestRenderWithContextCanceled(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := r.RenderWithContext(ctx, newCountSurface(), newMapper(), []ggplan.Drawable{segment("s", 0, 0, 1, 1)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderWithContext() error = %v, want context.Canceled", err)
	}
	if st.Applied != 0 {
		t.Errorf("Applied = %d, want 0", st.Applied)
	}
}

func TestInvalidate(t *testing.T) {
	r := NewRenderer(800, 600, WithRegistry(registry))
	m := newMapper()
	ds := []ggplan.Drawable{segment("a", 0, 0, 1, 0), segment("b", 0, 0, 0, 1)}
	r.Render(newCountSurface(), m, ds)

	r.Invalidate("a")
	if st := r.Render(newCountSurface(), m, ds); st.Built != 1 {
		t.Errorf("Built = %d after Invalidate(a), want 1", st.Built)
	}
	r.Invalidate()
	if st := r.Render(newCountSurface(), m, ds); st.Built != 2 {
		t.Errorf("Built = %d after Invalidate(), want 2", st.Built)
	}
}

func TestPlanKey(t *testing.T) {
	if got := planKey(segment("", 0, 0, 1, 1), 3); got != "segment#3" {
		t.Errorf("planKey(unnamed) = %q, want %q", got, "segment#3")
	}
	if got := planKey(segment("s", 0, 0, 1, 1), 3); got != "s" {
		t.Errorf("planKey(named) = %q, want %q", got, "s")
	}
}

func TestRendererOptions(t *testing.T) {
	r := NewRenderer(100, 100, WithMargin(-1), WithEpsilon(0), WithPlanOptions(ggplan.WithTransform(false)))
	if r.margin != DefaultMargin || r.epsilon != ggplan.DefaultEpsilon {
		t.Errorf("margin, epsilon = %v, %v, want defaults", r.margin, r.epsilon)
	}
	r.Resize(10, 20)
	if r.width != 10 || r.height != 20 {
		t.Errorf("size after Resize = %vx%v, want 10x20", r.width, r.height)
	}

	ggplan.Register("ggplan.scene.test", func(s ggplan.Surface, d ggplan.Drawable, m ggplan.Mapper) {
		s.StrokeLine(ggplan.Pt(0, 0), ggplan.Pt(1, 1), ggplan.StrokeStyle{Width: 1})
	})
	defer ggplan.DefaultRegistry().Unregister("ggplan.scene.test")
	st := r.Render(newCountSurface(), newMapper(), []ggplan.Drawable{named("ggplan.scene.test")})
	if st.Built != 1 {
		t.Errorf("default registry frame = %+v, want 1 built", st)
	}
	if p, _ := r.Plan("x"); p.IsAffine() {
		t.Error("WithTransform(false) plan option was not passed on")
	}
}

// named is a drawable of an arbitrary class.
type named string

func (n named) Name() string       { return "x" }
func (n named) ClassName() string  { return string(n) }
func (n named) IsRenderable() bool { return true }
