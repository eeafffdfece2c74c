package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/drawables"
	"github.com/gogpu/ggplan/scene"
	"github.com/tdewolff/test"
	"seehuhn.de/go/geom/vec"
)

func TestDefault(t *testing.T) {
	v := Default()
	test.Float(t, v.Epsilon, ggplan.DefaultEpsilon)
	test.Float(t, v.Margin, 1)
	test.T(t, v.CacheSize, scene.DefaultCacheSize)
	test.That(t, v.Transform, "transform enabled by default")
	test.Error(t, v.validate())

	o := v.DrawOptions()
	def := drawables.DefaultOptions()
	test.T(t, o.Stroke.Color, def.Stroke.Color)
	test.Float(t, o.Stroke.Width, def.Stroke.Width)
	test.Float(t, o.Font.Size, def.Font.Size)
	test.T(t, o.LabelPolicy, def.LabelPolicy)
}

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{"", "# nothing here\n"} {
		v, err := Parse([]byte(data))
		test.Error(t, err)
		test.T(t, v.CacheSize, Default().CacheSize)
	}
}

func TestParse(t *testing.T) {
	v, err := Parse([]byte(strings.TrimSpace(`
epsilon: 1e-4
margin: 0
cache_size: 16
transform: false
labels:
  min_font_size: 8
  vanish_font_size: 5
shapes:
  arrow_tip_size: 20
  angle_radius: 1.5
stroke:
  color: steelblue
  width: 3
  dash: [6, 3]
font:
  size: 18
  weight: bold
`)))
	test.Error(t, err)
	test.Float(t, v.Epsilon, 1e-4)
	test.Float(t, v.Margin, 0)
	test.T(t, v.CacheSize, 16)
	test.That(t, !v.Transform, "transform disabled")

	o := v.DrawOptions()
	test.T(t, o.LabelPolicy, ggplan.LabelPolicy{MinFontSize: 8, VanishFontSize: 5})
	test.Float(t, o.ArrowTipSize, 20)
	test.Float(t, o.AngleRadius, 1.5)
	test.Float(t, o.PointRadius, Default().Shapes.PointRadius)
	test.T(t, o.Stroke.Color, "steelblue")
	test.T(t, len(o.Stroke.Dash), 2)
	test.Float(t, o.Stroke.Opacity, 1)
	test.Float(t, o.Font.Size, 18)
	test.T(t, o.Font.Weight, "bold")
	test.T(t, o.Font.Family, "Go")
}

func TestParseRestoresClearedValues(t *testing.T) {
	v, err := Parse([]byte("epsilon: 0\nstroke:\n  color: \"\"\nfont:\n  size: 0\n"))
	test.Error(t, err)
	def := Default()
	test.Float(t, v.Epsilon, def.Epsilon)
	test.T(t, v.Stroke.Color, def.Stroke.Color)
	test.Float(t, v.Font.Size, def.Font.Size)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "margin: [", "config: decode"},
		{"unknown key", "zoom: 2\n", "config: decode"},
		{"negative margin", "margin: -1\n", "margin"},
		{"negative cache", "cache_size: -5\n", "cache_size"},
		{"vanish above min", "labels:\n  min_font_size: 2\n", "labels.vanish_font_size"},
		{"opacity", "shapes:\n  fill_opacity: 1.5\n", "shapes.fill_opacity"},
		{"color", "stroke:\n  color: notacolor\n", "stroke.color"},
		{"dash", "stroke:\n  dash: [2, -1]\n", "stroke.dash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() succeeded, want an error")
			}
			test.That(t, strings.Contains(err.Error(), tt.want), "error", err, "does not mention", tt.want)
			if !strings.Contains(tt.want, "decode") {
				test.That(t, errors.Is(err, ErrInvalid), "want ErrInvalid")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "view.yaml")
	if err := os.WriteFile(path, []byte("cache_size: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := Load(path)
	test.Error(t, err)
	test.T(t, v.CacheSize, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	test.That(t, errors.Is(err, os.ErrNotExist), "want os.ErrNotExist")
}

func TestRendererOptions(t *testing.T) {
	v := Default()
	v.CacheSize = 2
	r := scene.NewRenderer(200, 100, v.RendererOptions()...)

	m := ggplan.NewCoordinateMapper(200, 100)
	ds := []ggplan.Drawable{
		&drawables.Segment{Base: drawables.Base{ID: "a"}, To: vec.Vec2{X: 1, Y: 1}},
		&drawables.Segment{Base: drawables.Base{ID: "b"}, To: vec.Vec2{X: 1}},
		&drawables.Segment{Base: drawables.Base{ID: "c"}, To: vec.Vec2{Y: 1}},
	}
	stats := r.Render(ggplan.NewRecorder(), m, ds)
	test.T(t, stats.Built, 3)
	test.T(t, stats.Failed, 0)
	test.That(t, r.CacheStats().Len <= 2, "cache holds", r.CacheStats().Len, "plans")
}
