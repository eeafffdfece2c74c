// Package config loads the view policy of a canvas from YAML: the update
// tolerance, culling margin, plan cache size, label thresholds and the
// defaults drawables fall back to.
//
// A missing key keeps its default, so an empty file is a valid config:
//
//	epsilon: 1e-6
//	margin: 1
//	cache_size: 1024
//	transform: true
//	labels:
//	  min_font_size: 6
//	  vanish_font_size: 3
//	shapes:
//	  point_radius: 4
//	  arrow_tip_size: 12
//	  angle_radius: 0.5
//	  text_gap: 4
//	  fill_opacity: 0.25
//	stroke:
//	  color: "#1a1a1a"
//	  width: 2
//	font:
//	  family: Go
//	  size: 14
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/drawables"
	"github.com/gogpu/ggplan/scene"
	"github.com/gogpu/ggplan/surface"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid value")

// Labels holds the label shrinking thresholds.
type Labels struct {
	MinFontSize    float64 `yaml:"min_font_size"`
	VanishFontSize float64 `yaml:"vanish_font_size"`
}

// Shapes holds the pixel and math sizes of decorations.
type Shapes struct {
	PointRadius  float64 `yaml:"point_radius"`
	ArrowTipSize float64 `yaml:"arrow_tip_size"`
	AngleRadius  float64 `yaml:"angle_radius"`
	TextGap      float64 `yaml:"text_gap"`
	FillOpacity  float64 `yaml:"fill_opacity"`
}

// Stroke is the default outline.
type Stroke struct {
	Color   string    `yaml:"color"`
	Width   float64   `yaml:"width"`
	Dash    []float64 `yaml:"dash,omitempty"`
	Opacity float64   `yaml:"opacity"`
}

// Font is the default label font.
type Font struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
	Weight string  `yaml:"weight,omitempty"`
	Color  string  `yaml:"color"`
}

// View is the decoded configuration.
type View struct {
	Epsilon   float64 `yaml:"epsilon"`
	Margin    float64 `yaml:"margin"`
	CacheSize int     `yaml:"cache_size"`
	Transform bool    `yaml:"transform"`
	Labels    Labels  `yaml:"labels"`
	Shapes    Shapes  `yaml:"shapes"`
	Stroke    Stroke  `yaml:"stroke"`
	Font      Font    `yaml:"font"`
}

// Default returns the built-in configuration.
func Default() View {
	o := drawables.DefaultOptions()
	return View{
		Epsilon:   ggplan.DefaultEpsilon,
		Margin:    scene.DefaultMargin,
		CacheSize: scene.DefaultCacheSize,
		Transform: true,
		Labels: Labels{
			MinFontSize:    o.LabelPolicy.MinFontSize,
			VanishFontSize: o.LabelPolicy.VanishFontSize,
		},
		Shapes: Shapes{
			PointRadius:  o.PointRadius,
			ArrowTipSize: o.ArrowTipSize,
			AngleRadius:  o.AngleRadius,
			TextGap:      o.TextGap,
			FillOpacity:  o.FillOpacity,
		},
		Stroke: Stroke{Color: o.Stroke.Color, Width: o.Stroke.Width, Opacity: o.Stroke.Opacity},
		Font:   Font{Family: o.Font.Family, Size: o.Font.Size, Color: o.Font.Color},
	}
}

// Load reads and parses a config file.
func Load(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return View{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML config over the defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (View, error) {
	v := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return View{}, fmt.Errorf("config: decode: %w", err)
	}
	v.applyDefaults()
	if err := v.validate(); err != nil {
		return View{}, err
	}
	return v, nil
}

// applyDefaults restores settings explicitly cleared to a zero value that
// has no meaning.
func (v *View) applyDefaults() {
	def := Default()
	if v.Epsilon == 0 {
		v.Epsilon = def.Epsilon
	}
	if v.Stroke.Color == "" {
		v.Stroke.Color = def.Stroke.Color
	}
	if v.Stroke.Opacity == 0 {
		v.Stroke.Opacity = def.Stroke.Opacity
	}
	if v.Font.Family == "" {
		v.Font.Family = def.Font.Family
	}
	if v.Font.Size == 0 {
		v.Font.Size = def.Font.Size
	}
	if v.Font.Color == "" {
		v.Font.Color = def.Font.Color
	}
}

func (v *View) validate() error {
	checks := []struct {
		ok   bool
		name string
		val  any
	}{
		{v.Epsilon > 0, "epsilon", v.Epsilon},
		{v.Margin >= 0, "margin", v.Margin},
		{v.CacheSize >= 0, "cache_size", v.CacheSize},
		{v.Labels.MinFontSize >= 0, "labels.min_font_size", v.Labels.MinFontSize},
		{v.Labels.VanishFontSize >= 0 && v.Labels.VanishFontSize <= v.Labels.MinFontSize, "labels.vanish_font_size", v.Labels.VanishFontSize},
		{v.Shapes.PointRadius >= 0, "shapes.point_radius", v.Shapes.PointRadius},
		{v.Shapes.ArrowTipSize >= 0, "shapes.arrow_tip_size", v.Shapes.ArrowTipSize},
		{v.Shapes.AngleRadius > 0, "shapes.angle_radius", v.Shapes.AngleRadius},
		{v.Shapes.FillOpacity >= 0 && v.Shapes.FillOpacity <= 1, "shapes.fill_opacity", v.Shapes.FillOpacity},
		{v.Stroke.Width >= 0, "stroke.width", v.Stroke.Width},
		{v.Stroke.Opacity > 0 && v.Stroke.Opacity <= 1, "stroke.opacity", v.Stroke.Opacity},
		{v.Font.Size > 0, "font.size", v.Font.Size},
		{validColor(v.Stroke.Color), "stroke.color", v.Stroke.Color},
		{validColor(v.Font.Color), "font.color", v.Font.Color},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("config: %s %v: %w", c.name, c.val, ErrInvalid)
		}
	}
	for _, d := range v.Stroke.Dash {
		if d < 0 {
			return fmt.Errorf("config: stroke.dash %v: %w", v.Stroke.Dash, ErrInvalid)
		}
	}
	return nil
}

func validColor(s string) bool {
	_, ok := surface.ParseColor(s)
	return ok
}

// LabelPolicy returns the label shrinking policy.
func (v View) LabelPolicy() ggplan.LabelPolicy {
	return ggplan.LabelPolicy{
		MinFontSize:    v.Labels.MinFontSize,
		VanishFontSize: v.Labels.VanishFontSize,
	}
}

// DrawOptions returns the defaults for the built-in draw callbacks.
func (v View) DrawOptions() drawables.Options {
	return drawables.Options{
		Stroke: ggplan.StrokeStyle{
			Color:   v.Stroke.Color,
			Width:   v.Stroke.Width,
			Dash:    append([]float64(nil), v.Stroke.Dash...),
			Opacity: v.Stroke.Opacity,
		},
		FillOpacity:  v.Shapes.FillOpacity,
		Font:         ggplan.FontStyle{Family: v.Font.Family, Size: v.Font.Size, Weight: v.Font.Weight, Color: v.Font.Color},
		PointRadius:  v.Shapes.PointRadius,
		ArrowTipSize: v.Shapes.ArrowTipSize,
		AngleRadius:  v.Shapes.AngleRadius,
		TextGap:      v.Shapes.TextGap,
		LabelPolicy:  v.LabelPolicy(),
	}
}

// PlanOptions returns the options plans are built with.
func (v View) PlanOptions() []ggplan.PlanOption {
	return []ggplan.PlanOption{
		ggplan.WithTransform(v.Transform),
		ggplan.WithEpsilon(v.Epsilon),
	}
}

// RendererOptions returns scene renderer options for this view, drawing
// with the built-in callbacks configured by DrawOptions.
func (v View) RendererOptions() []scene.RendererOption {
	return []scene.RendererOption{
		scene.WithRegistry(drawables.NewRegistry(v.DrawOptions())),
		scene.WithPlanOptions(v.PlanOptions()...),
		scene.WithEpsilon(v.Epsilon),
		scene.WithMargin(v.Margin),
		scene.WithCacheSize(v.CacheSize),
	}
}
