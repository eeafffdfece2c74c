package ggplan

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Metadata is the semantic block a draw callback attaches to a command whose
// later correctness depends on more than its screen coordinates. It is a
// sealed interface: only the types in this package implement it.
//
// Once attached, metadata is retained for the lifetime of the plan; every
// reprojection reads it.
type Metadata interface {
	metadataMarker()
}

// ArcMeta is metadata accepted by stroke-arc commands.
type ArcMeta interface {
	Metadata
	arcMeta()
}

// TextMeta is metadata accepted by text commands.
type TextMeta interface {
	Metadata
	textMeta()
}

// AngleMeta describes the arc and label of an angle drawable.
type AngleMeta struct {
	// Vertex and the two arm end points in math space.
	Vertex, Arm1, Arm2 vec.Vec2
	// BaseRadius is the arc radius in math units at record time.
	BaseRadius float64
	// MinArmLength is the length of the shorter arm in math units.
	// The arc radius never exceeds MinArmLength*scale.
	MinArmLength float64
	// Clockwise is the on-screen sweep direction from Arm1 towards Arm2.
	Clockwise bool
	// SweepDegrees is the unsigned angular extent of the arc.
	SweepDegrees float64
	// TextGap is the pixel distance between the arc and the label anchor.
	TextGap float64
	// Baseline is a pixel shift applied to the label anchor's Y.
	Baseline float64
}

// NewAngleMeta describes the angle at vertex between the arms towards arm1
// and arm2, drawn with an arc of the given math radius. The sweep runs from
// arm1 to arm2 the short way round; a zero-length arm yields a zero sweep.
func NewAngleMeta(vertex, arm1, arm2 vec.Vec2, radius float64) *AngleMeta {
	d1 := arm1.Sub(vertex)
	d2 := arm2.Sub(vertex)
	l1, l2 := d1.Length(), d2.Length()

	m := &AngleMeta{
		Vertex:       vertex,
		Arm1:         arm1,
		Arm2:         arm2,
		BaseRadius:   radius,
		MinArmLength: math.Min(l1, l2),
	}
	if l1 == 0 || l2 == 0 {
		return m
	}
	cross := d1.X*d2.Y - d1.Y*d2.X
	m.SweepDegrees = math.Atan2(math.Abs(cross), d1.Dot(d2)) * 180 / math.Pi
	// Screen Y points down, so a counter-clockwise math turn is a
	// decreasing screen angle.
	m.Clockwise = cross < 0
	return m
}

func (*AngleMeta) metadataMarker() {}
func (*AngleMeta) arcMeta()        {}
func (*AngleMeta) textMeta()       {}

// Radius returns the clamped on-screen arc radius under s.
func (m *AngleMeta) Radius(s MapState) float64 {
	scale := s.safeScale()
	r := m.BaseRadius * scale
	// A zero-length arm clamps the arc to nothing.
	return math.Min(r, math.Max(m.MinArmLength, 0)*scale)
}

// StartAngle returns the screen angle of the vertex->Arm1 direction under s.
func (m *AngleMeta) StartAngle(s MapState) float64 {
	return s.MathToScreen(m.Arm1).Sub(s.MathToScreen(m.Vertex)).Angle()
}

// Sweep returns the signed sweep in radians; positive is clockwise on screen.
func (m *AngleMeta) Sweep() float64 {
	rad := m.SweepDegrees * math.Pi / 180
	if m.Clockwise {
		return rad
	}
	return -rad
}

// CircleArcMeta describes an arc of a circle through two points.
type CircleArcMeta struct {
	// Center, Point1 and Point2 in math space. The arc runs from Point1 to
	// Point2.
	Center, Point1, Point2 vec.Vec2
	// Radius is the math radius of the circle.
	Radius float64
	// Major selects the arc longer than a half circle.
	Major bool
	// Clockwise is the sweep direction observed at record time. The
	// direction is re-derived from the points and Major on every update.
	Clockwise bool
}

func (*CircleArcMeta) metadataMarker() {}
func (*CircleArcMeta) arcMeta()        {}

// ArrowMeta describes the head of a vector drawable.
type ArrowMeta struct {
	Start, End vec.Vec2
	// TipSize is the arrowhead height in pixels.
	TipSize float64
}

func (*ArrowMeta) metadataMarker() {}

// LabelKind distinguishes text attached to a point from free labels.
type LabelKind uint8

const (
	// PointLabel is the name text drawn next to a point marker.
	PointLabel LabelKind = iota
	// FreeLabel is a standalone label whose text shrinks when zooming out.
	FreeLabel
)

// LabelMeta describes a text anchored at a math position.
type LabelMeta struct {
	Kind LabelKind
	// Position is the math-space anchor.
	Position vec.Vec2
	// Offset is the pixel offset from the projected anchor.
	Offset Point
	// Rotation in degrees.
	Rotation float64
	// ReferenceScale is the view scale the font size was chosen at. Zero
	// disables the shrink policy.
	ReferenceScale float64
	// BaseFontSize is the unshrunk pixel size. Zero means the recorded font
	// size.
	BaseFontSize float64
	// Policy holds the minimum and vanish font thresholds.
	Policy LabelPolicy
}

func (*LabelMeta) metadataMarker() {}
func (*LabelMeta) textMeta()       {}

// LabelPolicy controls how label text shrinks when the view zooms out
// beyond the reference scale.
type LabelPolicy struct {
	// MinFontSize is the smallest pixel size a visible label is drawn at.
	MinFontSize float64
	// VanishFontSize is the proportional size below which the label is
	// hidden (font size 0).
	VanishFontSize float64
}

// DefaultLabelPolicy returns the policy used when none is configured.
func DefaultLabelPolicy() LabelPolicy {
	return LabelPolicy{MinFontSize: 6, VanishFontSize: 3}
}

// FontSize returns the pixel font size for a label recorded at baseSize
// when the view scale is scale and the label's reference scale is ref.
//
// At or above the reference scale the base size is kept. Below it the size
// shrinks proportionally, is clamped to MinFontSize, and becomes 0 once the
// proportional size drops under VanishFontSize.
func (p LabelPolicy) FontSize(baseSize, scale, ref float64) float64 {
	if ref <= 0 || !isFinite(ref) {
		return baseSize
	}
	ratio := scale / ref
	if ratio >= 1 || !isFinite(ratio) {
		return baseSize
	}
	size := baseSize * ratio
	if size < p.VanishFontSize {
		return 0
	}
	if size < p.MinFontSize {
		return math.Min(p.MinFontSize, baseSize)
	}
	return size
}
