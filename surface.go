package ggplan

// Surface is the drawing-surface collaborator. Per-kind draw callbacks draw
// onto a Surface; the [Recorder] implements it to capture calls, and
// backends implement it to execute them.
//
// Styles are passed by value. Options carry recording hints (screen-space
// sizing, metadata) and text layout; backends read the layout fields via
// [ResolveOptions] and ignore the rest.
//
// Text with a font size of 0 must not be drawn.
type Surface interface {
	StrokeLine(p1, p2 Point, stroke StrokeStyle, opts ...DrawOption)
	StrokePolyline(points []Point, stroke StrokeStyle, opts ...DrawOption)
	StrokeCircle(center Point, radius float64, stroke StrokeStyle, opts ...DrawOption)
	FillCircle(center Point, radius float64, fill FillStyle, stroke *StrokeStyle, opts ...DrawOption)
	StrokeEllipse(center Point, rx, ry, rotation float64, stroke StrokeStyle, opts ...DrawOption)
	// FillJoinedArea fills the region between two open polylines: forward is
	// walked first, then reverse, and the outline is closed.
	FillJoinedArea(forward, reverse []Point, fill FillStyle, opts ...DrawOption)
	FillPolygon(points []Point, fill FillStyle, stroke *StrokeStyle, opts ...DrawOption)
	// StrokeArc strokes the arc of the circle around center from start to
	// end (screen radians). Clockwise arcs have end >= start.
	StrokeArc(center Point, radius, start, end float64, clockwise bool, stroke StrokeStyle, opts ...DrawOption)
	DrawText(text string, pos Point, font FontStyle, opts ...DrawOption)
}

// Batcher is implemented by surfaces that can bracket a plan's replay.
type Batcher interface {
	BeginBatch()
	EndBatch()
}

// ShapeGrouper is implemented by surfaces that group the primitives of one
// shape (an SVG <g>, for instance).
type ShapeGrouper interface {
	BeginShape()
	EndShape()
}

// Transformer is implemented by surfaces that can apply an affine matrix to
// the coordinates of subsequent primitives without scaling stroke widths or
// font sizes. Transform-capable plans replay through it when available.
type Transformer interface {
	PushTransform(m Matrix)
	PopTransform()
}

// TextAlign is the horizontal alignment of text around its anchor.
type TextAlign uint8

const (
	// AlignLeft places the anchor at the start of the text.
	AlignLeft TextAlign = iota
	// AlignCenter centers the text on the anchor.
	AlignCenter
	// AlignRight places the anchor at the end of the text.
	AlignRight
)

// DrawOptions is the resolved form of a DrawOption list.
type DrawOptions struct {
	// ScreenSpace marks sizes (radius, tip size, font) as pixel constants.
	ScreenSpace bool
	// Meta is the semantic metadata for the call.
	Meta Metadata
	// Rotation of text in degrees, counter-clockwise on screen.
	Rotation float64
	// Align is the horizontal text alignment.
	Align TextAlign
}

// DrawOption configures a single drawing call.
type DrawOption func(*DrawOptions)

// ResolveOptions folds opts into a DrawOptions value.
func ResolveOptions(opts ...DrawOption) DrawOptions {
	var o DrawOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ScreenSpace marks the call's size as a fixed pixel quantity. A plan that
// records any screen-space call is updated on the exact path.
func ScreenSpace() DrawOption {
	return func(o *DrawOptions) {
		o.ScreenSpace = true
	}
}

// WithMeta attaches semantic metadata to the call. Metadata that does not
// fit the operation is dropped.
func WithMeta(m Metadata) DrawOption {
	return func(o *DrawOptions) {
		o.Meta = m
	}
}

// WithRotation rotates text by deg degrees.
func WithRotation(deg float64) DrawOption {
	return func(o *DrawOptions) {
		o.Rotation = deg
	}
}

// WithAlign sets the horizontal text alignment.
func WithAlign(a TextAlign) DrawOption {
	return func(o *DrawOptions) {
		o.Align = a
	}
}
