package ggplan

import "math"

// Recorder captures drawing calls as commands. It implements [Surface] so
// that a drawable's existing draw callback can be pointed at it for exactly
// one pass; every call becomes a [Command] instead of drawing.
//
// While recording, the Recorder pools styles, grows a running bounding box,
// counts operation kinds and notes whether any call asked for screen-space
// sizing. Calls with missing or non-finite geometry are dropped.
//
// Example:
//
//	rec := ggplan.NewRecorder()
//	drawSegment(rec, segment, mapper)
//	plan := ggplan.NewPlan(rec, ggplan.Capture(mapper))
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands    []Command
	styles      *StylePool
	bounds      Rect
	opCounts    [opCount]int
	screenSpace bool
	nextKey     uint32
	dropped     int
}

var (
	_ Surface      = (*Recorder)(nil)
	_ ShapeGrouper = (*Recorder)(nil)
)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]Command, 0, 16),
		styles:   NewStylePool(),
		bounds:   emptyRect(),
	}
}

// Commands returns the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Styles returns the style pool of this pass.
func (r *Recorder) Styles() *StylePool {
	return r.styles
}

// Bounds returns the running bounding box of all recorded geometry.
// ok is false when nothing with geometry was recorded.
func (r *Recorder) Bounds() (b Rect, ok bool) {
	return r.bounds, r.bounds.IsValid()
}

// UsesScreenSpace reports whether any call requested screen-space sizing or
// attached metadata.
func (r *Recorder) UsesScreenSpace() bool {
	return r.screenSpace
}

// Stats returns counters describing the pass.
func (r *Recorder) Stats() RecordStats {
	st := RecordStats{
		Commands:    len(r.commands),
		Ops:         make(map[Op]int),
		Styles:      r.styles.Len(),
		StyleHits:   r.styles.Hits(),
		Dropped:     r.dropped,
		ScreenSpace: r.screenSpace,
	}
	for op, n := range r.opCounts {
		if n > 0 {
			st.Ops[Op(op)] = n
		}
	}
	return st
}

// RecordStats describes one recording pass.
type RecordStats struct {
	// Commands is the number of recorded commands.
	Commands int
	// Ops counts commands per operation kind.
	Ops map[Op]int
	// Styles is the number of distinct pooled styles.
	Styles int
	// StyleHits is the number of style lookups served from the pool.
	StyleHits int
	// Dropped is the number of calls skipped for invalid geometry.
	Dropped int
	// ScreenSpace reports whether any call used screen-space sizing.
	ScreenSpace bool
}

// add finalizes a command and appends it.
func (r *Recorder) add(c Command, o DrawOptions, style Style) {
	h := c.base()
	h.key = r.nextKey
	r.nextKey++
	if style != nil {
		h.styleSig = style.Signature()
	}
	// Metadata describes non-affine behavior, so it implies screen space.
	h.screenSpace = o.ScreenSpace || o.Meta != nil
	if h.screenSpace {
		r.screenSpace = true
	}
	refreshSignature(c)
	r.bounds = c.extendBounds(r.bounds)
	r.opCounts[c.Op()]++
	r.commands = append(r.commands, c)
}

func (r *Recorder) drop() {
	r.dropped++
}

func validLength(v float64) bool {
	return isFinite(v) && v >= 0
}

func allFinite(pts []Point) bool {
	for _, p := range pts {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// StrokeLine implements Surface.
func (r *Recorder) StrokeLine(p1, p2 Point, stroke StrokeStyle, opts ...DrawOption) {
	if !p1.IsFinite() || !p2.IsFinite() {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	st := r.styles.internStroke(stroke)
	r.add(&LineCommand{P1: quantizePoint(p1), P2: quantizePoint(p2), Stroke: st}, o, st)
}

// StrokePolyline implements Surface.
func (r *Recorder) StrokePolyline(points []Point, stroke StrokeStyle, opts ...DrawOption) {
	if len(points) < 2 || !allFinite(points) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	st := r.styles.internStroke(stroke)
	r.add(&PolylineCommand{Points: quantizePoints(points), Stroke: st}, o, st)
}

// StrokeCircle implements Surface.
func (r *Recorder) StrokeCircle(center Point, radius float64, stroke StrokeStyle, opts ...DrawOption) {
	if !center.IsFinite() || !validLength(radius) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	st := r.styles.internStroke(stroke)
	r.add(&CircleCommand{Center: quantizePoint(center), Radius: quantize(radius), Stroke: st}, o, st)
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(center Point, radius float64, fill FillStyle, stroke *StrokeStyle, opts ...DrawOption) {
	if !center.IsFinite() || !validLength(radius) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	fs := r.styles.internFill(fill)
	c := &CircleCommand{Center: quantizePoint(center), Radius: quantize(radius), Filled: true, Fill: fs}
	if stroke != nil {
		c.Stroke = r.styles.internStroke(*stroke)
	}
	r.add(c, o, fs)
}

// StrokeEllipse implements Surface.
func (r *Recorder) StrokeEllipse(center Point, rx, ry, rotation float64, stroke StrokeStyle, opts ...DrawOption) {
	if !center.IsFinite() || !validLength(rx) || !validLength(ry) || !isFinite(rotation) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	st := r.styles.internStroke(stroke)
	r.add(&EllipseCommand{
		Center:   quantizePoint(center),
		RX:       quantize(rx),
		RY:       quantize(ry),
		Rotation: rotation,
		Stroke:   st,
	}, o, st)
}

// FillJoinedArea implements Surface.
func (r *Recorder) FillJoinedArea(forward, reverse []Point, fill FillStyle, opts ...DrawOption) {
	if len(forward)+len(reverse) < 3 || !allFinite(forward) || !allFinite(reverse) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	o.Meta = nil
	fs := r.styles.internFill(fill)
	r.add(&JoinedAreaCommand{
		Forward: quantizePoints(forward),
		Reverse: quantizePoints(reverse),
		Fill:    fs,
	}, o, fs)
}

// FillPolygon implements Surface. An *ArrowMeta attaches the vector head
// description used to rebuild the triangle.
func (r *Recorder) FillPolygon(points []Point, fill FillStyle, stroke *StrokeStyle, opts ...DrawOption) {
	if len(points) < 3 || !allFinite(points) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	arrow, _ := o.Meta.(*ArrowMeta)
	if arrow == nil {
		o.Meta = nil
	}
	fs := r.styles.internFill(fill)
	c := &PolygonCommand{Points: quantizePoints(points), Fill: fs, Arrow: arrow}
	if stroke != nil {
		c.Stroke = r.styles.internStroke(*stroke)
	}
	r.add(c, o, fs)
}

// StrokeArc implements Surface. An *AngleMeta or *CircleArcMeta attaches the
// math description of the arc.
func (r *Recorder) StrokeArc(center Point, radius, start, end float64, clockwise bool, stroke StrokeStyle, opts ...DrawOption) {
	if !center.IsFinite() || !validLength(radius) || !isFinite(start) || !isFinite(end) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	meta, _ := o.Meta.(ArcMeta)
	if meta == nil {
		o.Meta = nil
	}
	st := r.styles.internStroke(stroke)
	r.add(&ArcCommand{
		Center:    quantizePoint(center),
		Radius:    quantize(radius),
		Start:     start,
		End:       end,
		Clockwise: clockwise,
		Stroke:    st,
		Meta:      meta,
	}, o, st)
}

// DrawText implements Surface. An *AngleMeta or *LabelMeta attaches the
// math anchor and font policy of the text.
func (r *Recorder) DrawText(text string, pos Point, font FontStyle, opts ...DrawOption) {
	if !pos.IsFinite() || !validLength(font.Size) {
		r.drop()
		return
	}
	o := ResolveOptions(opts...)
	meta, _ := o.Meta.(TextMeta)
	if meta == nil {
		o.Meta = nil
	}
	fs := r.styles.internFont(font)
	r.add(&TextCommand{
		Text:     text,
		Pos:      quantizePoint(pos),
		Font:     fs,
		FontSize: font.Size,
		Rotation: math.Mod(o.Rotation, 360),
		Align:    o.Align,
		Meta:     meta,
	}, o, fs)
}

// BeginShape implements ShapeGrouper.
func (r *Recorder) BeginShape() {
	r.add(&ShapeCommand{Begin: true}, DrawOptions{}, nil)
}

// EndShape implements ShapeGrouper.
func (r *Recorder) EndShape() {
	r.add(&ShapeCommand{}, DrawOptions{}, nil)
}
