package ggplan

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"slices"
)

// Op identifies the primitive operation of a command.
type Op uint8

const (
	// Drawing operations
	OpStrokeLine     Op = iota // Stroke a line segment
	OpStrokePolyline           // Stroke an open polyline
	OpStrokeCircle             // Stroke a circle outline
	OpFillCircle               // Fill a circle
	OpStrokeEllipse            // Stroke a rotated ellipse
	OpFillJoinedArea           // Fill between two open polylines
	OpFillPolygon              // Fill a closed polygon
	OpStrokeArc                // Stroke a circular arc
	OpDrawText                 // Draw text

	// Grouping operations
	OpBeginShape // Start grouping the primitives of one shape
	OpEndShape   // End the current shape group

	opCount
)

// opNames maps Op values to their string representation.
var opNames = [...]string{
	OpStrokeLine:     "StrokeLine",
	OpStrokePolyline: "StrokePolyline",
	OpStrokeCircle:   "StrokeCircle",
	OpFillCircle:     "FillCircle",
	OpStrokeEllipse:  "StrokeEllipse",
	OpFillJoinedArea: "FillJoinedArea",
	OpFillPolygon:    "FillPolygon",
	OpStrokeArc:      "StrokeArc",
	OpDrawText:       "DrawText",
	OpBeginShape:     "BeginShape",
	OpEndShape:       "EndShape",
}

// String returns the string representation of an Op.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Command is one recorded drawing operation. The set of implementations is
// closed: every operation kind has exactly one command type, and each type
// carries its own reprojection handler.
//
// Commands are mutated in place only by reprojection.
type Command interface {
	// Op returns the operation kind.
	Op() Op
	// Key returns the command's identifier, unique within its recording pass.
	Key() uint32
	// StyleSignature returns the pooled style signature, or "".
	StyleSignature() string
	// GeometrySignature returns a hash of the quantized geometry.
	GeometrySignature() uint64
	// IsScreenSpace reports whether the command's size is pixel-constant.
	IsScreenSpace() bool

	base() *cmdHeader
	writeGeometry(h *geomHasher)
	extendBounds(r Rect) Rect
	replay(s Surface, xf *Matrix)
	reproject(from, to MapState)
	clone() Command
	restore(src Command)
}

// cmdHeader holds the fields shared by every command.
type cmdHeader struct {
	key         uint32
	styleSig    string
	geomSig     uint64
	screenSpace bool
}

func (h *cmdHeader) Key() uint32               { return h.key }
func (h *cmdHeader) StyleSignature() string    { return h.styleSig }
func (h *cmdHeader) GeometrySignature() uint64 { return h.geomSig }
func (h *cmdHeader) IsScreenSpace() bool       { return h.screenSpace }
func (h *cmdHeader) base() *cmdHeader          { return h }

// LineCommand strokes a line segment.
type LineCommand struct {
	cmdHeader
	P1, P2 Point
	Stroke *StrokeStyle
}

// Op implements Command.
func (*LineCommand) Op() Op { return OpStrokeLine }

// PolylineCommand strokes an open polyline.
type PolylineCommand struct {
	cmdHeader
	Points []Point
	Stroke *StrokeStyle
}

// Op implements Command.
func (*PolylineCommand) Op() Op { return OpStrokePolyline }

// CircleCommand strokes or fills a circle.
type CircleCommand struct {
	cmdHeader
	Center Point
	Radius float64
	// Filled selects OpFillCircle; Fill is then non-nil.
	Filled bool
	Fill   *FillStyle
	Stroke *StrokeStyle
}

// Op implements Command.
func (c *CircleCommand) Op() Op {
	if c.Filled {
		return OpFillCircle
	}
	return OpStrokeCircle
}

// EllipseCommand strokes a rotated ellipse.
type EllipseCommand struct {
	cmdHeader
	Center   Point
	RX, RY   float64
	Rotation float64 // degrees
	Stroke   *StrokeStyle
}

// Op implements Command.
func (*EllipseCommand) Op() Op { return OpStrokeEllipse }

// JoinedAreaCommand fills the region between two open polylines.
type JoinedAreaCommand struct {
	cmdHeader
	Forward, Reverse []Point
	Fill             *FillStyle
}

// Op implements Command.
func (*JoinedAreaCommand) Op() Op { return OpFillJoinedArea }

// PolygonCommand fills a closed polygon. Arrow is set for vector heads.
type PolygonCommand struct {
	cmdHeader
	Points []Point
	Fill   *FillStyle
	Stroke *StrokeStyle
	Arrow  *ArrowMeta
}

// Op implements Command.
func (*PolygonCommand) Op() Op { return OpFillPolygon }

// ArcCommand strokes a circular arc. Meta is an *AngleMeta or a
// *CircleArcMeta, or nil for plain arcs.
type ArcCommand struct {
	cmdHeader
	Center     Point
	Radius     float64
	Start, End float64 // screen radians
	Clockwise  bool
	Stroke     *StrokeStyle
	Meta       ArcMeta
}

// Op implements Command.
func (*ArcCommand) Op() Op { return OpStrokeArc }

// TextCommand draws text. FontSize is the size the text is currently drawn
// at; Font.Size is the size it was recorded with. A FontSize of 0 means the
// text is hidden.
type TextCommand struct {
	cmdHeader
	Text     string
	Pos      Point
	Font     *FontStyle
	FontSize float64
	Rotation float64
	Align    TextAlign
	Meta     TextMeta
}

// Op implements Command.
func (*TextCommand) Op() Op { return OpDrawText }

// ShapeCommand opens or closes a shape group.
type ShapeCommand struct {
	cmdHeader
	Begin bool
}

// Op implements Command.
func (c *ShapeCommand) Op() Op {
	if c.Begin {
		return OpBeginShape
	}
	return OpEndShape
}

// --------------------------------------------------------------------------
// Geometry signatures
// --------------------------------------------------------------------------

// geomHasher hashes quantized geometry.
type geomHasher struct {
	h   hash.Hash64
	buf [8]byte
}

func newGeomHasher() *geomHasher {
	return &geomHasher{h: fnv.New64a()}
}

func (g *geomHasher) float(v float64) {
	binary.LittleEndian.PutUint64(g.buf[:], math.Float64bits(quantize(v)))
	_, _ = g.h.Write(g.buf[:]) // fnv.Write never returns an error
}

func (g *geomHasher) point(p Point) {
	g.float(p.X)
	g.float(p.Y)
}

func (g *geomHasher) points(pts []Point) {
	g.float(float64(len(pts)))
	for _, p := range pts {
		g.point(p)
	}
}

// refreshSignature recomputes a command's geometry signature.
func refreshSignature(c Command) {
	g := newGeomHasher()
	g.float(float64(c.Op()))
	c.writeGeometry(g)
	c.base().geomSig = g.h.Sum64()
}

func (c *LineCommand) writeGeometry(g *geomHasher) {
	g.point(c.P1)
	g.point(c.P2)
}

func (c *PolylineCommand) writeGeometry(g *geomHasher) { g.points(c.Points) }

func (c *CircleCommand) writeGeometry(g *geomHasher) {
	g.point(c.Center)
	g.float(c.Radius)
}

func (c *EllipseCommand) writeGeometry(g *geomHasher) {
	g.point(c.Center)
	g.float(c.RX)
	g.float(c.RY)
	g.float(c.Rotation)
}

func (c *JoinedAreaCommand) writeGeometry(g *geomHasher) {
	g.points(c.Forward)
	g.points(c.Reverse)
}

func (c *PolygonCommand) writeGeometry(g *geomHasher) { g.points(c.Points) }

func (c *ArcCommand) writeGeometry(g *geomHasher) {
	g.point(c.Center)
	g.float(c.Radius)
	g.float(c.Start)
	g.float(c.End)
}

func (c *TextCommand) writeGeometry(g *geomHasher) {
	g.point(c.Pos)
	g.float(c.FontSize)
	g.float(c.Rotation)
}

func (c *ShapeCommand) writeGeometry(*geomHasher) {}

// --------------------------------------------------------------------------
// Recorded geometry
// --------------------------------------------------------------------------

// clone returns a deep copy of the command's geometry. restore copies the
// geometry of src, a clone of the same command, back in place; slices keep
// their backing arrays so replayed commands stay valid.

func (c *LineCommand) clone() Command {
	d := *c
	return &d
}

func (c *LineCommand) restore(src Command) { *c = *src.(*LineCommand) }

func (c *PolylineCommand) clone() Command {
	d := *c
	d.Points = slices.Clone(c.Points)
	return &d
}

func (c *PolylineCommand) restore(src Command) {
	pts := c.Points
	*c = *src.(*PolylineCommand)
	c.Points = append(pts[:0], c.Points...)
}

func (c *CircleCommand) clone() Command {
	d := *c
	return &d
}

func (c *CircleCommand) restore(src Command) { *c = *src.(*CircleCommand) }

func (c *EllipseCommand) clone() Command {
	d := *c
	return &d
}

func (c *EllipseCommand) restore(src Command) { *c = *src.(*EllipseCommand) }

func (c *JoinedAreaCommand) clone() Command {
	d := *c
	d.Forward = slices.Clone(c.Forward)
	d.Reverse = slices.Clone(c.Reverse)
	return &d
}

func (c *JoinedAreaCommand) restore(src Command) {
	fwd, rev := c.Forward, c.Reverse
	*c = *src.(*JoinedAreaCommand)
	c.Forward = append(fwd[:0], c.Forward...)
	c.Reverse = append(rev[:0], c.Reverse...)
}

func (c *PolygonCommand) clone() Command {
	d := *c
	d.Points = slices.Clone(c.Points)
	return &d
}

func (c *PolygonCommand) restore(src Command) {
	pts := c.Points
	*c = *src.(*PolygonCommand)
	c.Points = append(pts[:0], c.Points...)
}

func (c *ArcCommand) clone() Command {
	d := *c
	return &d
}

func (c *ArcCommand) restore(src Command) { *c = *src.(*ArcCommand) }

func (c *TextCommand) clone() Command {
	d := *c
	return &d
}

func (c *TextCommand) restore(src Command) { *c = *src.(*TextCommand) }

func (c *ShapeCommand) clone() Command {
	d := *c
	return &d
}

func (c *ShapeCommand) restore(src Command) { *c = *src.(*ShapeCommand) }

// --------------------------------------------------------------------------
// Bounds
// --------------------------------------------------------------------------

func extendPoints(r Rect, pts []Point) Rect {
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

func extendRadius(r Rect, c Point, radius float64) Rect {
	radius = math.Abs(radius)
	r = r.Extend(Point{X: c.X - radius, Y: c.Y - radius})
	return r.Extend(Point{X: c.X + radius, Y: c.Y + radius})
}

func (c *LineCommand) extendBounds(r Rect) Rect {
	return r.Extend(c.P1).Extend(c.P2)
}

func (c *PolylineCommand) extendBounds(r Rect) Rect { return extendPoints(r, c.Points) }

func (c *CircleCommand) extendBounds(r Rect) Rect { return extendRadius(r, c.Center, c.Radius) }

func (c *EllipseCommand) extendBounds(r Rect) Rect {
	return extendRadius(r, c.Center, math.Max(c.RX, c.RY))
}

func (c *JoinedAreaCommand) extendBounds(r Rect) Rect {
	return extendPoints(extendPoints(r, c.Forward), c.Reverse)
}

func (c *PolygonCommand) extendBounds(r Rect) Rect { return extendPoints(r, c.Points) }

func (c *ArcCommand) extendBounds(r Rect) Rect { return extendRadius(r, c.Center, c.Radius) }

func (c *TextCommand) extendBounds(r Rect) Rect {
	if c.FontSize <= 0 {
		return r.Extend(c.Pos)
	}
	return extendRadius(r, c.Pos, c.FontSize)
}

func (c *ShapeCommand) extendBounds(r Rect) Rect { return r }

// commandBounds returns the bounding box of all commands.
func commandBounds(cmds []Command) Rect {
	r := emptyRect()
	for _, c := range cmds {
		r = c.extendBounds(r)
	}
	return r
}
