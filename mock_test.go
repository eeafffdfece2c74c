package ggplan

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func v2(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// mockCall is one primitive call received by mockSurface.
type mockCall struct {
	op     Op
	points []Point
	radius float64
	start  float64
	end    float64
	text   string
	size   float64
}

// mockSurface records the primitive calls it receives.
type mockSurface struct {
	calls       []mockCall
	batches     int
	batchClosed int
	shapes      int
}

func (s *mockSurface) StrokeLine(p1, p2 Point, _ StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpStrokeLine, points: []Point{p1, p2}})
}

func (s *mockSurface) StrokePolyline(points []Point, _ StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpStrokePolyline, points: append([]Point(nil), points...)})
}

func (s *mockSurface) StrokeCircle(center Point, radius float64, _ StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpStrokeCircle, points: []Point{center}, radius: radius})
}

func (s *mockSurface) FillCircle(center Point, radius float64, _ FillStyle, _ *StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpFillCircle, points: []Point{center}, radius: radius})
}

func (s *mockSurface) StrokeEllipse(center Point, rx, _, _ float64, _ StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpStrokeEllipse, points: []Point{center}, radius: rx})
}

func (s *mockSurface) FillJoinedArea(forward, reverse []Point, _ FillStyle, _ ...DrawOption) {
	pts := append(append([]Point(nil), forward...), reverse...)
	s.calls = append(s.calls, mockCall{op: OpFillJoinedArea, points: pts})
}

func (s *mockSurface) FillPolygon(points []Point, _ FillStyle, _ *StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpFillPolygon, points: append([]Point(nil), points...)})
}

func (s *mockSurface) StrokeArc(center Point, radius, start, end float64, _ bool, _ StrokeStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpStrokeArc, points: []Point{center}, radius: radius, start: start, end: end})
}

func (s *mockSurface) DrawText(text string, pos Point, font FontStyle, _ ...DrawOption) {
	s.calls = append(s.calls, mockCall{op: OpDrawText, points: []Point{pos}, text: text, size: font.Size})
}

func (s *mockSurface) BeginBatch() { s.batches++ }
func (s *mockSurface) EndBatch()   { s.batchClosed++ }
func (s *mockSurface) BeginShape() { s.shapes++ }
func (s *mockSurface) EndShape()   {}

// transformSurface is a mockSurface that also accepts transforms.
type transformSurface struct {
	mockSurface
	pushed []Matrix
	popped int
}

func (s *transformSurface) PushTransform(m Matrix) { s.pushed = append(s.pushed, m) }
func (s *transformSurface) PopTransform()          { s.popped++ }

// staticMapper is a Mapper without offset or origin.
type staticMapper float64

func (m staticMapper) ScaleFactor() float64 { return float64(m) }

func (m staticMapper) MathToScreen(x, y float64) (float64, float64) {
	return x * float64(m), -y * float64(m)
}

func (m staticMapper) ScaleValue(v float64) float64 { return v * float64(m) }

var defaultStroke = StrokeStyle{Color: "#000000", Width: 1}
