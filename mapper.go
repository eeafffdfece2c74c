package ggplan

// CoordinateMapper is a simple [Mapper] with a screen origin, a pan offset
// and a uniform zoom. It is the mapper used by the scene renderer, the CLI
// and the tests; applications may plug in their own.
type CoordinateMapper struct {
	Scale            float64
	OffsetX, OffsetY float64
	OriginX, OriginY float64
}

// NewCoordinateMapper returns a mapper with scale 1 whose math origin sits at
// the centre of a width x height canvas.
func NewCoordinateMapper(width, height float64) *CoordinateMapper {
	return &CoordinateMapper{
		Scale:   1,
		OriginX: width / 2,
		OriginY: height / 2,
	}
}

// ScaleFactor implements Mapper.
func (m *CoordinateMapper) ScaleFactor() float64 { return m.Scale }

// Offset implements OffsetMapper.
func (m *CoordinateMapper) Offset() (x, y float64) { return m.OffsetX, m.OffsetY }

// Origin implements OriginMapper.
func (m *CoordinateMapper) Origin() (x, y float64) { return m.OriginX, m.OriginY }

// MathToScreen implements Mapper.
func (m *CoordinateMapper) MathToScreen(x, y float64) (float64, float64) {
	scale := safeDivisor(m.Scale)
	return m.OriginX + x*scale + m.OffsetX, m.OriginY - y*scale + m.OffsetY
}

// ScreenToMath is the inverse of MathToScreen.
func (m *CoordinateMapper) ScreenToMath(x, y float64) (float64, float64) {
	scale := safeDivisor(m.Scale)
	return (x - m.OriginX - m.OffsetX) / scale, (m.OriginY + m.OffsetY - y) / scale
}

// ScaleValue implements Mapper.
func (m *CoordinateMapper) ScaleValue(v float64) float64 {
	return v * safeDivisor(m.Scale)
}

// Pan moves the view by (dx, dy) pixels.
func (m *CoordinateMapper) Pan(dx, dy float64) {
	m.OffsetX += dx
	m.OffsetY += dy
}

// ZoomAt multiplies the scale by factor while keeping the math point under
// the screen position (sx, sy) fixed. Non-positive factors are ignored.
func (m *CoordinateMapper) ZoomAt(factor, sx, sy float64) {
	if factor <= 0 || !isFinite(factor) {
		return
	}
	mx, my := m.ScreenToMath(sx, sy)
	m.Scale = safeDivisor(m.Scale) * factor
	nx, ny := m.MathToScreen(mx, my)
	m.OffsetX += sx - nx
	m.OffsetY += sy - ny
}
