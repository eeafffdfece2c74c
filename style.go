package ggplan

import (
	"strconv"
	"strings"
)

// Style is a stroke, fill or font style attached to a command.
//
// Signature returns a string that is equal for structurally identical
// styles of the same type. Styles returning an empty signature are not
// pooled and are passed through as-is.
type Style interface {
	Signature() string
}

// StrokeStyle describes how lines and outlines are stroked.
// Width is in pixels and is never scaled by the view transform.
type StrokeStyle struct {
	Color   string
	Width   float64
	Dash    []float64
	Opacity float64
}

// Signature implements Style.
func (s StrokeStyle) Signature() string {
	var sb strings.Builder
	sb.WriteString("stroke|")
	sb.WriteString(s.Color)
	sb.WriteByte('|')
	writeSigFloat(&sb, s.Width)
	sb.WriteByte('|')
	for i, d := range s.Dash {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeSigFloat(&sb, d)
	}
	sb.WriteByte('|')
	writeSigFloat(&sb, s.Opacity)
	return sb.String()
}

// FillStyle describes how closed shapes are filled.
type FillStyle struct {
	Color   string
	Opacity float64
}

// Signature implements Style.
func (s FillStyle) Signature() string {
	var sb strings.Builder
	sb.WriteString("fill|")
	sb.WriteString(s.Color)
	sb.WriteByte('|')
	writeSigFloat(&sb, s.Opacity)
	return sb.String()
}

// FontStyle describes text. Size is the recorded pixel size; the size a
// text command is drawn with may shrink under the label policy.
type FontStyle struct {
	Family string
	Size   float64
	Weight string
	Color  string
}

// Signature implements Style.
func (s FontStyle) Signature() string {
	var sb strings.Builder
	sb.WriteString("font|")
	sb.WriteString(s.Family)
	sb.WriteByte('|')
	writeSigFloat(&sb, s.Size)
	sb.WriteByte('|')
	sb.WriteString(s.Weight)
	sb.WriteByte('|')
	sb.WriteString(s.Color)
	return sb.String()
}

func writeSigFloat(sb *strings.Builder, v float64) {
	sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// StylePool deduplicates structurally identical styles within one
// recording pass. The first style seen for a signature is returned for all
// later matching styles.
//
// StylePool is not safe for concurrent use.
type StylePool struct {
	bySig    map[string]Style
	order    []Style
	hits     int
	unpooled int
}

// NewStylePool creates an empty style pool.
func NewStylePool() *StylePool {
	return &StylePool{
		bySig: make(map[string]Style, 8),
		order: make([]Style, 0, 8),
	}
}

// Intern returns the pooled style structurally identical to s, adding s if
// it is the first of its kind. Styles with an empty signature are returned
// unchanged and not pooled.
func (p *StylePool) Intern(s Style) Style {
	if s == nil {
		return nil
	}
	sig := s.Signature()
	if sig == "" {
		p.unpooled++
		return s
	}
	if existing, ok := p.bySig[sig]; ok {
		p.hits++
		return existing
	}
	p.bySig[sig] = s
	p.order = append(p.order, s)
	return s
}

// Len returns the number of distinct pooled styles.
func (p *StylePool) Len() int {
	return len(p.order)
}

// Hits returns how many Intern calls were served by an existing style.
func (p *StylePool) Hits() int {
	return p.hits
}

// Styles returns the pooled styles in first-seen order.
func (p *StylePool) Styles() []Style {
	return p.order
}

// internStroke pools a stroke style and returns the shared pointer.
func (p *StylePool) internStroke(s StrokeStyle) *StrokeStyle {
	if len(s.Dash) > 0 {
		s.Dash = append([]float64(nil), s.Dash...)
	}
	if pooled, ok := p.Intern(&s).(*StrokeStyle); ok {
		return pooled
	}
	return &s
}

// internFill pools a fill style and returns the shared pointer.
func (p *StylePool) internFill(s FillStyle) *FillStyle {
	if pooled, ok := p.Intern(&s).(*FillStyle); ok {
		return pooled
	}
	return &s
}

// internFont pools a font style and returns the shared pointer.
func (p *StylePool) internFont(s FontStyle) *FontStyle {
	if pooled, ok := p.Intern(&s).(*FontStyle); ok {
		return pooled
	}
	return &s
}
