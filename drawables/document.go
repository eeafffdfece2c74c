package drawables

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gogpu/ggplan"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKind is returned when a scene file names a kind this package
// does not provide.
var ErrUnknownKind = errors.New("drawables: unknown kind")

// Document is a decoded scene file: the canvas size, the initial view scale
// and the drawables in paint order.
type Document struct {
	Width     float64
	Height    float64
	Scale     float64
	Drawables []ggplan.Drawable
}

type documentFile struct {
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height"`
	Scale     float64     `yaml:"scale"`
	Drawables []yaml.Node `yaml:"drawables"`
}

// Document defaults for missing header fields.
const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultScale  = 50
)

// newKind returns an empty drawable of the given kind.
func newKind(kind string) (ggplan.Drawable, bool) {
	switch kind {
	case KindPoint:
		return &Point{}, true
	case KindSegment:
		return &Segment{}, true
	case KindVector:
		return &Vector{}, true
	case KindCircle:
		return &Circle{}, true
	case KindEllipse:
		return &Ellipse{}, true
	case KindCircleArc:
		return &CircleArc{}, true
	case KindAngle:
		return &Angle{}, true
	case KindLabel:
		return &Label{}, true
	case KindFunctionPlot:
		return &FunctionPlot{}, true
	case KindPolygon:
		return &Polygon{}, true
	case KindClosedArea:
		return &ClosedArea{}, true
	}
	return nil, false
}

// ParseDocument decodes a YAML scene. Drawables without a name are named
// after their kind and position; duplicate names are rejected.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("drawables: scene payload is empty")
	}
	var f documentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("drawables: decode scene: %w", err)
	}

	doc := &Document{Width: f.Width, Height: f.Height, Scale: f.Scale}
	if doc.Width <= 0 {
		doc.Width = defaultWidth
	}
	if doc.Height <= 0 {
		doc.Height = defaultHeight
	}
	if doc.Scale <= 0 {
		doc.Scale = defaultScale
	}

	seen := make(map[string]bool, len(f.Drawables))
	for i := range f.Drawables {
		node := &f.Drawables[i]
		d, err := decodeDrawable(node, i)
		if err != nil {
			return nil, fmt.Errorf("drawables: line %d: %w", node.Line, err)
		}
		if seen[d.Name()] {
			return nil, fmt.Errorf("drawables: line %d: duplicate name %q", node.Line, d.Name())
		}
		seen[d.Name()] = true
		doc.Drawables = append(doc.Drawables, d)
	}
	return doc, nil
}

func decodeDrawable(node *yaml.Node, index int) (ggplan.Drawable, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, err
	}
	d, ok := newKind(head.Kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, head.Kind)
	}
	if err := node.Decode(d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Kind, err)
	}
	if b := baseOf(d); b != nil && b.ID == "" {
		b.ID = head.Kind + strconv.Itoa(index+1)
	}
	return d, nil
}

// baseOf returns the embedded Base of a built-in drawable.
func baseOf(d ggplan.Drawable) *Base {
	type based interface{ base() *Base }
	if b, ok := d.(based); ok {
		return b.base()
	}
	return nil
}

func (b *Base) base() *Base { return b }

// LoadDocument reads and decodes a YAML scene file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("drawables: read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("drawables: %s: %w", path, err)
	}
	return doc, nil
}
