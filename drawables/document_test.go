package drawables

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggplan"
)

const sceneYAML = `
width: 640
height: 480
scale: 40
drawables:
  - kind: point
    name: A
    at: {x: 1, y: 2}
    label: A
  - kind: segment
    from: {x: 0, y: 0}
    to: {x: 3, y: 4}
    style:
      color: "#ff0000"
      dash: [4, 2]
  - kind: label
    name: note
    at: {x: -1, y: 0}
    text: hello
    offset: {x: 6, y: -3}
    reference_scale: 40
  - kind: function
    coefficients: [0, 1]
    from: -2
    to: 2
    hidden: true
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Width != 640 || doc.Height != 480 || doc.Scale != 40 {
		t.Errorf("header = %vx%v@%v, want 640x480@40", doc.Width, doc.Height, doc.Scale)
	}
	if len(doc.Drawables) != 4 {
		t.Fatalf("len(Drawables) = %d, want 4", len(doc.Drawables))
	}

	p, ok := doc.Drawables[0].(*Point)
	if !ok {
		t.Fatalf("Drawables[0] = %T, want *Point", doc.Drawables[0])
	}
	if p.Name() != "A" || p.At != v2(1, 2) || p.Caption != "A" {
		t.Errorf("point = %+v", p)
	}

	seg := doc.Drawables[1].(*Segment)
	if seg.Name() != "segment2" {
		t.Errorf("generated name = %q, want %q", seg.Name(), "segment2")
	}
	if seg.To != v2(3, 4) || seg.Style.Color != "#ff0000" || len(seg.Style.Dash) != 2 {
		t.Errorf("segment = %+v", seg)
	}

	l := doc.Drawables[2].(*Label)
	if l.Content != "hello" || l.Shift != ggplan.Pt(6, -3) || l.RefScale != 40 {
		t.Errorf("label = %+v", l)
	}

	f := doc.Drawables[3].(*FunctionPlot)
	if f.IsRenderable() {
		t.Error("hidden function plot reports renderable")
	}
	if len(f.Coefficients) != 2 || f.From != -2 || f.To != 2 {
		t.Errorf("function = %+v", f)
	}
}

func TestParseDocumentDefaults(t *testing.T) {
	doc, err := ParseDocument([]byte("drawables: []\n"))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if doc.Width != defaultWidth || doc.Height != defaultHeight || doc.Scale != defaultScale {
		t.Errorf("defaults = %vx%v@%v", doc.Width, doc.Height, doc.Scale)
	}
	if len(doc.Drawables) != 0 {
		t.Errorf("len(Drawables) = %d, want 0", len(doc.Drawables))
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "  \n", "empty"},
		{"syntax", "drawables: [", "decode scene"},
		{"duplicate", "drawables:\n  - {kind: point, name: P}\n  - {kind: circle, name: P}\n", `duplicate name "P"`},
		{"bad field", "drawables:\n  - {kind: circle, radius: wide}\n", "decode circle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseDocument() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseDocumentUnknownKind(t *testing.T) {
	_, err := ParseDocument([]byte("drawables:\n  - kind: spline\n"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseDocument() error = %v, want ErrUnknownKind", err)
	}
	if err != nil && !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestParsedSceneBuilds(t *testing.T) {
	doc, err := ParseDocument([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	m := ggplan.NewCoordinateMapper(doc.Width, doc.Height)
	m.Scale = doc.Scale
	for _, d := range doc.Drawables {
		if !d.IsRenderable() {
			continue
		}
		if _, err := ggplan.Build(d, m, testRegistry); err != nil {
			t.Errorf("Build(%s) error = %v", d.Name(), err)
		}
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if len(doc.Drawables) != 4 {
		t.Errorf("len(Drawables) = %d, want 4", len(doc.Drawables))
	}

	if _, err := LoadDocument(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDocument(missing) error = %v, want os.ErrNotExist", err)
	}
}
