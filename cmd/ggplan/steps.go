package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/ggplan"
)

// step is one scripted view change.
type step struct {
	zoom bool
	// Pan: dx, dy. Zoom: factor, then the optional screen anchor.
	args []float64
}

func (s step) apply(m *ggplan.CoordinateMapper) {
	if !s.zoom {
		m.Pan(s.args[0], s.args[1])
		return
	}
	x, y := m.OriginX, m.OriginY
	if len(s.args) == 3 {
		x, y = s.args[1], s.args[2]
	}
	m.ZoomAt(s.args[0], x, y)
}

func (s step) String() string {
	parts := make([]string, 0, len(s.args)+1)
	if s.zoom {
		parts = append(parts, "zoom")
	} else {
		parts = append(parts, "pan")
	}
	for _, a := range s.args {
		parts = append(parts, strconv.FormatFloat(a, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}

// parseSteps reads a semicolon separated list of "pan DX DY" and
// "zoom FACTOR [X Y]" steps.
func parseSteps(s string) ([]step, error) {
	var steps []step
	for i, field := range strings.Split(s, ";") {
		words := strings.Fields(field)
		if len(words) == 0 {
			continue
		}
		args := make([]float64, 0, len(words)-1)
		for _, w := range words[1:] {
			v, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("step %d: bad number %q", i+1, w)
			}
			args = append(args, v)
		}

		st := step{args: args}
		switch words[0] {
		case "pan":
			if len(args) != 2 {
				return nil, fmt.Errorf("step %d: pan takes DX DY", i+1)
			}
		case "zoom":
			st.zoom = true
			if len(args) != 1 && len(args) != 3 {
				return nil, fmt.Errorf("step %d: zoom takes FACTOR [X Y]", i+1)
			}
			if args[0] <= 0 {
				return nil, fmt.Errorf("step %d: zoom factor must be positive", i+1)
			}
		default:
			return nil, fmt.Errorf("step %d: unknown step %q", i+1, words[0])
		}
		steps = append(steps, st)
	}
	return steps, nil
}
