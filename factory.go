package ggplan

import (
	"errors"
	"fmt"
	"log/slog"
)

// Errors returned by the plan factories.
var (
	// ErrNilDrawable is returned when no drawable was given.
	ErrNilDrawable = errors.New("ggplan: nil drawable")
	// ErrNotRenderable is returned for drawables that report they should
	// not be drawn.
	ErrNotRenderable = errors.New("ggplan: drawable is not renderable")
	// ErrUnknownKind is returned when no draw callback is registered for
	// the drawable's class name.
	ErrUnknownKind = errors.New("ggplan: no draw func registered")
)

// Record runs draw once against a fresh Recorder and builds a plan from the
// captured commands. The map state is captured before drawing.
func Record(draw DrawFunc, d Drawable, m Mapper, opts ...PlanOption) *Plan {
	state := Capture(m)
	rec := NewRecorder()
	draw(rec, d, m)
	return NewPlan(rec, state, opts...)
}

// Build builds the plan of d using the callback registered for its class
// name in reg (the default registry when reg is nil).
func Build(d Drawable, m Mapper, reg *Registry, opts ...PlanOption) (*Plan, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	if !d.IsRenderable() {
		return nil, ErrNotRenderable
	}
	if reg == nil {
		reg = defaultRegistry
	}
	draw, ok := reg.Lookup(d.ClassName())
	if !ok {
		return nil, fmt.Errorf("%w for class %q", ErrUnknownKind, d.ClassName())
	}
	p := Record(draw, d, m, opts...)
	Logger().Debug("ggplan: drawable recorded",
		slog.String("name", d.Name()),
		slog.String("class", d.ClassName()))
	return p, nil
}
