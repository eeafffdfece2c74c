package ggplan

import "log/slog"

// PlanOption configures a Plan during creation.
type PlanOption func(*planOptions)

// planOptions holds optional configuration for Plan creation.
type planOptions struct {
	transform bool
	epsilon   float64
}

// defaultPlanOptions returns the default plan options.
func defaultPlanOptions() planOptions {
	return planOptions{
		transform: true,
		epsilon:   DefaultEpsilon,
	}
}

// WithTransform requests (true, the default) or refuses the affine update
// path. A plan that recorded screen-space commands is never affine.
func WithTransform(enabled bool) PlanOption {
	return func(o *planOptions) {
		o.transform = enabled
	}
}

// WithEpsilon sets the tolerance used to detect unchanged map states.
// Non-positive values keep DefaultEpsilon.
func WithEpsilon(eps float64) PlanOption {
	return func(o *planOptions) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// Plan is the durable, replayable drawing of one drawable: its recorded
// commands, the map state they were recorded under, and cached bounds.
//
// A plan is created once per drawable content, updated in place on every
// view change with UpdateMapState, and discarded when the drawable changes.
// Its update strategy (affine or exact) is fixed at construction.
//
// A Plan is not safe for concurrent use.
type Plan struct {
	commands []Command
	recorded []Command // exact plans: geometry as recorded under base
	stats    RecordStats

	base MapState // permanent, state at record time
	last MapState // state the cached geometry reflects

	affine     bool
	transform  Matrix
	xfString   string
	origBounds Rect
	bounds     Rect

	epsilon    float64
	needsApply bool
}

// NewPlan builds a plan from a finished recording pass captured under
// state.
func NewPlan(rec *Recorder, state MapState, opts ...PlanOption) *Plan {
	o := defaultPlanOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bounds, _ := rec.Bounds()
	p := &Plan{
		commands:   rec.Commands(),
		stats:      rec.Stats(),
		base:       state,
		last:       state,
		affine:     o.transform && !rec.UsesScreenSpace(),
		origBounds: bounds,
		bounds:     bounds,
		epsilon:    o.epsilon,
		needsApply: true,
	}
	if p.affine {
		p.transform = Identity()
		p.xfString = p.transform.String()
	} else {
		p.recorded = make([]Command, len(p.commands))
		for i, c := range p.commands {
			p.recorded[i] = c.clone()
		}
	}

	Logger().Debug("ggplan: plan built",
		slog.Int("commands", p.stats.Commands),
		slog.Int("styles", p.stats.Styles),
		slog.Bool("affine", p.affine))
	return p
}

// Commands returns the plan's commands. Callers must not modify them.
func (p *Plan) Commands() []Command {
	return p.commands
}

// Stats returns the statistics of the recording pass.
func (p *Plan) Stats() RecordStats {
	return p.stats
}

// IsAffine reports whether the plan uses the affine update path.
func (p *Plan) IsAffine() bool {
	return p.affine
}

// BaseState returns the map state the plan was recorded under.
func (p *Plan) BaseState() MapState {
	return p.base
}

// LastState returns the map state of the last update.
func (p *Plan) LastState() MapState {
	return p.last
}

// Transform returns the base-to-current matrix of an affine plan, or the
// identity for exact plans.
func (p *Plan) Transform() Matrix {
	if !p.affine {
		return Identity()
	}
	return p.transform
}

// TransformString returns the SVG transform of an affine plan, or "".
func (p *Plan) TransformString() string {
	return p.xfString
}

// Bounds returns the cached bounding box under the last applied state.
// ok is false when the plan has no geometry.
func (p *Plan) Bounds() (b Rect, ok bool) {
	return p.bounds, p.bounds.IsValid()
}

// NeedsApply reports whether the plan changed since it was last applied.
func (p *Plan) NeedsApply() bool {
	return p.needsApply
}

// UpdateMapState brings the plan up to date with state.
//
// Affine plans recompute one matrix from the base state (never from the
// previous state, so rounding does not compound) and transform their
// original bounds. Exact plans reproject every command from its recorded
// geometry under the base state, so repeated updates never feed rounded
// output back in, and rescan bounds. Both are no-ops when state equals the
// last applied state.
func (p *Plan) UpdateMapState(state MapState) {
	if state.Equal(p.last, p.epsilon) {
		return
	}
	if p.affine {
		p.transform = Similarity(TransformParams(p.base, state))
		p.xfString = p.transform.String()
		if p.origBounds.IsValid() {
			p.bounds = p.transform.TransformRect(p.origBounds)
		}
	} else {
		for i, c := range p.commands {
			c.restore(p.recorded[i])
			c.reproject(p.base, state)
			refreshSignature(c)
		}
		p.bounds = commandBounds(p.commands)
		Logger().Debug("ggplan: plan reprojected",
			slog.Int("commands", len(p.commands)),
			slog.Float64("scale", state.Scale))
	}
	p.last = state
	p.needsApply = true
}

// Apply replays the plan onto s and clears the dirty flag. Surfaces
// implementing [Batcher] get the replay bracketed by BeginBatch/EndBatch.
// Affine plans replay through [Transformer] when s implements it; otherwise
// their coordinates are transformed on the fly.
func (p *Plan) Apply(s Surface) {
	if s == nil {
		return
	}
	if b, ok := s.(Batcher); ok {
		b.BeginBatch()
		defer b.EndBatch()
	}

	var xf *Matrix
	if p.affine && !p.transform.IsIdentity() {
		if t, ok := s.(Transformer); ok {
			t.PushTransform(p.transform)
			defer t.PopTransform()
		} else {
			m := p.transform
			xf = &m
		}
	}
	for _, c := range p.commands {
		c.replay(s, xf)
	}
	p.needsApply = false
}

// IsVisible reports whether the cached bounds intersect the viewport
// [0,width]x[0,height] grown by margin pixels on every side. Plans without
// known bounds are reported visible.
func (p *Plan) IsVisible(width, height, margin float64) bool {
	if !p.bounds.IsValid() {
		return true
	}
	viewport := Rect{MinX: -margin, MinY: -margin, MaxX: width + margin, MaxY: height + margin}
	return p.bounds.Intersects(viewport)
}
