package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/internal/cache"
)

// Default renderer configuration.
const (
	// DefaultCacheSize is the default soft limit of the plan cache.
	DefaultCacheSize = 1024
	// DefaultMargin is the default culling margin in pixels.
	DefaultMargin = 1
)

// ErrDrawPanic wraps the value of a recovered draw callback panic.
var ErrDrawPanic = errors.New("scene: draw callback panicked")

// Signer is implemented by drawables that can report a signature of their
// content. A changed signature discards the cached plan and records a new
// one. Drawables that do not implement Signer keep their plan until it is
// invalidated.
type Signer interface {
	Signature() string
}

// entry is one cached plan and the content it was recorded from.
type entry struct {
	plan      *ggplan.Plan
	class     string
	signature string
}

// FrameStats describes one Render call.
type FrameStats struct {
	// Drawables is the number of drawables passed in.
	Drawables int
	// Built counts plans recorded this frame, including rebuilds.
	Built int
	// Rebuilt counts plans discarded for changed content.
	Rebuilt int
	// Updated counts cached plans moved to a new view.
	Updated int
	// Culled counts plans outside the viewport.
	Culled int
	// Applied counts plans replayed onto the surface.
	Applied int
	// Hidden counts drawables that reported they are not renderable.
	Hidden int
	// Failed counts drawables whose plan could not be built or applied.
	Failed int
	// Evicted counts plans dropped from the cache.
	Evicted int
	// Duration is the wall time of the frame.
	Duration time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRegistry sets the draw callback registry. Default is
// [ggplan.DefaultRegistry].
func WithRegistry(reg *ggplan.Registry) RendererOption {
	return func(r *Renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithCacheSize sets the soft limit of the plan cache.
// Non-positive sizes mean unlimited.
func WithCacheSize(n int) RendererOption {
	return func(r *Renderer) {
		r.cacheSize = n
	}
}

// WithMargin sets the culling margin in pixels.
func WithMargin(px float64) RendererOption {
	return func(r *Renderer) {
		if px >= 0 {
			r.margin = px
		}
	}
}

// WithPlanOptions sets the options every plan is built with.
func WithPlanOptions(opts ...ggplan.PlanOption) RendererOption {
	return func(r *Renderer) {
		r.planOpts = append(r.planOpts[:0:0], opts...)
	}
}

// WithEpsilon sets the tolerance plans use to detect unchanged views.
func WithEpsilon(eps float64) RendererOption {
	return func(r *Renderer) {
		if eps > 0 {
			r.epsilon = eps
		}
	}
}

// WithFullRedraw applies every visible plan each frame, dirty or not.
// Use it for surfaces that start each frame empty.
func WithFullRedraw() RendererOption {
	return func(r *Renderer) {
		r.fullRedraw = true
	}
}

// Renderer keeps the plans of a canvas and brings them to the surface once
// per frame.
//
// Render and Invalidate serialize on an internal lock; the plans themselves
// are only touched under it.
type Renderer struct {
	mu sync.Mutex

	registry   *ggplan.Registry
	plans      *cache.Cache[string, *entry]
	planOpts   []ggplan.PlanOption
	cacheSize  int
	epsilon    float64
	margin     float64
	fullRedraw bool

	width  float64
	height float64

	stats     FrameStats
	evicted   int
	lastFrame time.Time
	frameTime time.Duration
}

// NewRenderer creates a renderer for a viewport of the given pixel size.
func NewRenderer(width, height float64, opts ...RendererOption) *Renderer {
	r := &Renderer{
		registry:  ggplan.DefaultRegistry(),
		cacheSize: DefaultCacheSize,
		epsilon:   ggplan.DefaultEpsilon,
		margin:    DefaultMargin,
		width:     width,
		height:    height,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.plans = cache.New[string, *entry](r.cacheSize)
	r.plans.OnEvict(func(key string, _ *entry) {
		r.evicted++
		ggplan.Logger().Debug("scene: plan evicted", slog.String("drawable", key))
	})
	return r
}

// Render brings the surface up to date with drawables under the current
// view of m. It never fails: drawables that cannot be drawn are counted in
// FrameStats.Failed and logged.
func (r *Renderer) Render(s ggplan.Surface, m ggplan.Mapper, drawables []ggplan.Drawable) FrameStats {
	stats, _ := r.RenderWithContext(context.Background(), s, m, drawables)
	return stats
}

// RenderWithContext is Render with cancellation between drawables. When ctx
// is canceled the surface holds a partial frame and ctx.Err() is returned.
func (r *Renderer) RenderWithContext(ctx context.Context, s ggplan.Surface, m ggplan.Mapper, drawables []ggplan.Drawable) (FrameStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	r.evicted = 0
	stats := FrameStats{Drawables: len(drawables)}
	state := ggplan.Capture(m)
	seen := make(map[string]bool, len(drawables))

	for i, d := range drawables {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
		if d == nil {
			continue
		}
		key := planKey(d, i)
		if !d.IsRenderable() {
			stats.Hidden++
			continue
		}
		seen[key] = true

		p := r.lookup(d, key, m, state, &stats)
		if p == nil {
			continue
		}
		if !p.IsVisible(r.width, r.height, r.margin) {
			stats.Culled++
			continue
		}
		if !r.fullRedraw && !p.NeedsApply() {
			continue
		}
		if err := apply(p, s); err != nil {
			stats.Failed++
			ggplan.Logger().Warn("scene: apply failed",
				slog.String("drawable", key), slog.Any("err", err))
			continue
		}
		stats.Applied++
	}

	r.plans.Retain(func(key string, _ *entry) bool { return seen[key] })
	stats.Evicted = r.evicted
	stats.Duration = time.Since(start)
	r.finishFrame(stats)

	ggplan.Logger().Debug("scene: frame",
		slog.Int("drawables", stats.Drawables),
		slog.Int("built", stats.Built),
		slog.Int("updated", stats.Updated),
		slog.Int("culled", stats.Culled),
		slog.Int("applied", stats.Applied))
	return stats, nil
}

// lookup returns the plan of d up to date with state, building it when it
// is missing or stale. It returns nil when the plan cannot be built.
func (r *Renderer) lookup(d ggplan.Drawable, key string, m ggplan.Mapper, state ggplan.MapState, stats *FrameStats) *ggplan.Plan {
	sig := ""
	if sg, ok := d.(Signer); ok {
		sig = sg.Signature()
	}

	e, ok := r.plans.Get(key)
	if ok && e.class == d.ClassName() && e.signature == sig {
		if !e.plan.LastState().Equal(state, r.epsilon) {
			stats.Updated++
		}
		e.plan.UpdateMapState(state)
		return e.plan
	}
	if ok {
		stats.Rebuilt++
		r.plans.Delete(key)
	}

	p, err := r.build(d, m)
	if err != nil {
		stats.Failed++
		if errors.Is(err, ggplan.ErrUnknownKind) {
			ggplan.Logger().Warn("scene: unknown drawable kind",
				slog.String("drawable", key), slog.String("class", d.ClassName()))
		} else {
			ggplan.Logger().Warn("scene: build failed",
				slog.String("drawable", key), slog.Any("err", err))
		}
		return nil
	}
	stats.Built++
	r.plans.Set(key, &entry{plan: p, class: d.ClassName(), signature: sig})
	return p
}

func (r *Renderer) build(d ggplan.Drawable, m ggplan.Mapper) (p *ggplan.Plan, err error) {
	defer func() {
		if v := recover(); v != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrDrawPanic, v)
		}
	}()
	opts := append(r.planOpts[:len(r.planOpts):len(r.planOpts)], ggplan.WithEpsilon(r.epsilon))
	return ggplan.Build(d, m, r.registry, opts...)
}

func apply(p *ggplan.Plan, s ggplan.Surface) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("scene: surface panicked: %v", v)
		}
	}()
	p.Apply(s)
	return nil
}

// planKey names the cache slot of d. Unnamed drawables are keyed by class
// and position in the frame.
func planKey(d ggplan.Drawable, index int) string {
	if name := d.Name(); name != "" {
		return name
	}
	return d.ClassName() + "#" + strconv.Itoa(index)
}

func (r *Renderer) finishFrame(stats FrameStats) {
	r.stats = stats
	now := time.Now()
	if !r.lastFrame.IsZero() {
		r.frameTime = now.Sub(r.lastFrame)
	}
	r.lastFrame = now
}

// Plan returns the cached plan of the named drawable.
func (r *Renderer) Plan(name string) (*ggplan.Plan, bool) {
	e, ok := r.plans.Peek(name)
	if !ok {
		return nil, false
	}
	return e.plan, true
}

// Invalidate discards the cached plans of the named drawables, or of every
// drawable when no name is given. They are recorded again on the next frame.
func (r *Renderer) Invalidate(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(names) == 0 {
		r.plans.Clear()
		return
	}
	for _, n := range names {
		r.plans.Delete(n)
	}
}

// Resize updates the viewport used for culling.
func (r *Renderer) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// FrameTime returns the time between the ends of the last two frames.
func (r *Renderer) FrameTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameTime
}

// CacheStats returns the plan cache statistics.
func (r *Renderer) CacheStats() cache.Stats {
	return r.plans.Stats()
}
