package ggplan

import (
	"sort"
	"sync"
)

// Drawable is the read-only view of a geometry object that a plan is built
// for. Per-kind attributes are exposed through kind-specific interfaces that
// the registered DrawFunc asserts.
type Drawable interface {
	// Name identifies the drawable within its scene.
	Name() string
	// ClassName selects the draw callback.
	ClassName() string
	// IsRenderable reports whether the drawable should be drawn at all.
	IsRenderable() bool
}

// DrawFunc draws one drawable onto a surface using mapper for math to
// screen conversion. The same callback draws directly to a backend or, via
// a Recorder, into a plan.
type DrawFunc func(s Surface, d Drawable, m Mapper)

// Registry maps drawable class names to draw callbacks, following the
// database/sql driver pattern.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]DrawFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]DrawFunc)}
}

// defaultRegistry backs the package-level Register and Lookup.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register registers the draw callback for a class name.
//
// Register panics if fn is nil or the class name is already registered, so
// duplicate registrations are caught during initialization rather than
// silently overwriting callbacks.
func (r *Registry) Register(className string, fn DrawFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		panic("ggplan: Register draw func is nil")
	}
	if _, dup := r.funcs[className]; dup {
		panic("ggplan: Register called twice for " + className)
	}
	r.funcs[className] = fn
}

// Unregister removes a class name. It is a no-op for unknown names.
func (r *Registry) Unregister(className string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.funcs, className)
}

// Lookup returns the draw callback for a class name.
func (r *Registry) Lookup(className string) (DrawFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[className]
	return fn, ok
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register registers a draw callback in the default registry.
func Register(className string, fn DrawFunc) {
	defaultRegistry.Register(className, fn)
}
