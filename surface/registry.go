// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Factory creates a new Target with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Target, error)

// RegistryEntry represents a registered backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend, usually the output
	// format ("svg", "png").
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Factory creates target instances.
	Factory Factory

	// Extensions lists the file extensions the backend writes, with the
	// leading dot.
	Extensions []string
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered backends.
//
// Example registration:
//
//	func init() {
//	    surface.Register("svg", 20, New, ".svg")
//	}
//
// Example usage:
//
//	t, err := surface.NewTarget("svg", opts)
//	// or by output file:
//	t, err := surface.NewTargetForFile("out.png", opts)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewTarget.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, extensions ...string) {
	globalRegistry.Register(name, priority, factory, extensions...)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// NewTarget creates a target using the named backend of the global registry.
func NewTarget(name string, opts Options) (Target, error) {
	return globalRegistry.NewTarget(name, opts)
}

// NewTargetForFile picks a backend of the global registry by the extension
// of path.
func NewTargetForFile(path string, opts Options) (Target, error) {
	return globalRegistry.NewTargetForFile(path, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, extensions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &RegistryEntry{
		Name:       name,
		Priority:   priority,
		Factory:    factory,
		Extensions: append([]string(nil), extensions...),
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.sorted()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	entryCopy.Extensions = append([]string(nil), entry.Extensions...)
	return &entryCopy, true
}

// NewTarget creates a target using a specific backend.
func (r *Registry) NewTarget(name string, opts Options) (Target, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidSize
	}
	return entry.Factory(opts)
}

// NewTargetForFile creates a target using the highest priority backend that
// writes the extension of path.
func (r *Registry) NewTargetForFile(path string, opts Options) (Target, error) {
	ext := filepath.Ext(path)

	r.mu.RLock()
	var name string
	for _, e := range r.sorted() {
		if e.writes(ext) {
			name = e.Name
			break
		}
	}
	r.mu.RUnlock()

	if name == "" {
		return nil, &BackendNotFoundError{Name: path}
	}
	return r.NewTarget(name, opts)
}

// sorted returns the entries by priority (highest first), then by name.
// Must be called with lock held.
func (r *Registry) sorted() []*RegistryEntry {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func (e *RegistryEntry) writes(ext string) bool {
	for _, x := range e.Extensions {
		if strings.EqualFold(x, ext) {
			return true
		}
	}
	return false
}

// Errors.
var (
	// ErrInvalidSize is returned for targets without a positive size.
	ErrInvalidSize = errors.New("surface: width and height must be positive")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}
