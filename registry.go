// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"fmt"
	"sort"
	"sync"
)

// ContextFactory binds a new Context to s.
// Factories return an error wrapping ErrContextUnavailable when the surface
// cannot supply the capability.
type ContextFactory func(s Surface) (Context, error)

// RegistryEntry represents a registered backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: webgl2 (browser)
	//   - 90: opengl (desktop window)
	//   - 10: software
	Priority int

	// Factory creates contexts.
	Factory ContextFactory

	// Available reports if the backend can run on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered backends.
//
// Backends register themselves from an init function, so importing a
// backend package for its side effect is enough to make it selectable:
//
//	import _ "github.com/gogpu/glprims/backend/soft"
//
//	ctx, err := glprims.AcquireByName("software", surface)
//	// or pick the best available backend:
//	ctx, err := glprims.Acquire(surface)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Acquire.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory ContextFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// Backends returns the names of all available backends, highest priority
// first.
func Backends() []string {
	return globalRegistry.Available()
}

// AllBackends returns the names of all registered backends, available or
// not, highest priority first.
func AllBackends() []string {
	return globalRegistry.List()
}

// Backend returns a copy of the global registry entry for name.
func Backend(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Acquire binds a Context to s using the best available backend.
func Acquire(s Surface) (Context, error) {
	return globalRegistry.Acquire(s)
}

// AcquireByName binds a Context to s using the named backend.
func AcquireByName(name string, s Surface) (Context, error) {
	return globalRegistry.AcquireByName(name, s)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory ContextFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
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

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// Acquire tries every available backend in priority order and returns the
// first context that binds to s.
func (r *Registry) Acquire(s Surface) (Context, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		ctx, err := r.AcquireByName(name, s)
		if err == nil {
			return ctx, nil
		}
		Logger().Debug("glprims: backend rejected surface", "backend", name, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// AcquireByName binds a Context to s using a specific backend.
func (r *Registry) AcquireByName(name string, s Surface) (Context, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	ctx, err := entry.Factory(s)
	if err != nil {
		return nil, fmt.Errorf("glprims: %s: %w", name, err)
	}
	if ctx == nil {
		return nil, fmt.Errorf("glprims: %s: %w", name, ErrContextUnavailable)
	}

	info := ctx.AdapterInfo()
	Logger().Info("glprims: context acquired", "backend", name, "adapter", info.Name, "type", info.Type)
	return ctx, nil
}

// sortedNames returns backend names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
