package plugin

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps bare specifiers to Go plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds p under name. Names are unique.
func (r *Registry) Register(name string, p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if IsProjectRelative(name) {
		return fmt.Errorf("plugin name %q looks like a path", name)
	}

	if _, ok := r.plugins[name]; ok {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p

	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, p Plugin) {
	if err := r.Register(name, p); err != nil {
		panic(err)
	}
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]

	return p, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
