package content

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps expectation kinds to renderers. A Registry is
// built once at startup and passed to the mapper; it is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates a Registry with all built-in renderers
// pre-registered.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.registerDefaults()
	return r
}

// NewEmptyRegistry creates a Registry with no renderers.
func NewEmptyRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer for kind. Returns an error if the kind
// is empty, the renderer has no Statement func, or the kind is
// already registered.
func (r *Registry) Register(kind string, renderer Renderer) error {
	if kind == "" {
		return fmt.Errorf("expectation kind cannot be empty")
	}
	if renderer.Statement == nil {
		return fmt.Errorf("renderer for %s has no statement func", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[kind]; exists {
		return fmt.Errorf("renderer already registered: %s", kind)
	}
	r.renderers[kind] = renderer
	return nil
}

// Lookup returns the renderer for kind.
func (r *Registry) Lookup(kind string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

// Has reports whether kind has a renderer.
func (r *Registry) Has(kind string) bool {
	_, ok := r.Lookup(kind)
	return ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.renderers)
}
