package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps type names to node types.
// It is safe for concurrent reads after registration completes.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*NodeType
}

// NewRegistry creates a registry holding the given types.
func NewRegistry(types ...*NodeType) (*Registry, error) {
	r := &Registry{types: make(map[string]*NodeType, len(types))}
	for _, t := range types {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for statically declared schemas; it panics on error.
func MustRegistry(types ...*NodeType) *Registry {
	r, err := NewRegistry(types...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register validates t, resolves its behavior and adds it to the registry.
func (r *Registry) Register(t *NodeType) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidType)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	t.behavior = resolveBehavior(t)
	t.resolved = true
	r.types[t.Name] = t
	return nil
}

// Lookup returns the type with the given name.
func (r *Registry) Lookup(name string) (*NodeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}

// MustLookup is Lookup that panics on unknown names.
func (r *Registry) MustLookup(name string) *NodeType {
	t, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Types returns all registered types sorted by name.
func (r *Registry) Types() []*NodeType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*NodeType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Documents returns the registered types of category document.
func (r *Registry) Documents() []*NodeType {
	var out []*NodeType
	for _, t := range r.Types() {
		if t.Category == CategoryDocument {
			out = append(out, t)
		}
	}
	return out
}
