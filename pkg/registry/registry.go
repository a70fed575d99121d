// Package registry holds the runtime copy of user-defined custom types.
//
// The registry maps a custom-type name to its expression template. It starts
// empty and changes only through Register, Unregister, Clear and Replace.
// Expressions are not validated here; callers sanity-check a definition with
// the generator's TestDefinition before persisting it.
package registry

import (
	"sort"
	"sync"
)

// Definition is a named expression template.
type Definition struct {
	Name       string `json:"name" yaml:"name"`
	Expression string `json:"expression" yaml:"expression"`
}

// Registry is a name-keyed set of custom type definitions.
// It is safe for concurrent use via an internal RWMutex.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register inserts def, replacing any definition with the same name.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
}

// Unregister removes the definition called name. Unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.defs, name)
}

// Clear removes every definition.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.defs)
}

// Replace swaps the whole content of the registry for defs in one step.
func (r *Registry) Replace(defs []Definition) {
	next := make(map[string]Definition, len(defs))
	for _, def := range defs {
		next[def.Name] = def
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = next
}

// Lookup returns the definition called name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
