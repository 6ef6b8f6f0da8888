package types

import (
	"sort"
	"strings"
	"sync"
)

// Registry holds the function library: every registered overload,
// grouped by name in registration order. Registration order matters;
// resolution breaks remaining ties with overload IDs, which follow it.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string][]*Func
}

// NewRegistry creates an empty function registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string][]*Func)}
}

// Register adds one overload under name and returns it.
func (r *Registry) Register(name string, params []Param, out Kind, impl Impl) *Func {
	f := NewFunc(name, params, out, impl)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = append(r.funcs[name], f)
	return f
}

// Overloads returns the overloads registered under name in registration
// order, or nil when the name is unknown.
func (r *Registry) Overloads(name string) []*Func {
	r.mu.RLock()
	defer r.mu.RUnlock()
	overloads := r.funcs[name]
	if overloads == nil {
		return nil
	}
	return append([]*Func(nil), overloads...)
}

// Has reports whether any overload is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs[name]) > 0
}

// Names returns every registered function name, sorted.
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

// PrettySignature joins all of name's overload signatures with " | ",
// the form SignatureError and the funcs listing show.
func (r *Registry) PrettySignature(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	overloads := r.funcs[name]
	sigs := make([]string, len(overloads))
	for i, f := range overloads {
		sigs[i] = f.Signature()
	}
	return strings.Join(sigs, " | ")
}

// Global registry instance
var globalRegistry = NewRegistry()

// Global returns the process-wide registry the built-in library
// registers into. Custom registries exist for tests; everything else
// shares this one.
func Global() *Registry {
	return globalRegistry
}
