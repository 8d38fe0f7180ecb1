package component

import "sync"

// Binding pairs a field name with the component bound to it.
type Binding struct {
	Name      string
	Component Component
}

// Registry maps field names to bound components. Registering a name twice
// replaces the component (last write wins) but keeps the position of the
// first registration, so iteration order stays the declaration order.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// Register binds name to c. Empty names and nil components are ignored.
func (r *Registry) Register(name string, c Component) {
	if name == "" || c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.components == nil {
		r.components = make(map[string]Component)
	}
	if _, exists := r.components[name]; !exists {
		r.order = append(r.order, name)
	}
	r.components[name] = c
}

// Get returns the component bound to name.
func (r *Registry) Get(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Text returns the text capability of the component bound to name.
func (r *Registry) Text(name string) (Texter, bool) {
	c, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return AsText(c)
}

// Len reports the number of bound names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Names returns the bound names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Bindings returns the current bindings in registration order.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Binding, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Binding{Name: name, Component: r.components[name]})
	}
	return out
}

// Values snapshots the current value of every bound component.
func (r *Registry) Values() map[string]any {
	bindings := r.Bindings()
	out := make(map[string]any, len(bindings))
	for _, b := range bindings {
		out[b.Name] = b.Component.Value()
	}
	return out
}
