package eval

import "sort"

// Snapshot is the read-only view of the environment handed to
// expression evaluators.
type Snapshot interface {
	Get(name string) (Value, bool)
	Names() []string
}

// Environment maps variable names to values for the whole run.
// Bindings are only ever added or overwritten, never removed.
type Environment struct {
	store map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{store: map[string]Value{}}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.store[name] = v
}

func (e *Environment) Len() int { return len(e.store) }

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of e.
func (e *Environment) Clone() *Environment {
	store := make(map[string]Value, len(e.store))
	for k, v := range e.store {
		store[k] = v
	}
	return &Environment{store: store}
}
