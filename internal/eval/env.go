package eval

import "github.com/vk/expandgo/internal/value"

// Environment is an immutable mapping from variable names to values. Child
// scopes shadow parent bindings without mutating them, which is what makes
// per-iteration bindings during block expansion safe to hand out.
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// NewEnvironment builds a root scope from the given bindings. The map is
// copied, so the caller keeps ownership of its argument.
func NewEnvironment(vars map[string]value.Value) *Environment {
	copied := make(map[string]value.Value, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Environment{vars: copied}
}

// Child returns a new scope layered over the receiver. Names present in the
// new bindings shadow the parent's; everything else resolves through it.
func (e *Environment) Child(vars map[string]value.Value) *Environment {
	child := NewEnvironment(vars)
	child.parent = e
	return child
}

// Lookup resolves a name through the scope chain, innermost first.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}
