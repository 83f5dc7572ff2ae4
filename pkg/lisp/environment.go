package lisp

import "fmt"

// Environment is a chained mapping from symbol names to values. Lookup
// walks outward through ancestors; the root frame holds builtins and
// user-defined globals.
type Environment struct {
	bindings map[Symbol]Value
	parent   *Environment
}

// NewEnvironment creates a frame whose lookups fall through to parent.
// parent is nil for the root frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		bindings: make(map[Symbol]Value),
		parent:   parent,
	}
}

// Get resolves sym by walking outward through the frame chain.
func (e *Environment) Get(sym Symbol) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[sym]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Unknown symbol: %s", sym)
}

// Set binds sym in this frame only.
func (e *Environment) Set(sym Symbol, val Value) {
	e.bindings[sym] = val
}

// Bindings returns this frame's own bindings, not including ancestors.
// Used by tooling (e.g. REPL tab completion) that wants to enumerate what
// is defined without walking the whole chain itself.
func (e *Environment) Bindings() map[Symbol]Value {
	return e.bindings
}

// Parent returns the frame this one falls through to, or nil for the root.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Root walks to the outermost frame.
func (e *Environment) Root() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Define binds sym both in this frame and in the root frame. defun, setq
// and setf-on-symbol all mirror bindings into the root frame in addition
// to the current frame, so a lambda captured in a nested frame can later
// see globals introduced mid-execution.
func (e *Environment) Define(sym Symbol, val Value) {
	e.Set(sym, val)
	e.Root().Set(sym, val)
}
