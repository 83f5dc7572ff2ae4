// Package lisp implements the core language pipeline for a small Lisp
// dialect: lexer, reader, environment and a tree-walking evaluator.
package lisp

import "fmt"

// Value is the common type for every piece of data the interpreter
// manipulates, whether it arrived from the reader or was produced by
// evaluation.
type Value interface {
	// String renders the canonical printed form used by the I/O builtins
	// and error messages.
	String() string
}

// Symbol is an interned identifier: an operator name or a variable name.
type Symbol string

func (s Symbol) String() string { return string(s) }

var internTable = make(map[string]Symbol)

// Intern returns the canonical Symbol for name, so that symbols with the
// same spelling compare equal as Go values.
func Intern(name string) Symbol {
	if sym, ok := internTable[name]; ok {
		return sym
	}
	sym := Symbol(name)
	internTable[name] = sym
	return sym
}

// Number is the interpreter's single numeric type.
type Number float64

func (n Number) String() string {
	if n == Number(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", float64(n))
}

// Bool is a truth value. Only Bool(false) is falsy in `if`/`cond`; see
// isTruthy and isTruthyAndOr for the two notions of truthiness this
// dialect distinguishes between.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Str is the content of a "..." literal, with escapes already resolved.
type Str string

func (s Str) String() string { return string(s) }

// Null is the result of forms with no meaningful value.
type Null struct{}

func (Null) String() string { return "NIL" }

// List is an ordered sequence of Values. It backs both code (an
// application's form) and data, and is mutated in place by `setf`.
type List struct {
	Elements []Value
}

// NewList builds a List from its elements.
func NewList(elements ...Value) *List {
	return &List{Elements: elements}
}

func (l *List) String() string {
	if len(l.Elements) == 0 {
		return "NIL"
	}
	out := "("
	for i, v := range l.Elements {
		if i > 0 {
			out += " "
		}
		out += v.String()
	}
	return out + ")"
}

// IsEmpty reports whether the list has no elements; the empty list is the
// canonical "nil-ish" value.
func (l *List) IsEmpty() bool { return len(l.Elements) == 0 }

// Len returns the element count.
func (l *List) Len() int { return len(l.Elements) }

// First returns the head of the list, or Null{} if empty.
func (l *List) First() Value {
	if l.IsEmpty() {
		return Null{}
	}
	return l.Elements[0]
}

// Rest returns a new List sharing no backing array with l, holding every
// element but the first.
func (l *List) Rest() *List {
	if len(l.Elements) <= 1 {
		return NewList()
	}
	tail := make([]Value, len(l.Elements)-1)
	copy(tail, l.Elements[1:])
	return &List{Elements: tail}
}

// Callable is implemented by every Value that can appear in operator
// position of an application: Builtin and Lambda.
type Callable interface {
	Value
	Call(args []Value, interp *Interpreter) (Value, error)
}

// Builtin wraps a host-implemented operator.
type Builtin struct {
	Name string
	Fn   func(args []Value, interp *Interpreter) (Value, error)
}

func (b *Builtin) String() string { return "#<FUNCTION>" }

// Call invokes the builtin's Go implementation.
func (b *Builtin) Call(args []Value, interp *Interpreter) (Value, error) {
	result, err := b.Fn(args, interp)
	if err != nil {
		return nil, fmt.Errorf("Error in procedure %s: %s", b.Name, err.Error())
	}
	return result, nil
}

// Lambda is a user-defined function: a parameter list, a body of forms,
// and the environment captured at the point of definition (or `lambda`
// expression).
type Lambda struct {
	Params []Symbol
	Body   []Value
	Env    *Environment
}

func (l *Lambda) String() string { return "#<FUNCTION>" }

// Call binds args to Params in a fresh child of the closed-over
// environment and evaluates Body left-to-right, returning the last form's
// value.
func (l *Lambda) Call(args []Value, interp *Interpreter) (Value, error) {
	if len(args) != len(l.Params) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", len(l.Params), len(args))
	}
	callEnv := NewEnvironment(l.Env)
	for i, p := range l.Params {
		callEnv.Set(p, args[i])
	}
	var result Value = Null{}
	var err error
	for _, form := range l.Body {
		result, err = interp.Eval(form, callEnv)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
