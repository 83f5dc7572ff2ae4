package lisp

import "fmt"

// Interpreter owns one evaluation session: the root environment, the
// output buffer forms append to, and the host-supplied read-line
// callback. Both the buffer and the root frame are single-threaded state
// owned by this one session; nothing else may touch them concurrently.
type Interpreter struct {
	Root          *Environment
	Output        []string
	InputProvider func() (string, bool)
}

// NewInterpreter builds a session with a fresh root environment preloaded
// with the built-in operator library.
func NewInterpreter() *Interpreter {
	interp := &Interpreter{Root: NewEnvironment(nil)}
	installBuiltins(interp.Root)
	return interp
}

// Emit appends one line to the output buffer; every print/prin1/format
// call contributes exactly one entry, even when its text embeds a
// newline.
func (interp *Interpreter) Emit(line string) {
	interp.Output = append(interp.Output, line)
}

// Eval dispatches on form's shape: self-evaluating atoms, symbol lookup,
// and list application.
func (interp *Interpreter) Eval(form Value, env *Environment) (Value, error) {
	switch v := form.(type) {
	case Number, Bool, Str, Null, *Builtin, *Lambda:
		return v, nil

	case Symbol:
		return env.Get(v)

	case *List:
		if v.IsEmpty() {
			return v, nil
		}
		return interp.evalList(v, env)

	default:
		return nil, evalErrorf("cannot evaluate value of type %T", form)
	}
}

func (interp *Interpreter) evalList(form *List, env *Environment) (Value, error) {
	head := form.First()
	args := form.Rest()

	if sym, ok := head.(Symbol); ok {
		if handler, ok := specialForms[sym]; ok {
			return handler(interp, args, env)
		}
	}

	fn, err := interp.Eval(head, env)
	if err != nil {
		return nil, err
	}

	evaluated := make([]Value, args.Len())
	for i, arg := range args.Elements {
		val, err := interp.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		evaluated[i] = val
	}

	return interp.Apply(head, fn, evaluated)
}

// Apply invokes fn (the value op evaluated to) on already-evaluated args.
// headForDisplay is the unevaluated operator form, used only to name the
// operator in error messages.
func (interp *Interpreter) Apply(headForDisplay Value, fn Value, args []Value) (Value, error) {
	callable, ok := fn.(Callable)
	if !ok {
		return nil, evalErrorf("Not a procedure: %s", headForDisplay.String())
	}
	return callable.Call(args, interp)
}

// evalBody evaluates forms left-to-right in env, returning the last
// value (or Null{} if forms is empty).
func (interp *Interpreter) evalBody(forms []Value, env *Environment) (Value, error) {
	var result Value = Null{}
	var err error
	for _, f := range forms {
		result, err = interp.Eval(f, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func wantSymbol(v Value) (Symbol, error) {
	sym, ok := v.(Symbol)
	if !ok {
		return "", fmt.Errorf("expected a symbol, got %s", v.String())
	}
	return sym, nil
}
