package lisp

import "fmt"

// valuesEqual implements `equal`'s structural comparison: numbers, strings
// and booleans compare by value, lists compare element-by-element, and
// everything else (symbols, functions) falls back to eq identity.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av == bv
	case Null:
		if bl, ok := b.(*List); ok {
			return bl.IsEmpty()
		}
		_, ok := b.(Null)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || av.Len() != bv.Len() {
			if !ok && av.IsEmpty() {
				_, bIsNull := b.(Null)
				return bIsNull
			}
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// valuesIdentical implements `eq`/`member`'s scalar-identity comparison:
// two lists are only eq if they are the very same List value, never by
// structural content. This quirk is preserved deliberately.
func valuesIdentical(a, b Value) bool {
	if la, ok := a.(*List); ok {
		lb, ok := b.(*List)
		return ok && la == lb
	}
	return valuesEqual(a, b)
}

func installPredicateBuiltins(root *Environment) {
	define := func(name string, fn func(args []Value, interp *Interpreter) (Value, error)) {
		root.Set(Intern(name), &Builtin{Name: name, Fn: fn})
	}

	define("listp", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		_, ok := args[0].(*List)
		if !ok {
			_, ok = args[0].(Null)
		}
		return Bool(ok), nil
	})
	root.Set(Intern("list?"), mustBuiltin(root, "listp"))

	define("atom", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		list, ok := args[0].(*List)
		isList := ok && !list.IsEmpty()
		return Bool(!isList), nil
	})

	define("null", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		return Bool(isNilValue(args[0])), nil
	})
	root.Set(Intern("null?"), mustBuiltin(root, "null"))

	define("numberp", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		_, ok := args[0].(Number)
		return Bool(ok), nil
	})
	root.Set(Intern("number?"), mustBuiltin(root, "numberp"))

	define("symbolp", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		_, ok := args[0].(Symbol)
		return Bool(ok), nil
	})
	root.Set(Intern("symbol?"), mustBuiltin(root, "symbolp"))

	define("zerop", func(args []Value, interp *Interpreter) (Value, error) {
		n, err := wantNumber(args, "zerop")
		if err != nil {
			return nil, err
		}
		return Bool(n == 0), nil
	})

	define("plusp", func(args []Value, interp *Interpreter) (Value, error) {
		n, err := wantNumber(args, "plusp")
		if err != nil {
			return nil, err
		}
		return Bool(n > 0), nil
	})

	define("minusp", func(args []Value, interp *Interpreter) (Value, error) {
		n, err := wantNumber(args, "minusp")
		if err != nil {
			return nil, err
		}
		return Bool(n < 0), nil
	})

	define("eq", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		return Bool(valuesIdentical(args[0], args[1])), nil
	})

	define("equal", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		return Bool(valuesEqual(args[0], args[1])), nil
	})

	define("not", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		return Bool(!isTruthyAndOr(args[0])), nil
	})
}

// isNilValue reports whether v is the empty list, in either of its two
// representations (*List with no elements, or Null{}).
func isNilValue(v Value) bool {
	if _, ok := v.(Null); ok {
		return true
	}
	if l, ok := v.(*List); ok {
		return l.IsEmpty()
	}
	return false
}

func wantNumber(args []Value, op string) (Number, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("Expected exactly 1 argument")
	}
	n, ok := args[0].(Number)
	if !ok {
		return 0, fmt.Errorf("Expected a number")
	}
	return n, nil
}

func mustBuiltin(root *Environment, name string) Value {
	v, err := root.Get(Intern(name))
	if err != nil {
		panic("installPredicateBuiltins: missing " + name)
	}
	return v
}
