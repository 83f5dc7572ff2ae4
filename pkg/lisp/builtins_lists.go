package lisp

import "fmt"

func wantList(args []Value, n int, op string) ([]*List, error) {
	if len(args) != n {
		return nil, fmt.Errorf("Expected exactly %d argument(s)", n)
	}
	lists := make([]*List, n)
	for i, a := range args {
		if isNilValue(a) {
			lists[i] = NewList()
			continue
		}
		l, ok := a.(*List)
		if !ok {
			return nil, fmt.Errorf("Expected a list")
		}
		lists[i] = l
	}
	return lists, nil
}

func installListBuiltins(root *Environment) {
	define := func(name string, fn func(args []Value, interp *Interpreter) (Value, error)) {
		root.Set(Intern(name), &Builtin{Name: name, Fn: fn})
	}

	define("car", func(args []Value, interp *Interpreter) (Value, error) {
		lists, err := wantList(args, 1, "car")
		if err != nil {
			return nil, err
		}
		if lists[0].IsEmpty() {
			return nil, fmt.Errorf("Expected a non-empty list")
		}
		return lists[0].First(), nil
	})
	root.Set(Intern("first"), mustBuiltin(root, "car"))

	define("cdr", func(args []Value, interp *Interpreter) (Value, error) {
		lists, err := wantList(args, 1, "cdr")
		if err != nil {
			return nil, err
		}
		if lists[0].IsEmpty() {
			return nil, fmt.Errorf("Expected a non-empty list")
		}
		return lists[0].Rest(), nil
	})
	root.Set(Intern("rest"), mustBuiltin(root, "cdr"))

	define("cons", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		var tail []Value
		if isNilValue(args[1]) {
			tail = nil
		} else if l, ok := args[1].(*List); ok {
			tail = l.Elements
		} else {
			return nil, fmt.Errorf("Expected a list as the second argument")
		}
		elements := make([]Value, 0, len(tail)+1)
		elements = append(elements, args[0])
		elements = append(elements, tail...)
		return &List{Elements: elements}, nil
	})

	define("list", func(args []Value, interp *Interpreter) (Value, error) {
		return NewList(args...), nil
	})

	define("append", func(args []Value, interp *Interpreter) (Value, error) {
		var elements []Value
		for _, a := range args {
			if isNilValue(a) {
				continue
			}
			l, ok := a.(*List)
			if !ok {
				return nil, fmt.Errorf("Expected every argument to be a list")
			}
			elements = append(elements, l.Elements...)
		}
		return NewList(elements...), nil
	})

	define("reverse", func(args []Value, interp *Interpreter) (Value, error) {
		lists, err := wantList(args, 1, "reverse")
		if err != nil {
			return nil, err
		}
		src := lists[0].Elements
		out := make([]Value, len(src))
		for i, v := range src {
			out[len(src)-1-i] = v
		}
		return &List{Elements: out}, nil
	})

	define("nth", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		n, ok := args[0].(Number)
		if !ok {
			return nil, fmt.Errorf("Expected a number index")
		}
		var list *List
		if isNilValue(args[1]) {
			list = NewList()
		} else if l, ok := args[1].(*List); ok {
			list = l
		} else {
			return nil, fmt.Errorf("Expected a list")
		}
		i := int(n)
		if i < 0 || i >= list.Len() {
			return nil, fmt.Errorf("Index out of bounds")
		}
		return list.Elements[i], nil
	})

	nthNamed := func(name string, index int) {
		define(name, func(args []Value, interp *Interpreter) (Value, error) {
			lists, err := wantList(args, 1, name)
			if err != nil {
				return nil, err
			}
			if index >= lists[0].Len() {
				return nil, fmt.Errorf("Expected a list of at least %d element(s)", index+1)
			}
			return lists[0].Elements[index], nil
		})
	}
	nthNamed("second", 1)
	nthNamed("third", 2)
	nthNamed("fourth", 3)
	nthNamed("fifth", 4)
	nthNamed("cadr", 1)
	nthNamed("caddr", 2)
	nthNamed("cadddr", 3)

	define("member", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		lists, err := wantList(args[1:], 1, "member")
		if err != nil {
			return nil, err
		}
		list := lists[0]
		for i, elem := range list.Elements {
			if valuesIdentical(elem, args[0]) {
				return &List{Elements: list.Elements[i:]}, nil
			}
		}
		return Bool(false), nil
	})

	define("subseq", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("Expected 2 or 3 arguments")
		}
		lists, err := wantList(args[:1], 1, "subseq")
		if err != nil {
			return nil, err
		}
		list := lists[0]
		startN, ok := args[1].(Number)
		if !ok {
			return nil, fmt.Errorf("Expected a number start index")
		}
		start := int(startN)
		end := list.Len()
		if len(args) == 3 {
			endN, ok := args[2].(Number)
			if !ok {
				return nil, fmt.Errorf("Expected a number end index")
			}
			end = int(endN)
		}
		if start < 0 || end > list.Len() || start > end {
			return nil, fmt.Errorf("Index out of bounds")
		}
		out := make([]Value, end-start)
		copy(out, list.Elements[start:end])
		return &List{Elements: out}, nil
	})

	define("funcall", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("Expected at least 1 argument")
		}
		fn, err := resolveCallable(args[0], interp)
		if err != nil {
			return nil, err
		}
		return interp.Apply(args[0], fn, args[1:])
	})

	define("mapcar", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("Expected a function and at least 1 list")
		}
		fn, err := resolveCallable(args[0], interp)
		if err != nil {
			return nil, err
		}
		lists, err := wantList(args[1:], len(args)-1, "mapcar")
		if err != nil {
			return nil, err
		}
		shortest := lists[0].Len()
		for _, l := range lists[1:] {
			if l.Len() < shortest {
				shortest = l.Len()
			}
		}
		out := make([]Value, shortest)
		for i := 0; i < shortest; i++ {
			callArgs := make([]Value, len(lists))
			for j, l := range lists {
				callArgs[j] = l.Elements[i]
			}
			val, err := interp.Apply(args[0], fn, callArgs)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return &List{Elements: out}, nil
	})
}

// resolveCallable accepts either a Callable value directly, or a Symbol
// naming one in the root environment, as `funcall`/`mapcar` both allow.
func resolveCallable(v Value, interp *Interpreter) (Callable, error) {
	if c, ok := v.(Callable); ok {
		return c, nil
	}
	if sym, ok := v.(Symbol); ok {
		bound, err := interp.Root.Get(sym)
		if err != nil {
			return nil, err
		}
		if c, ok := bound.(Callable); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("Not a procedure: %s", v.String())
}
