package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// substituteFormat walks template looking for %s/%d directives, replacing
// each with the String() form of the next arg in order. Unknown directives
// and excess text pass through unchanged.
func substituteFormat(template string, args []Value) (string, error) {
	var sb strings.Builder
	argIdx := 0
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' || i == len(template)-1 {
			sb.WriteByte(ch)
			continue
		}
		directive := template[i+1]
		if directive != 's' && directive != 'd' {
			sb.WriteByte(ch)
			continue
		}
		if argIdx >= len(args) {
			return "", fmt.Errorf("format: Not enough arguments for template")
		}
		sb.WriteString(args[argIdx].String())
		argIdx++
		i++
	}
	return sb.String(), nil
}

// streamIsT reports whether v is the truthy stream designator written as
// `t` in source. The reader turns the atom `t` into Bool(true) before
// `format` ever sees it, so that is what this checks for; a literal
// Symbol("t") is accepted too for values built programmatically.
func streamIsT(v Value) bool {
	if b, ok := v.(Bool); ok {
		return bool(b)
	}
	sym, ok := v.(Symbol)
	return ok && sym == Intern("t")
}

func installIOBuiltins(root *Environment) {
	define := func(name string, fn func(args []Value, interp *Interpreter) (Value, error)) {
		root.Set(Intern(name), &Builtin{Name: name, Fn: fn})
	}

	define("print", func(args []Value, interp *Interpreter) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		interp.Emit(strings.Join(parts, " "))
		if len(args) == 0 {
			return Null{}, nil
		}
		return args[len(args)-1], nil
	})

	define("prin1", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		interp.Emit(args[0].String())
		return args[0], nil
	})

	define("format", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("Expected a stream and a template")
		}
		tmpl, ok := args[1].(Str)
		if !ok {
			return nil, fmt.Errorf("Expected a string template")
		}
		out, err := substituteFormat(string(tmpl), args[2:])
		if err != nil {
			return nil, err
		}
		if streamIsT(args[0]) {
			interp.Emit(out)
			return Str(out), nil
		}
		return Null{}, nil
	})

	define("read-line", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("Expected no arguments")
		}
		if interp.InputProvider == nil {
			return nil, fmt.Errorf("No input available")
		}
		line, ok := interp.InputProvider()
		if !ok {
			return NewList(), nil
		}
		return Str(line), nil
	})

	exitHandler := func(args []Value, interp *Interpreter) (Value, error) {
		interp.Emit("Exiting Lisp interpreter")
		return Str("exit"), nil
	}
	define("exit", exitHandler)
	define("bye", exitHandler)

	define("parse-number", func(args []Value, interp *Interpreter) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		s, ok := args[0].(Str)
		if !ok {
			return nil, fmt.Errorf("Expected a string")
		}
		n, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return nil, fmt.Errorf("Cannot parse %q as a number", string(s))
		}
		return Number(n), nil
	})
}

// installBuiltins wires every builtin operator into root, plus the nil/t
// constant bindings.
func installBuiltins(root *Environment) {
	root.Set(Intern("nil"), NewList())
	root.Set(Intern("t"), Bool(true))

	installArithmeticBuiltins(root)
	installListBuiltins(root)
	installPredicateBuiltins(root)
	installIOBuiltins(root)
}
