package lisp

import "fmt"

// specialFormHandler evaluates one special form. args is the unevaluated
// operand list (the form's tail); handlers decide for themselves which
// operands to evaluate.
type specialFormHandler func(interp *Interpreter, args *List, env *Environment) (Value, error)

// specialForms recognizes special forms by exact symbol match of the
// list head. Arity and shape are checked per form. The table is filled in
// init because the handlers call Eval, which itself reads the table.
var specialForms map[Symbol]specialFormHandler

func init() {
	specialForms = map[Symbol]specialFormHandler{
		Intern("quote"):   sfQuote,
		Intern("defun"):   sfDefun,
		Intern("lambda"):  sfLambda,
		Intern("setq"):    sfSetq,
		Intern("setf"):    sfSetf,
		Intern("if"):      sfIf,
		Intern("cond"):    sfCond,
		Intern("case"):    sfCase,
		Intern("let"):     sfLet,
		Intern("begin"):   sfProgn,
		Intern("progn"):   sfProgn,
		Intern("do"):      sfDo,
		Intern("dolist"):  sfDolist,
		Intern("dotimes"): sfDotimes,
		Intern("eval"):    sfEval,
		Intern("and"):     sfAnd,
		Intern("or"):      sfOr,
	}
}

// isTruthy implements the if/cond/and/or base truth test: only Bool(false)
// is falsy. The empty list is truthy, diverging from standard Lisp by
// design.
func isTruthy(v Value) bool {
	if b, ok := v.(Bool); ok {
		return bool(b)
	}
	return true
}

// isTruthyAndOr is the and/or variant: Bool(false) and Null are both
// falsy, everything else (including the empty list) is truthy.
func isTruthyAndOr(v Value) bool {
	if _, ok := v.(Null); ok {
		return false
	}
	return isTruthy(v)
}

func sfQuote(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() != 1 {
		return nil, fmt.Errorf("quote: Expected exactly 1 operand")
	}
	return args.Elements[0], nil
}

func paramsFromForm(v Value) ([]Symbol, error) {
	list, ok := v.(*List)
	if !ok {
		return nil, fmt.Errorf("Expected a parameter list")
	}
	params := make([]Symbol, list.Len())
	for i, p := range list.Elements {
		sym, err := wantSymbol(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d must be a symbol", i+1)
		}
		params[i] = sym
	}
	return params, nil
}

func sfDefun(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 2 {
		return nil, fmt.Errorf("defun: Expected a name, a parameter list, and a body")
	}
	name, err := wantSymbol(args.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("defun: name must be a symbol")
	}
	params, err := paramsFromForm(args.Elements[1])
	if err != nil {
		return nil, fmt.Errorf("defun: %s", err.Error())
	}
	lambda := &Lambda{Params: params, Body: args.Elements[2:], Env: env}
	env.Define(name, lambda)
	return name, nil
}

func sfLambda(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 2 {
		return nil, fmt.Errorf("lambda: Expected a parameter list and a body")
	}
	params, err := paramsFromForm(args.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("lambda: %s", err.Error())
	}
	return &Lambda{Params: params, Body: args.Elements[1:], Env: env}, nil
}

func sfSetq(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len()%2 != 0 || args.Len() == 0 {
		return nil, fmt.Errorf("setq: Expected an even number of operands")
	}
	var result Value = Null{}
	for i := 0; i < args.Len(); i += 2 {
		sym, err := wantSymbol(args.Elements[i])
		if err != nil {
			return nil, fmt.Errorf("setq: %s", err.Error())
		}
		val, err := interp.Eval(args.Elements[i+1], env)
		if err != nil {
			return nil, err
		}
		env.Define(sym, val)
		result = val
	}
	return result, nil
}

func sfSetf(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len()%2 != 0 || args.Len() == 0 {
		return nil, fmt.Errorf("setf: Expected an even number of operands")
	}
	var result Value = Null{}
	for i := 0; i < args.Len(); i += 2 {
		place := args.Elements[i]
		val, err := interp.Eval(args.Elements[i+1], env)
		if err != nil {
			return nil, err
		}
		if err := assignPlace(interp, place, val, env); err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func assignPlace(interp *Interpreter, place Value, val Value, env *Environment) error {
	if sym, ok := place.(Symbol); ok {
		env.Define(sym, val)
		return nil
	}

	accessor, ok := place.(*List)
	if !ok || accessor.IsEmpty() {
		return fmt.Errorf("setf: Unsupported place %s", place.String())
	}
	head, err := wantSymbol(accessor.First())
	if err != nil {
		return fmt.Errorf("setf: Unsupported place %s", place.String())
	}

	switch head {
	case Intern("car"):
		rest := accessor.Rest()
		if rest.Len() != 1 {
			return fmt.Errorf("setf: (car L) expects exactly 1 operand")
		}
		target, err := interp.Eval(rest.Elements[0], env)
		if err != nil {
			return err
		}
		list, ok := target.(*List)
		if !ok || list.IsEmpty() {
			return fmt.Errorf("setf: car: Expected a non-empty list")
		}
		list.Elements[0] = val
		return nil

	case Intern("nth"):
		rest := accessor.Rest()
		if rest.Len() != 2 {
			return fmt.Errorf("setf: (nth i L) expects exactly 2 operands")
		}
		idxVal, err := interp.Eval(rest.Elements[0], env)
		if err != nil {
			return err
		}
		target, err := interp.Eval(rest.Elements[1], env)
		if err != nil {
			return err
		}
		n, ok := idxVal.(Number)
		if !ok {
			return fmt.Errorf("setf: nth: index must be a number")
		}
		list, ok := target.(*List)
		if !ok {
			return fmt.Errorf("setf: nth: Expected a list")
		}
		i := int(n)
		if i < 0 || i >= list.Len() {
			return fmt.Errorf("setf: nth: index %d out of bounds", i)
		}
		list.Elements[i] = val
		return nil

	default:
		return fmt.Errorf("setf: Unsupported place %s", place.String())
	}
}

func sfIf(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 2 || args.Len() > 3 {
		return nil, fmt.Errorf("if: Expected 2 or 3 operands")
	}
	cond, err := interp.Eval(args.Elements[0], env)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return interp.Eval(args.Elements[1], env)
	}
	if args.Len() == 3 {
		return interp.Eval(args.Elements[2], env)
	}
	return Null{}, nil
}

func sfCond(interp *Interpreter, args *List, env *Environment) (Value, error) {
	for _, clauseForm := range args.Elements {
		clause, ok := clauseForm.(*List)
		if !ok || clause.IsEmpty() {
			return nil, fmt.Errorf("cond: Expected non-empty clauses")
		}
		test, err := interp.Eval(clause.Elements[0], env)
		if err != nil {
			return nil, err
		}
		if isTruthy(test) {
			body := clause.Elements[1:]
			if len(body) == 0 {
				return test, nil
			}
			return interp.evalBody(body, env)
		}
	}
	return Null{}, nil
}

func sfCase(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 1 {
		return nil, fmt.Errorf("case: Expected a key and clauses")
	}
	key, err := interp.Eval(args.Elements[0], env)
	if err != nil {
		return nil, err
	}
	for _, clauseForm := range args.Elements[1:] {
		clause, ok := clauseForm.(*List)
		if !ok || clause.IsEmpty() {
			return nil, fmt.Errorf("case: Expected non-empty clauses")
		}
		head := clause.Elements[0]
		matched := false
		if sym, ok := head.(Symbol); ok && sym == Intern("otherwise") {
			matched = true
		} else if b, ok := head.(Bool); ok && bool(b) {
			// The reader turns a literal `t` atom into Bool(true) before
			// case ever sees it, so that is the case clause's "t" marker,
			// not a Symbol.
			matched = true
		} else if keys, ok := head.(*List); ok {
			for _, k := range keys.Elements {
				if valuesEqual(k, key) {
					matched = true
					break
				}
			}
		}
		if matched {
			return interp.evalBody(clause.Elements[1:], env)
		}
	}
	return Null{}, nil
}

func sfLet(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 1 {
		return nil, fmt.Errorf("let: Expected a binding list and a body")
	}
	bindingsForm, ok := args.Elements[0].(*List)
	if !ok {
		return nil, fmt.Errorf("let: Expected a binding list")
	}
	localEnv := NewEnvironment(env)
	for _, b := range bindingsForm.Elements {
		binding, ok := b.(*List)
		if !ok || binding.Len() != 2 {
			return nil, fmt.Errorf("let: Expected (symbol expr) bindings")
		}
		sym, err := wantSymbol(binding.Elements[0])
		if err != nil {
			return nil, fmt.Errorf("let: %s", err.Error())
		}
		val, err := interp.Eval(binding.Elements[1], localEnv)
		if err != nil {
			return nil, err
		}
		localEnv.Set(sym, val)
	}
	return interp.evalBody(args.Elements[1:], localEnv)
}

func sfProgn(interp *Interpreter, args *List, env *Environment) (Value, error) {
	return interp.evalBody(args.Elements, env)
}

func sfDo(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 2 {
		return nil, fmt.Errorf("do: Expected a variable-spec list, an end clause, and a body")
	}
	specsForm, ok := args.Elements[0].(*List)
	if !ok {
		return nil, fmt.Errorf("do: Expected a variable-spec list")
	}
	endForm, ok := args.Elements[1].(*List)
	if !ok || endForm.Len() < 1 {
		return nil, fmt.Errorf("do: Expected an (end-test result...) clause")
	}
	body := args.Elements[2:]

	type varSpec struct {
		name Symbol
		step Value // nil means "defaults to the variable itself"
	}
	var specs []varSpec
	loopEnv := NewEnvironment(env)
	for _, s := range specsForm.Elements {
		spec, ok := s.(*List)
		if !ok || spec.Len() < 2 || spec.Len() > 3 {
			return nil, fmt.Errorf("do: Expected (var init [step]) specs")
		}
		name, err := wantSymbol(spec.Elements[0])
		if err != nil {
			return nil, fmt.Errorf("do: %s", err.Error())
		}
		init, err := interp.Eval(spec.Elements[1], env)
		if err != nil {
			return nil, err
		}
		loopEnv.Set(name, init)
		var step Value
		if spec.Len() == 3 {
			step = spec.Elements[2]
		}
		specs = append(specs, varSpec{name: name, step: step})
	}

	for {
		endTest, err := interp.Eval(endForm.Elements[0], loopEnv)
		if err != nil {
			return nil, err
		}
		if isTruthy(endTest) {
			return interp.evalBody(endForm.Elements[1:], loopEnv)
		}

		if _, err := interp.evalBody(body, loopEnv); err != nil {
			return nil, err
		}

		next := make([]Value, len(specs))
		for i, spec := range specs {
			if spec.step == nil {
				cur, err := loopEnv.Get(spec.name)
				if err != nil {
					return nil, err
				}
				next[i] = cur
				continue
			}
			val, err := interp.Eval(spec.step, loopEnv)
			if err != nil {
				return nil, err
			}
			next[i] = val
		}
		for i, spec := range specs {
			loopEnv.Set(spec.name, next[i])
		}
	}
}

func sfDolist(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 1 {
		return nil, fmt.Errorf("dolist: Expected a (var list-expr [result]) spec and a body")
	}
	spec, ok := args.Elements[0].(*List)
	if !ok || spec.Len() < 2 || spec.Len() > 3 {
		return nil, fmt.Errorf("dolist: Expected (var list-expr [result])")
	}
	name, err := wantSymbol(spec.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("dolist: %s", err.Error())
	}
	listVal, err := interp.Eval(spec.Elements[1], env)
	if err != nil {
		return nil, err
	}
	list, ok := listVal.(*List)
	if !ok {
		return nil, fmt.Errorf("dolist: Expected a list expression")
	}

	loopEnv := NewEnvironment(env)
	body := args.Elements[1:]
	for _, elem := range list.Elements {
		loopEnv.Set(name, elem)
		if _, err := interp.evalBody(body, loopEnv); err != nil {
			return nil, err
		}
	}
	loopEnv.Set(name, NewList())

	if spec.Len() == 3 {
		return interp.Eval(spec.Elements[2], loopEnv)
	}
	return NewList(), nil
}

func sfDotimes(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() < 1 {
		return nil, fmt.Errorf("dotimes: Expected a (var count-expr [result]) spec and a body")
	}
	spec, ok := args.Elements[0].(*List)
	if !ok || spec.Len() < 2 || spec.Len() > 3 {
		return nil, fmt.Errorf("dotimes: Expected (var count-expr [result])")
	}
	name, err := wantSymbol(spec.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("dotimes: %s", err.Error())
	}
	countVal, err := interp.Eval(spec.Elements[1], env)
	if err != nil {
		return nil, err
	}
	count, ok := countVal.(Number)
	if !ok || count < 0 {
		return nil, fmt.Errorf("dotimes: count must be a non-negative number")
	}

	loopEnv := NewEnvironment(env)
	body := args.Elements[1:]
	n := int(count)
	for i := 0; i < n; i++ {
		loopEnv.Set(name, Number(i))
		if _, err := interp.evalBody(body, loopEnv); err != nil {
			return nil, err
		}
	}
	loopEnv.Set(name, count)

	if spec.Len() == 3 {
		return interp.Eval(spec.Elements[2], loopEnv)
	}
	return NewList(), nil
}

func sfEval(interp *Interpreter, args *List, env *Environment) (Value, error) {
	if args.Len() != 1 {
		return nil, fmt.Errorf("eval: Expected exactly 1 operand")
	}
	form, err := interp.Eval(args.Elements[0], env)
	if err != nil {
		return nil, err
	}
	return interp.Eval(form, env)
}

func sfAnd(interp *Interpreter, args *List, env *Environment) (Value, error) {
	for _, form := range args.Elements {
		val, err := interp.Eval(form, env)
		if err != nil {
			return nil, err
		}
		if !isTruthyAndOr(val) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func sfOr(interp *Interpreter, args *List, env *Environment) (Value, error) {
	for _, form := range args.Elements {
		val, err := interp.Eval(form, env)
		if err != nil {
			return nil, err
		}
		if isTruthyAndOr(val) {
			return val, nil
		}
	}
	return Bool(false), nil
}
