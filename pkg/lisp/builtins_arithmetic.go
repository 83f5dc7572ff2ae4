package lisp

import (
	"fmt"
	"math"
)

func numbers(args []Value) ([]Number, error) {
	nums := make([]Number, len(args))
	for i, a := range args {
		n, ok := a.(Number)
		if !ok {
			return nil, fmt.Errorf("All arguments must be numbers")
		}
		nums[i] = n
	}
	return nums, nil
}

func installArithmeticBuiltins(root *Environment) {
	define := func(name string, fn func(args []Value, interp *Interpreter) (Value, error)) {
		root.Set(Intern(name), &Builtin{Name: name, Fn: fn})
	}

	define("+", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		var sum Number
		for _, n := range nums {
			sum += n
		}
		return sum, nil
	})

	define("*", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		product := Number(1)
		for _, n := range nums {
			product *= n
		}
		return product, nil
	})

	define("-", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("Expected at least 1 argument")
		}
		if len(nums) == 1 {
			return -nums[0], nil
		}
		result := nums[0]
		for _, n := range nums[1:] {
			result -= n
		}
		return result, nil
	})

	define("/", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("Expected at least 1 argument")
		}
		if len(nums) == 1 {
			if nums[0] == 0 {
				return nil, fmt.Errorf("Division by zero")
			}
			return 1 / nums[0], nil
		}
		result := nums[0]
		for _, n := range nums[1:] {
			if n == 0 {
				return nil, fmt.Errorf("Division by zero")
			}
			result /= n
		}
		return result, nil
	})

	define("mod", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) != 2 {
			return nil, fmt.Errorf("Expected exactly 2 arguments")
		}
		if nums[1] == 0 {
			return nil, fmt.Errorf("Division by zero")
		}
		return Number(math.Mod(float64(nums[0]), float64(nums[1]))), nil
	})

	defineComparison := func(name string, cmp func(a, b Number) bool) {
		define(name, func(args []Value, interp *Interpreter) (Value, error) {
			nums, err := numbers(args)
			if err != nil {
				return nil, err
			}
			if len(nums) != 2 {
				return nil, fmt.Errorf("Expected exactly 2 arguments")
			}
			return Bool(cmp(nums[0], nums[1])), nil
		})
	}
	defineComparison(">", func(a, b Number) bool { return a > b })
	defineComparison("<", func(a, b Number) bool { return a < b })
	defineComparison(">=", func(a, b Number) bool { return a >= b })
	defineComparison("<=", func(a, b Number) bool { return a <= b })
	defineComparison("=", func(a, b Number) bool { return a == b })

	define("max", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("Expected at least 1 argument")
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n > best {
				best = n
			}
		}
		return best, nil
	})

	define("min", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, fmt.Errorf("Expected at least 1 argument")
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if n < best {
				best = n
			}
		}
		return best, nil
	})

	define("abs", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		return Number(math.Abs(float64(nums[0]))), nil
	})

	define("sqrt", func(args []Value, interp *Interpreter) (Value, error) {
		nums, err := numbers(args)
		if err != nil {
			return nil, err
		}
		if len(nums) != 1 {
			return nil, fmt.Errorf("Expected exactly 1 argument")
		}
		if nums[0] < 0 {
			return nil, fmt.Errorf("Expected a non-negative number")
		}
		return Number(math.Sqrt(float64(nums[0]))), nil
	})
}
