package lisp

import "testing"

func TestArithmeticLaws(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		expected string
	}{
		{"commutativity", "(print (= (+ 2 3) (+ 3 2)))", "true"},
		{"additive identity", "(print (= (+ 0 7) 7))", "true"},
		{"multiplicative identity", "(print (= (* 1 7) 7))", "true"},
		{"unary minus negates", "(print (- 5))", "-5"},
		{"unary slash reciprocates", "(print (/ 4))", "0.25"},
		{"mod", "(print (mod 7 3))", "1"},
		{"max", "(print (max 1 9 3))", "9"},
		{"min", "(print (min 1 9 3))", "1"},
		{"abs", "(print (abs -4))", "4"},
		{"sqrt", "(print (sqrt 9))", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEval(t, tt.program)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := Evaluate("(sqrt -1)", nil)
	if err == nil {
		t.Fatalf("expected an error for sqrt of a negative number")
	}

	_, err = Evaluate("(/ 1 0)", nil)
	if err == nil {
		t.Fatalf("expected an error for division by zero")
	}
}

func TestListLaws(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		expected string
	}{
		{"car of cons", "(print (car (cons 1 (list 2 3))))", "1"},
		{"cdr of cons", "(print (cdr (cons 1 (list 2 3))))", "(2 3)"},
		{"reverse involution", "(print (equal (reverse (reverse (list 1 2 3))) (list 1 2 3)))", "true"},
		{"nth bounds checked ok", "(print (nth 1 (list 1 2 3)))", "2"},
		{"append concatenates", "(print (append (list 1 2) (list 3 4)))", "(1 2 3 4)"},
		{"second through fifth", "(print (list (second (list 1 2 3 4 5)) (third (list 1 2 3 4 5)) (fourth (list 1 2 3 4 5)) (fifth (list 1 2 3 4 5))))", "(2 3 4 5)"},
		{"subseq slices", "(print (subseq (list 1 2 3 4 5) 1 3))", "(2 3)"},
		{"member finds sublist", "(print (member 2 (list 1 2 3)))", "(2 3)"},
		{"member misses returns false", "(print (member 9 (list 1 2 3)))", "false"},
		{"mapcar stops at shortest list", "(print (mapcar (lambda (a b) (+ a b)) (list 1 2 3) (list 10 20)))", "(11 22)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEval(t, tt.program)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestListErrors(t *testing.T) {
	_, err := Evaluate("(nth 5 (list 1 2))", nil)
	if err == nil {
		t.Fatalf("expected an out-of-bounds error")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		expected string
	}{
		{"listp true for list", "(print (listp (list 1)))", "true"},
		{"listp false for number", "(print (listp 1))", "false"},
		{"null true for empty list", "(print (null (list)))", "true"},
		{"null true for nil", "(print (null nil))", "true"},
		{"zerop", "(print (zerop 0))", "true"},
		{"plusp", "(print (plusp 1))", "true"},
		{"minusp", "(print (minusp -1))", "true"},
		{"equal structural", "(print (equal (list 1 (list 2)) (list 1 (list 2))))", "true"},
		{"eq identity differs from equal for lists", "(print (eq (list 1) (list 1)))", "false"},
		{"not", "(print (not nil))", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEval(t, tt.program)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatAndPrint(t *testing.T) {
	got := mustEval(t, `(print (format t "~a plus ~a" 1 2))`)
	// format with stream t emits its line, then print emits the returned
	// string again.
	if got != "~a plus ~a\n~a plus ~a" {
		t.Errorf("unexpected format output without %%s/%%d directives: %q", got)
	}

	got = mustEval(t, `(print (format t "%s and %d" "x" 2))`)
	if got != "x and 2\nx and 2" {
		t.Errorf("expected %q, got %q", "x and 2\nx and 2", got)
	}

	got = mustEval(t, `(print (format nil "%s" "hidden"))`)
	if got != "NIL" {
		t.Errorf("expected format with non-t stream to return NIL without emitting, got %q", got)
	}
}
