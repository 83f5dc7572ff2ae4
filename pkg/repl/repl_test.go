package repl

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Test helper to capture stdout
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestContainsExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: false,
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: false,
		},
		{
			name:     "simple expression",
			input:    "(+ 1 2)",
			expected: true,
		},
		{
			name:     "symbol only",
			input:    "foo",
			expected: true,
		},
		{
			name:     "number only",
			input:    "42",
			expected: true,
		},
		{
			name:     "string only",
			input:    `"hello"`,
			expected: true,
		},
		{
			name:     "comment only",
			input:    "; this is a comment",
			expected: false,
		},
		{
			name:     "multiple comment lines",
			input:    "; comment 1\n; comment 2\n; comment 3",
			expected: false,
		},
		{
			name:     "expression with comment",
			input:    "(+ 1 2) ; add numbers",
			expected: true,
		},
		{
			name:     "comment before expression",
			input:    "; comment\n(+ 1 2)",
			expected: true,
		},
		{
			name:     "expression in string with semicolon",
			input:    `"hello; world"`,
			expected: true,
		},
		{
			name:     "comment with semicolon in string",
			input:    `; "hello; world"`,
			expected: false,
		},
		{
			name:     "multiline with mixed comments and expressions",
			input:    "; comment\n(+ 1 2)\n; another comment",
			expected: true,
		},
		{
			name:     "escaped quote in string",
			input:    `"hello \"world\""`,
			expected: true,
		},
		{
			name:     "semicolon in escaped string should not be comment",
			input:    `"hello; \"escaped; quote\""`,
			expected: true,
		},
		{
			name:     "whitespace with comment",
			input:    "   ; just a comment  \n  ",
			expected: false,
		},
		{
			name:     "complex multiline expression",
			input:    "(defun factorial (n)\n  (if (= n 0)\n      1\n      (* n (factorial (- n 1)))))",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := containsExpression(tt.input)
			if result != tt.expected {
				t.Errorf("containsExpression(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestReadCompleteExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple expression",
			input:    "(+ 1 2)\n",
			expected: "(+ 1 2)",
		},
		{
			name:     "quit command",
			input:    "quit\n",
			expected: "quit",
		},
		{
			name:     "exit command",
			input:    "exit\n",
			expected: "exit",
		},
		{
			name:     "quit with whitespace",
			input:    "  quit  \n",
			expected: "quit",
		},
		{
			name:     "multiline expression",
			input:    "(+\n  1\n  2)\n",
			expected: "(+\n  1\n  2)",
		},
		{
			name:     "nested parentheses",
			input:    "(+ (* 2 3) (/ 8 4))\n",
			expected: "(+ (* 2 3) (/ 8 4))",
		},
		{
			name:     "string with parentheses",
			input:    `"hello (world)"` + "\n",
			expected: `"hello (world)"`,
		},
		{
			name:     "comment at end of line",
			input:    "(+ 1 2) ; add numbers\n",
			expected: "(+ 1 2) ; add numbers",
		},
		{
			name:     "multiline with comments",
			input:    "; calculate sum\n(+ 1 2)\n",
			expected: "; calculate sum\n(+ 1 2)",
		},
		{
			name:     "unbalanced opening parentheses",
			input:    "((+ 1 2\n  3)\n",
			expected: "((+ 1 2\n  3)",
		},
		{
			name:     "expression with escaped quote",
			input:    `"hello \"world\""` + "\n",
			expected: `"hello \"world\""`,
		},
		{
			name:     "multiple complete expressions",
			input:    "(+ 1 2)\n(* 3 4)\n",
			expected: "(+ 1 2)",
		},
		{
			name:     "empty lines before expression",
			input:    "\n\n(+ 1 2)\n",
			expected: "\n\n(+ 1 2)",
		},
		{
			name:     "comment-only lines",
			input:    "; comment 1\n; comment 2\n",
			expected: "; comment 1\n; comment 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			result := readCompleteExpression(scanner)
			if result != tt.expected {
				t.Errorf("readCompleteExpression() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestReadCompleteExpressionUnbalancedParens(t *testing.T) {
	// Test case for unbalanced closing parentheses
	input := "(+ 1 2))\n"
	scanner := bufio.NewScanner(strings.NewReader(input))
	result := readCompleteExpression(scanner)
	expected := "(+ 1 2))"
	if result != expected {
		t.Errorf("readCompleteExpression with unbalanced closing parens = %q, expected %q", result, expected)
	}
}

func TestREPLFlow(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOutput []string // Substrings that should appear in output
	}{
		{
			name:  "simple expression evaluation",
			input: "(+ 1 2)\nquit\n",
			expectedOutput: []string{
				"Welcome to Go Lisp!",
				"lisp> ",
				"=> 3",
				"lisp> ",
				"Exiting Lisp interpreter",
			},
		},
		{
			name:  "error handling",
			input: "(undefined-function)\nquit\n",
			expectedOutput: []string{
				"Welcome to Go Lisp!",
				"lisp> ",
				"Undefined Symbol:",
				"lisp> ",
				"Exiting Lisp interpreter",
			},
		},
		{
			name:  "multiline expression",
			input: "(+\n  1\n  2)\nquit\n",
			expectedOutput: []string{
				"Welcome to Go Lisp!",
				"lisp> ",
				"...   ",
				"...   ",
				"=> 3",
				"lisp> ",
				"Exiting Lisp interpreter",
			},
		},
		{
			name:  "empty input handling",
			input: "\n\n  \n(+ 1 1)\nquit\n",
			expectedOutput: []string{
				"Welcome to Go Lisp!",
				"lisp> ",
				"lisp> ",
				"lisp> ",
				"lisp> ",
				"=> 2",
				"lisp> ",
				"Exiting Lisp interpreter",
			},
		},
		{
			name:  "exit command",
			input: "exit\n",
			expectedOutput: []string{
				"Welcome to Go Lisp!",
				"lisp> ",
				"Exiting Lisp interpreter",
			},
		},
		{
			name:  "print statement output precedes result",
			input: `(print "hello")` + "\nquit\n",
			expectedOutput: []string{
				"hello",
				"=> hello",
				"Exiting Lisp interpreter",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession()
			scanner := bufio.NewScanner(strings.NewReader(tt.input))

			output := captureOutput(func() {
				REPLWithOptions(session, scanner, false) // Disable colors for tests
			})

			for _, expected := range tt.expectedOutput {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, but got:\n%s", expected, output)
				}
			}
		})
	}
}

func TestPrintWelcomeMessage(t *testing.T) {
	output := captureOutput(func() {
		printWelcomeMessageNoColor()
	})

	expectedParts := []string{
		"Welcome to Go Lisp!",
		"Type expressions to evaluate them",
		"Multi-line expressions are supported",
	}

	for _, part := range expectedParts {
		if !strings.Contains(output, part) {
			t.Errorf("Expected welcome message to contain %q, but got:\n%s", part, output)
		}
	}
}

func TestPrintGoodbyeMessage(t *testing.T) {
	output := captureOutput(func() {
		printGoodbyeMessageNoColor()
	})

	expected := "Exiting Lisp interpreter"
	if !strings.Contains(output, expected) {
		t.Errorf("Expected goodbye message to contain %q, but got:\n%s", expected, output)
	}
}

// TestSessionPersistsDefinitions verifies a defun in one Eval call is
// visible to a later Eval call on the same Session.
func TestSessionPersistsDefinitions(t *testing.T) {
	session := NewSession()

	if _, _, err := session.Eval("(defun square (x) (* x x))"); err != nil {
		t.Fatalf("unexpected error defining square: %v", err)
	}

	result, _, err := session.Eval("(square 5)")
	if err != nil {
		t.Fatalf("unexpected error calling square: %v", err)
	}
	if result.String() != "25" {
		t.Errorf("expected 25, got %s", result.String())
	}
}

// TestSessionOutputOnlyReturnsNewLines verifies each Eval call returns
// only the output lines it produced, not lines from a prior call.
func TestSessionOutputOnlyReturnsNewLines(t *testing.T) {
	session := NewSession()

	_, lines, err := session.Eval(`(print "one")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "one" {
		t.Errorf("expected [\"one\"], got %v", lines)
	}

	_, lines, err = session.Eval(`(print "two")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "two" {
		t.Errorf("expected [\"two\"], got %v", lines)
	}
}

// Test edge cases for string and comment parsing
func TestStringAndCommentParsing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "string with embedded semicolon and quotes",
			input:    `"test; \"quoted; text\""`,
			expected: true,
		},
		{
			name:     "nested escaped quotes",
			input:    `"outer \"inner \\\"nested\\\" inner\" outer"`,
			expected: true,
		},
		{
			name:     "backslash at end of string",
			input:    `"test\\"`,
			expected: true,
		},
		{
			name:     "comment after string with semicolon",
			input:    `"test;" ; this is a comment`,
			expected: true,
		},
		{
			name:     "multiple strings and comments",
			input:    `"first;" "second;" ; comment`,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := containsExpression(tt.input)
			if result != tt.expected {
				t.Errorf("containsExpression(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

// Benchmark tests
func BenchmarkContainsExpression(b *testing.B) {
	input := `; This is a comment
(defun factorial (n)
  (if (= n 0)
      1
      (* n (factorial (- n 1)))))
; Another comment`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		containsExpression(input)
	}
}

func BenchmarkReadCompleteExpression(b *testing.B) {
	input := "(defun factorial (n)\n  (if (= n 0)\n      1\n      (* n (factorial (- n 1)))))\n"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scanner := bufio.NewScanner(strings.NewReader(input))
		readCompleteExpression(scanner)
	}
}
