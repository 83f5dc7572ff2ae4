package lisp

import "testing"

func readOne(t *testing.T, src string) Value {
	t.Helper()
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	form, err := NewReader(tokens).Read()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	return form
}

func TestReaderAtoms(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"42", "42"},
		{"3.5", "3.5"},
		{"nil", "NIL"},
		{"t", "true"},
		{"foo", "foo"},
		{`"hello"`, "hello"},
		{"(1 2 3)", "(1 2 3)"},
		{"'foo", "(quote foo)"},
		{"()", "NIL"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			form := readOne(t, tt.src)
			if form.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, form.String())
			}
		})
	}
}

func TestReaderMissingClosingParen(t *testing.T) {
	tokens, err := NewLexer("(1 2").Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = NewReader(tokens).Read()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "Missing closing parenthesis at line 1, column 1" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestReaderUnexpectedClosingParen(t *testing.T) {
	tokens, err := NewLexer(")").Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = NewReader(tokens).Read()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "Unexpected closing parenthesis at line 1, column 1" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestReaderUnexpectedEOF(t *testing.T) {
	_, err := NewReader(nil).Read()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "Unexpected EOF" {
		t.Errorf("unexpected error message: %v", err)
	}
}
