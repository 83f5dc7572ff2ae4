package lisp

import "testing"

func TestLexerTokenize(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []TokenKind
	}{
		{"empty", "", nil},
		{"parens", "()", []TokenKind{TokenLParen, TokenRParen}},
		{"quote", "'foo", []TokenKind{TokenQuote, TokenAtom}},
		{"string", `"hi"`, []TokenKind{TokenString}},
		{"comment skipped", "; comment\n42", []TokenKind{TokenAtom}},
		{
			"nested list",
			"(+ 1 (* 2 3))",
			[]TokenKind{TokenLParen, TokenAtom, TokenAtom, TokenLParen, TokenAtom, TokenAtom, TokenAtom, TokenRParen, TokenRParen},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.src).Tokenize()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d (%v)", len(tt.expected), len(tokens), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.expected[i] {
					t.Errorf("token %d: expected kind %v, got %v", i, tt.expected[i], tok.Kind)
				}
			}
		})
	}
}

func TestLexerStringEscape(t *testing.T) {
	tokens, err := NewLexer(`"a\"b"`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Text != `a"b` {
		t.Errorf("expected %q, got %q", `a"b`, tokens[0].Text)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := NewLexer(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "Unterminated string literal at line 1, column 1" {
		t.Errorf("unexpected error message: %v", err)
	}
}
