package lisp

import "strings"

// Evaluate runs one program from source text to final output text.
// inputProvider backs the `read-line` builtin; pass nil if the program
// never calls it. On any lex, read or eval error, the output buffer
// produced so far is discarded and only the error is returned.
func Evaluate(program string, inputProvider func() (string, bool)) (string, error) {
	lexer := NewLexer(program)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}

	reader := NewReader(tokens)
	interp := NewInterpreter()
	interp.InputProvider = inputProvider

	for !reader.AtEOF() {
		form, err := reader.Read()
		if err != nil {
			return "", err
		}
		if _, err := interp.Eval(form, interp.Root); err != nil {
			return "", err
		}
	}

	return strings.Join(interp.Output, "\n"), nil
}
