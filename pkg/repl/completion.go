// Package repl provides completion functionality for the REPL
package repl

import (
	"sort"
	"strings"

	"github.com/apavazza/lisp-interpreter/pkg/lisp"
)

// CompletionProvider provides tab completion functionality for the REPL
type CompletionProvider struct {
	env *lisp.Environment
}

// NewCompletionProvider creates a new completion provider
func NewCompletionProvider(env *lisp.Environment) *CompletionProvider {
	return &CompletionProvider{env: env}
}

// CompletionContext represents the context where completion is happening
type CompletionContext struct {
	inFunctionPosition bool // true if we're in a position where a function name is expected
	afterOpenParen     bool // true if we're right after an opening parenthesis
	parenDepth         int  // current parenthesis nesting depth
}

// GetCompletions returns a list of possible completions for the given prefix
func (cp *CompletionProvider) GetCompletions(line string, pos int) []string {
	prefix := cp.extractCurrentWord(line, pos)
	context := cp.analyzeContext(line, pos)

	// Only provide completions if we're in a function position (after '(')
	if !context.inFunctionPosition {
		return nil
	}

	var completions []string

	for _, name := range cp.getBuiltinFunctions() {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, name)
		}
	}

	for _, name := range cp.getBoundSymbols() {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, name)
		}
	}

	completions = cp.removeDuplicates(completions)
	sort.Strings(completions)

	return completions
}

// extractCurrentWord extracts the word being completed from the input line
func (cp *CompletionProvider) extractCurrentWord(line string, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}

	start := pos
	for start > 0 && cp.isSymbolChar(rune(line[start-1])) {
		start--
	}

	end := pos
	for end < len(line) && cp.isSymbolChar(rune(line[end])) {
		end++
	}

	return line[start:end]
}

// isSymbolChar checks if a character can be part of a Lisp symbol
func (cp *CompletionProvider) isSymbolChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_' || ch == '?' || ch == '!' ||
		ch == '+' || ch == '*' || ch == '/' || ch == '=' ||
		ch == '<' || ch == '>' || ch == '.' || ch == '%'
}

// getBuiltinFunctions returns the special forms and built-in operator
// names this dialect recognizes.
func (cp *CompletionProvider) getBuiltinFunctions() []string {
	return []string{
		"quote", "defun", "lambda", "setq", "setf", "if", "cond", "case",
		"let", "begin", "progn", "do", "dolist", "dotimes", "eval", "and", "or",
		"+", "-", "*", "/", "mod", ">", "<", ">=", "<=", "=", "max", "min", "abs", "sqrt",
		"car", "first", "cdr", "rest", "cons", "list", "append", "reverse",
		"nth", "second", "third", "fourth", "fifth", "cadr", "caddr", "cadddr",
		"member", "subseq", "funcall", "mapcar",
		"listp", "list?", "atom", "null", "null?", "numberp", "number?",
		"zerop", "plusp", "minusp", "symbolp", "symbol?", "eq", "equal", "not",
		"print", "prin1", "format", "read-line", "exit", "bye",
		"nil", "t",
	}
}

// getBoundSymbols walks the environment chain collecting every bound name,
// user-defined functions and variables alike.
func (cp *CompletionProvider) getBoundSymbols() []string {
	var symbols []string
	for env := cp.env; env != nil; env = env.Parent() {
		for sym := range env.Bindings() {
			symbols = append(symbols, string(sym))
		}
	}
	return symbols
}

// analyzeContext analyzes the completion context based on the input line and position
func (cp *CompletionProvider) analyzeContext(line string, pos int) CompletionContext {
	context := CompletionContext{}

	if pos > len(line) {
		pos = len(line)
	}

	parenCount := 0
	inString := false
	escaped := false

	for i := 0; i < pos; i++ {
		ch := rune(line[i])

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '(':
			if !inString {
				parenCount++
			}
		case ')':
			if !inString {
				parenCount--
			}
		}
	}

	context.parenDepth = parenCount

	wordStart := pos
	for wordStart > 0 && cp.isSymbolChar(rune(line[wordStart-1])) {
		wordStart--
	}

	searchPos := wordStart - 1
	for searchPos >= 0 && (line[searchPos] == ' ' || line[searchPos] == '\t') {
		searchPos--
	}

	if searchPos >= 0 && line[searchPos] == '(' {
		context.afterOpenParen = (wordStart == searchPos+1)
		context.inFunctionPosition = true
		return context
	}

	lastParen := -1
	inStr := false
	esc := false

	for i := 0; i < wordStart; i++ {
		ch := rune(line[i])

		if esc {
			esc = false
			continue
		}

		switch ch {
		case '\\':
			if inStr {
				esc = true
			}
		case '"':
			inStr = !inStr
		case '(':
			if !inStr {
				lastParen = i
			}
		case ')':
			if !inStr {
				lastParen = -1
			}
		}
	}

	if lastParen >= 0 {
		symbolCount := 0
		tempPos := lastParen + 1

		for tempPos < wordStart {
			for tempPos < wordStart && (line[tempPos] == ' ' || line[tempPos] == '\t') {
				tempPos++
			}

			if tempPos < wordStart {
				symbolCount++
				for tempPos < wordStart && cp.isSymbolChar(rune(line[tempPos])) {
					tempPos++
				}
			}
		}

		context.inFunctionPosition = (symbolCount == 0)
	}

	return context
}

// removeDuplicates removes duplicate strings from a slice
func (cp *CompletionProvider) removeDuplicates(input []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, item := range input {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}

// lispCompleter implements readline.AutoCompleter for Lisp-aware completion
type lispCompleter struct {
	provider *CompletionProvider
}

// NewLispCompleter creates a new Lisp-aware completer
func NewLispCompleter(provider *CompletionProvider) *lispCompleter {
	return &lispCompleter{provider: provider}
}

// Do implements the readline.AutoCompleter interface
func (lc *lispCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line)

	completions := lc.provider.GetCompletions(lineStr, pos)
	if len(completions) == 0 {
		return nil, 0
	}

	currentWord := lc.provider.extractCurrentWord(lineStr, pos)
	replaceLength := len(currentWord)

	var suggestions [][]rune
	for _, completion := range completions {
		if len(completion) > len(currentWord) {
			suggestions = append(suggestions, []rune(completion[len(currentWord):]))
		} else if completion == currentWord {
			suggestions = append(suggestions, []rune(completion))
		}
	}

	return suggestions, replaceLength
}
