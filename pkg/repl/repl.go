// Package repl implements the interactive Read-Eval-Print Loop around the
// pkg/lisp interpreter core.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/apavazza/lisp-interpreter/pkg/lisp"
)

// Session wraps one long-lived *lisp.Interpreter so that definitions from
// one input persist into the next, the way a REPL session is expected to
// behave; pkg/lisp.Evaluate itself builds a fresh interpreter per call.
type Session struct {
	interp    *lisp.Interpreter
	outputPos int
}

// NewSession starts a fresh interpreter session.
func NewSession() *Session {
	return &Session{interp: lisp.NewInterpreter()}
}

// Eval lexes, reads and evaluates every top-level form in input against
// the session's persistent root environment. It returns the last form's
// value and any output lines emitted by this call (not lines from earlier
// calls, which were already returned).
func (s *Session) Eval(input string) (lisp.Value, []string, error) {
	s.outputPos = len(s.interp.Output)
	tokens, err := lisp.NewLexer(input).Tokenize()
	if err != nil {
		return nil, nil, err
	}
	if len(tokens) == 0 {
		return lisp.Null{}, nil, nil
	}

	reader := lisp.NewReader(tokens)
	var result lisp.Value = lisp.Null{}
	for !reader.AtEOF() {
		form, err := reader.Read()
		if err != nil {
			return nil, nil, err
		}
		result, err = s.interp.Eval(form, s.interp.Root)
		if err != nil {
			return nil, nil, err
		}
	}

	newLines := s.interp.Output[s.outputPos:]
	s.outputPos = len(s.interp.Output)
	return result, newLines, nil
}

// REPL starts a Read-Eval-Print Loop for the Lisp interpreter.
func REPL(session *Session, scanner *bufio.Scanner) {
	REPLWithOptions(session, scanner, true)
}

// REPLWithOptions starts a REPL with configurable options.
func REPLWithOptions(session *Session, scanner *bufio.Scanner, enableColors bool) {
	if scanner == nil {
		scanner = bufio.NewScanner(os.Stdin)
	}

	if !enableColors {
		color.NoColor = true
		printWelcomeMessageNoColor()
	} else {
		printWelcomeMessage()
	}

	errorFormatter := NewErrorFormatter()

	for {
		input := readCompleteExpressionWithColors(scanner, enableColors)
		if input == "" {
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		result, lines, err := session.Eval(input)
		if err != nil {
			fmt.Println(errorFormatter.FormatErrorWithSmartSuggestion(err))
			continue
		}

		for _, line := range lines {
			fmt.Println(line)
		}
		resultColor := color.New(color.FgGreen)
		fmt.Printf("=> %s\n", resultColor.Sprint(result.String()))
	}

	if enableColors {
		printGoodbyeMessage()
	} else {
		printGoodbyeMessageNoColor()
	}
}

// REPLWithCompletion starts a REPL with tab completion support.
func REPLWithCompletion(session *Session, enableColors bool) error {
	completionProvider := NewCompletionProvider(session.interp.Root)
	completer := &lispCompleter{provider: completionProvider}

	config := &readline.Config{
		Prompt:          "lisp> ",
		HistoryFile:     "/tmp/lisp_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		fmt.Printf("Warning: Tab completion unavailable (%v). Using basic REPL.\n", err)
		REPLWithOptions(session, nil, enableColors)
		return nil
	}
	defer rl.Close()

	if !enableColors {
		color.NoColor = true
		printWelcomeMessageNoColor()
	} else {
		printWelcomeMessage()
	}

	if enableColors {
		instructionColor := color.New(color.FgYellow)
		instructionColor.Println("Tab completion is enabled! Press TAB to see available operators.")
		fmt.Println()
	} else {
		fmt.Println("Tab completion is enabled! Press TAB to see available operators.")
		fmt.Println()
	}

	errorFormatter := NewErrorFormatter()

	for {
		input, err := readCompleteExpressionWithReadline(rl, enableColors)
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Printf("Input error: %v\n", err)
			continue
		}

		if input == "" {
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		result, lines, err := session.Eval(input)
		if err != nil {
			fmt.Println(errorFormatter.FormatErrorWithSmartSuggestion(err))
			continue
		}

		for _, line := range lines {
			fmt.Println(line)
		}
		if enableColors {
			resultColor := color.New(color.FgGreen)
			fmt.Printf("=> %s\n", resultColor.Sprint(result.String()))
		} else {
			fmt.Printf("=> %s\n", result.String())
		}
	}

	if enableColors {
		printGoodbyeMessage()
	} else {
		printGoodbyeMessageNoColor()
	}

	return nil
}

// printWelcomeMessage prints a welcome message and instructions for the REPL
func printWelcomeMessage() {
	titleColor := color.New(color.FgCyan, color.Bold)
	instructionColor := color.New(color.FgYellow)

	titleColor.Println("Welcome to Go Lisp!")
	instructionColor.Println("Type expressions to evaluate them, or 'quit' to exit.")
	instructionColor.Println("Multi-line expressions are supported - the REPL will wait for balanced parentheses.")
	fmt.Println()
	instructionColor.Println("Errors are color-coded by type with helpful suggestions.")
	fmt.Println()
}

// printGoodbyeMessage prints a goodbye message when the REPL ends
func printGoodbyeMessage() {
	goodbyeColor := color.New(color.FgMagenta, color.Bold)
	goodbyeColor.Println("Exiting Lisp interpreter")
}

// printWelcomeMessageNoColor prints welcome message without colors (for testing)
func printWelcomeMessageNoColor() {
	fmt.Println("Welcome to Go Lisp!")
	fmt.Println("Type expressions to evaluate them, or 'quit' to exit.")
	fmt.Println("Multi-line expressions are supported - the REPL will wait for balanced parentheses.")
	fmt.Println()
	fmt.Println("Errors are color-coded by type with helpful suggestions.")
	fmt.Println()
}

// printGoodbyeMessageNoColor prints goodbye message without colors (for testing)
func printGoodbyeMessageNoColor() {
	fmt.Println("Exiting Lisp interpreter")
}

// readCompleteExpression reads input until we have a complete s-expression
// with balanced parentheses, or until the user enters a simple command
func readCompleteExpression(scanner *bufio.Scanner) string {
	return readCompleteExpressionWithColors(scanner, true)
}

// readCompleteExpressionWithColors reads input with optional colored prompts
func readCompleteExpressionWithColors(scanner *bufio.Scanner, enableColors bool) string {
	var lines []string
	parenCount := 0
	inString := false
	escaped := false
	isFirstLine := true

	primaryPromptColor := color.New(color.FgBlue, color.Bold)
	continuationPromptColor := color.New(color.FgHiBlack)

	for {
		if isFirstLine {
			if enableColors {
				primaryPromptColor.Print("lisp> ")
			} else {
				fmt.Print("lisp> ")
			}
			isFirstLine = false
		} else {
			if enableColors {
				continuationPromptColor.Print("...   ")
			} else {
				fmt.Print("...   ")
			}
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Printf("Scanner error: %v\n", err)
			}
			return strings.Join(lines, "\n")
		}

		line := scanner.Text()
		lines = append(lines, line)

		trimmed := strings.TrimSpace(line)
		if len(lines) == 1 && (trimmed == "quit" || trimmed == "exit") {
			return trimmed
		}

	scanChars:
		for _, ch := range line {
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
			case ';':
				if !inString {
					break scanChars
				}
			}
		}

		if parenCount == 0 && containsExpression(strings.Join(lines, "\n")) {
			break
		}

		if parenCount < 0 {
			break
		}
	}

	return strings.Join(lines, "\n")
}

// readCompleteExpressionWithReadline reads input using readline until we have a complete s-expression
func readCompleteExpressionWithReadline(rl *readline.Instance, enableColors bool) (string, error) {
	var lines []string
	parenCount := 0
	inString := false
	escaped := false
	isFirstLine := true

	primaryPromptColor := color.New(color.FgBlue, color.Bold)
	continuationPromptColor := color.New(color.FgHiBlack)

	for {
		var prompt string
		if isFirstLine {
			if enableColors {
				prompt = primaryPromptColor.Sprint("lisp> ")
			} else {
				prompt = "lisp> "
			}
			isFirstLine = false
		} else {
			if enableColors {
				prompt = continuationPromptColor.Sprint("...   ")
			} else {
				prompt = "...   "
			}
		}

		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if err != nil {
			return strings.Join(lines, "\n"), err
		}

		lines = append(lines, line)

		trimmed := strings.TrimSpace(line)
		if len(lines) == 1 && (trimmed == "quit" || trimmed == "exit") {
			return trimmed, nil
		}

	scanChars:
		for _, ch := range line {
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
			case ';':
				if !inString {
					break scanChars
				}
			}
		}

		if parenCount == 0 && containsExpression(strings.Join(lines, "\n")) {
			break
		}

		if parenCount < 0 {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// containsExpression checks if the input contains at least one meaningful expression
func containsExpression(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}

	lines := strings.Split(trimmed, "\n")
	for _, line := range lines {
		inString := false
		escaped := false
	findComment:
		for i, ch := range line {
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
			case ';':
				if !inString {
					line = line[:i]
					break findComment
				}
			}
		}

		if strings.TrimSpace(line) != "" {
			return true
		}
	}

	return false
}
