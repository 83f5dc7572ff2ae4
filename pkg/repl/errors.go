package repl

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/apavazza/lisp-interpreter/pkg/lisp"
)

// ErrorType represents different categories of errors for color coding
type ErrorType int

const (
	ErrorTypeSyntax ErrorType = iota
	ErrorTypeRuntime
	ErrorTypeUndefined
	ErrorTypeTypeError
	ErrorTypeGeneral
)

// ErrorFormatter handles colored error output for the REPL
type ErrorFormatter struct {
	syntaxColor    *color.Color
	runtimeColor   *color.Color
	undefinedColor *color.Color
	typeColor      *color.Color
	generalColor   *color.Color
	prefixColor    *color.Color
}

// NewErrorFormatter creates a new error formatter with predefined colors
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{
		syntaxColor:    color.New(color.FgRed, color.Bold),     // Bright red for syntax errors
		runtimeColor:   color.New(color.FgMagenta, color.Bold), // Magenta for runtime errors
		undefinedColor: color.New(color.FgYellow, color.Bold),  // Yellow for undefined symbols
		typeColor:      color.New(color.FgCyan, color.Bold),    // Cyan for type errors
		generalColor:   color.New(color.FgWhite, color.Bold),   // White for general errors
		prefixColor:    color.New(color.FgRed, color.Bold),     // Red for "Error:" prefix
	}
}

// categorizeError determines the error type based on the error message
func (ef *ErrorFormatter) categorizeError(errMsg string) ErrorType {
	errLower := strings.ToLower(errMsg)

	// Syntax errors: raised by the lexer/reader
	if strings.Contains(errLower, "unterminated string literal") ||
		strings.Contains(errLower, "missing closing parenthesis") ||
		strings.Contains(errLower, "unexpected closing parenthesis") ||
		strings.Contains(errLower, "unexpected eof") {
		return ErrorTypeSyntax
	}

	// Undefined symbol errors
	if strings.Contains(errLower, "unknown symbol") {
		return ErrorTypeUndefined
	}

	// An empty list where elements are needed is a runtime error, even
	// though its message ("Expected a non-empty list") reads like a type error
	if strings.Contains(errLower, "non-empty list") {
		return ErrorTypeRuntime
	}

	// Type errors
	if strings.Contains(errLower, "expected a") ||
		strings.Contains(errLower, "must be a") ||
		strings.Contains(errLower, "not a procedure") ||
		strings.Contains(errLower, "expected every argument") ||
		strings.Contains(errLower, "must be numbers") {
		return ErrorTypeTypeError
	}

	// Runtime errors
	if strings.Contains(errLower, "division by zero") ||
		strings.Contains(errLower, "out of bounds") ||
		strings.Contains(errLower, "non-empty list") ||
		strings.Contains(errLower, "argument") {
		return ErrorTypeRuntime
	}

	return ErrorTypeGeneral
}

// getColorForErrorType returns the appropriate color for an error type
func (ef *ErrorFormatter) getColorForErrorType(errorType ErrorType) *color.Color {
	switch errorType {
	case ErrorTypeSyntax:
		return ef.syntaxColor
	case ErrorTypeRuntime:
		return ef.runtimeColor
	case ErrorTypeUndefined:
		return ef.undefinedColor
	case ErrorTypeTypeError:
		return ef.typeColor
	default:
		return ef.generalColor
	}
}

// getErrorTypeLabel returns a human-readable label for the error type
func (ef *ErrorFormatter) getErrorTypeLabel(errorType ErrorType) string {
	switch errorType {
	case ErrorTypeSyntax:
		return "Syntax Error"
	case ErrorTypeRuntime:
		return "Runtime Error"
	case ErrorTypeUndefined:
		return "Undefined Symbol"
	case ErrorTypeTypeError:
		return "Type Error"
	default:
		return "Error"
	}
}

// FormatError formats an error with appropriate colors and categorization
func (ef *ErrorFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	errorType := ef.categorizeError(errMsg)
	errorColor := ef.getColorForErrorType(errorType)
	errorLabel := ef.getErrorTypeLabel(errorType)

	// Check if this is a positional error raised by the lexer/reader
	var readErr *lisp.ReadError
	if errors.As(err, &readErr) && readErr.Location.Line > 0 {
		prefix := ef.prefixColor.Sprintf("%s:", errorLabel)
		locationColor := color.New(color.FgHiBlue, color.Bold)
		location := locationColor.Sprintf(" (line %d, column %d)", readErr.Location.Line, readErr.Location.Column)
		message := errorColor.Sprintf(" %s", readErr.Message)
		return prefix + location + message
	}

	// Check if the error message already contains line information
	if strings.Contains(errMsg, "line ") && strings.Contains(errMsg, "column ") {
		// Extract and format existing line/column information
		prefix := ef.prefixColor.Sprintf("%s:", errorLabel)
		message := errorColor.Sprintf(" %s", errMsg)
		return prefix + message
	}

	// Standard error formatting
	prefix := ef.prefixColor.Sprintf("%s:", errorLabel)
	message := errorColor.Sprintf(" %s", errMsg)

	return prefix + message
}

// FormatErrorWithSuggestion formats an error with a suggestion
func (ef *ErrorFormatter) FormatErrorWithSuggestion(err error, suggestion string) string {
	if err == nil {
		return ""
	}

	baseError := ef.FormatError(err)
	if suggestion == "" {
		return baseError
	}

	suggestionColor := color.New(color.FgHiBlack, color.Italic)
	suggestionText := suggestionColor.Sprintf("\n  Suggestion: %s", suggestion)

	return baseError + suggestionText
}

// generateSuggestion provides helpful suggestions based on the error message
func (ef *ErrorFormatter) generateSuggestion(errMsg string) string {
	errLower := strings.ToLower(errMsg)

	if strings.Contains(errLower, "unknown symbol") {
		return "Check if the symbol is bound with defun, setq, or a let/lambda parameter"
	}

	if strings.Contains(errLower, "expected exactly") || strings.Contains(errLower, "expected at least") {
		return "Check the operator's arity against its definition"
	}

	if strings.Contains(errLower, "missing closing parenthesis") || strings.Contains(errLower, "unexpected closing parenthesis") {
		return "Check for balanced parentheses"
	}

	if strings.Contains(errLower, "division by zero") {
		return "Ensure the divisor is not zero"
	}

	if strings.Contains(errLower, "non-empty list") {
		return "Check if the list has elements before accessing them"
	}

	if strings.Contains(errLower, "not a procedure") {
		return "Make sure you're calling a function, not a variable"
	}

	return ""
}

// FormatErrorWithSmartSuggestion formats an error with an automatically generated suggestion
func (ef *ErrorFormatter) FormatErrorWithSmartSuggestion(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	suggestion := ef.generateSuggestion(errMsg)
	return ef.FormatErrorWithSuggestion(err, suggestion)
}
