package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig             = "CONFIG"
	ErrInvalidColor       = "INVALID_COLOR"
	ErrInvalidGradient    = "INVALID_GRADIENT"
	ErrUnknownGraphStyle  = "UNKNOWN_GRAPH_STYLE"
	ErrUnknownCornerStyle = "UNKNOWN_CORNER_STYLE"
	ErrThemeNotFound      = "THEME_NOT_FOUND"
	ErrThemeParse         = "THEME_PARSE"
	ErrInvalidDimensions  = "INVALID_DIMENSIONS"
	ErrCollect            = "COLLECT"
	ErrExport             = "EXPORT"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered for the terminal as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Newf is New with a formatted message and no suggestion.
func Newf(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrConfig code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrConfig,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns just the message, for places where the multi-line form
// doesn't fit (status bars, log lines).
func (e *Error) Short() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
// Only the outermost structured error is consulted.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Code == code
	}
	return false
}

// Message returns the short form of err if it is a structured Error,
// otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Short()
	}
	return err.Error()
}

// Suggestion returns the suggestion of a structured error, or "".
func Suggestion(err error) string {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Suggestion
	}
	return ""
}

// ExitError carries a process exit code without a user-facing message.
// Commands return it when they have already printed their own report.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the code from an ExitError anywhere in err's chain.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
