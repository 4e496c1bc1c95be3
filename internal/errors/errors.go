// Package errors holds the application error taxonomy and the CLI helpers that
// print errors and exit.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
)

// Kind classifies an error by how a caller should react to it.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindInvalid
	KindConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is an application error. Msg is safe to show to a client; Err keeps
// the underlying cause for logs.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Invalid(msg string, err error) *Error {
	return &Error{Kind: KindInvalid, Msg: msg, Err: err}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Msg: msg, Err: err}
}

// Store wraps a storage failure. msg is the generic text shown to clients,
// such as "Failed to fetch habits".
func Store(op, msg string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}

// Is and As are re-exported so callers need not import both packages.
var (
	Is = errors.Is
	As = errors.As
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
