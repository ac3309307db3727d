// Package errs defines the error taxonomy for ccnotify.
//
// Every failure surfaced to the command layer carries a Kind so that
// main can map it to a distinct process exit code, plus enough context
// (operation, path, wrapped OS error) for a one-line diagnosis.
package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Kind classifies an error for exit-code mapping and display.
type Kind int

const (
	// KindCommand is the uncategorized wrapper for anything else.
	KindCommand Kind = iota
	// KindInvalidInput indicates a webhook URL or topic name failed its format check.
	KindInvalidInput
	// KindFilePermission indicates an OS-level read/write/create failure.
	KindFilePermission
	// KindJSONParse indicates malformed JSON or a document shape violation.
	KindJSONParse
	// KindConfigBackup indicates backup creation failed.
	KindConfigBackup
	// KindDirectoryAccess indicates a required directory cannot be resolved or created.
	KindDirectoryAccess
	// KindScriptCreation indicates writing or chmod-ing a generated script failed.
	KindScriptCreation
)

// ExitCode returns the process exit code for a kind. Codes are stable;
// zero is reserved for success and one for uncategorized failures.
func (k Kind) ExitCode() int {
	switch k {
	case KindInvalidInput:
		return 2
	case KindFilePermission:
		return 3
	case KindJSONParse:
		return 4
	case KindConfigBackup:
		return 5
	case KindDirectoryAccess:
		return 6
	case KindScriptCreation:
		return 7
	default:
		return 1
	}
}

// String returns the kind's display label.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindFilePermission:
		return "file permission"
	case KindJSONParse:
		return "json parse"
	case KindConfigBackup:
		return "config backup"
	case KindDirectoryAccess:
		return "directory access"
	case KindScriptCreation:
		return "script creation"
	default:
		return "command"
	}
}

// Error is a classified error with operation context.
type Error struct {
	Kind       Kind
	Op         string // operation that failed, e.g. "save settings"
	Path       string // file or directory involved, if any
	Msg        string // human-readable description
	Suggestion string // optional hint for how to fix the error
	Err        error  // wrapped cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if e.Path != "" {
		fmt.Fprintf(&sb, " (%s)", e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithSuggestion attaches a fix hint and returns the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// New creates a classified error without a wrapped cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap creates a classified error wrapping a cause.
func Wrap(kind Kind, op, path string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: ClassifyOS(cause), Err: cause}
}

// KindOf extracts the Kind from an error chain, defaulting to KindCommand.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindCommand
}

// ExitCode returns the exit code for an arbitrary error (0 for nil).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}

// Format renders a user-facing message, including the suggestion when present.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "Error: " + err.Error()
	}
	msg := fmt.Sprintf("Error (%s): %s", e.Kind, e.Error())
	if e.Suggestion != "" {
		msg += "\n\nTry: " + e.Suggestion
	}
	return msg
}

// ClassifyOS maps an OS-level error to a short human-readable cause.
func ClassifyOS(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, fs.ErrNotExist):
		return "not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, syscall.ENOSPC):
		return "disk full"
	case errors.Is(err, syscall.EMFILE), errors.Is(err, syscall.ENFILE):
		return "too many open files"
	case errors.Is(err, syscall.ENOTDIR):
		return "not a directory"
	case errors.Is(err, os.ErrClosed):
		return "file already closed"
	default:
		return "operation failed"
	}
}
