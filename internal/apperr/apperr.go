// Package apperr defines the error kinds shared by the wintools utilities
// and the process exit code each kind maps to.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure. Every kind has a stable exit code.
type Kind int

const (
	KindArgument Kind = iota + 1
	KindInvalidArgument
	KindTargetNotFound
	KindTooManyTargets
	KindUnsupportedFilter
	KindOsOperationFailed
	KindDuplicateFilter
	KindNoFilterSpecified
	KindUnsupportedPlatform
)

const (
	ExitOK = 0

	// ExitUsage is returned when usage is displayed without being the only request.
	ExitUsage = 1
)

var kindNames = map[Kind]string{
	KindArgument:            "ArgumentError",
	KindInvalidArgument:     "InvalidArgument",
	KindTargetNotFound:      "TargetNotFound",
	KindTooManyTargets:      "TooManyTargets",
	KindUnsupportedFilter:   "UnsupportedFilter",
	KindOsOperationFailed:   "OsOperationFailed",
	KindDuplicateFilter:     "DuplicateFilter",
	KindNoFilterSpecified:   "NoFilterSpecified",
	KindUnsupportedPlatform: "UnsupportedPlatform",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	if _, ok := kindNames[k]; !ok {
		return ExitUsage
	}

	return int(k)
}

// Error is a classified failure. Index is the 1-based argument position
// (0 when the error is not tied to an argument).
type Error struct {
	Kind   Kind
	Msg    string
	Token  string
	Index  int
	Op     string
	Handle int64
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Msg)

	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}

	if e.Index > 0 {
		fmt.Fprintf(&b, " at index %d", e.Index)
	}

	switch {
	case e.Op != "" && e.Handle != 0:
		fmt.Fprintf(&b, " (%s on %d)", e.Op, e.Handle)
	case e.Op != "":
		fmt.Fprintf(&b, " (%s)", e.Op)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so sentinel values like ErrTargetNotFound
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Msg == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrArgument            = &Error{Kind: KindArgument}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrTargetNotFound      = &Error{Kind: KindTargetNotFound}
	ErrTooManyTargets      = &Error{Kind: KindTooManyTargets}
	ErrUnsupportedFilter   = &Error{Kind: KindUnsupportedFilter}
	ErrOsOperationFailed   = &Error{Kind: KindOsOperationFailed}
	ErrDuplicateFilter     = &Error{Kind: KindDuplicateFilter}
	ErrNoFilterSpecified   = &Error{Kind: KindNoFilterSpecified}
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
)

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// AtToken creates an error naming the offending argument and its position.
func AtToken(kind Kind, token string, index int, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Token: token, Index: index}
}

// OSFailure wraps a failed OS call. handle is 0 when the call has no
// window target.
func OSFailure(op string, handle int64, err error) *Error {
	return &Error{Kind: KindOsOperationFailed, Msg: "OS operation failed", Op: op, Handle: handle, Err: err}
}

// ExitError ends the process with Code. Its output, if any, has already
// been written.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an ExitError for code.
func Exit(code int) error {
	return &ExitError{Code: code}
}

// IsSilent reports whether err is an ExitError that must not be printed.
func IsSilent(err error) bool {
	var e *ExitError
	return errors.As(err, &e)
}

// KindOf reports the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// ExitCode maps an error to a process exit code. nil maps to ExitOK and
// unclassified errors to ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	if kind := KindOf(err); kind != 0 {
		return kind.ExitCode()
	}

	return ExitUsage
}
