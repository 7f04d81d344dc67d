// Package errs defines the stable error taxonomy used across strands2d:
// every fatal or warned condition carries a short Kind tag plus a
// human-readable context string, so callers can branch with this
// package's Is(err, kind) instead of string-matching messages.
package errs

import "fmt"

// Kind is a stable short tag identifying a class of error.
type Kind string

// The error taxonomy from the control-file/mesh/solver error design.
const (
	Config       Kind = "config"
	Mesh         Kind = "mesh"
	Numeric      Kind = "numeric"
	LinearSolver Kind = "linear_solver"
	IO           Kind = "io"
)

// Error wraps an underlying cause with a stable Kind and a context
// string describing what was being attempted.
type Error struct {
	Kind    Kind
	Context string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

// Wrap builds an *Error around an existing error.
func Wrap(kind Kind, context string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Context: context, Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given Kind.
// It walks the Unwrap chain itself and compares on Kind rather than
// identity, since each *Error instance is distinct; *Error has no Is
// method, so the standard errors.Is matches by identity only.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Err
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
