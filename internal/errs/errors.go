// Package errs defines the error taxonomy shared by the service layer and
// the HTTP boundary. Services raise these at the point of detection and let
// them propagate; the handlers translate them into status codes exactly once.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAuthorization = errors.New("not authorized")
)

// Error carries a sentinel kind plus a human-readable reason.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Validationf reports an input that violates an entity invariant.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf reports a lookup that matched no row.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf reports a uniqueness violation.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// Authorizationf reports that the acting principal does not own the resource.
func Authorizationf(format string, args ...any) error {
	return &Error{Kind: ErrAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// Reason extracts the human-readable message, falling back to the full error.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return err.Error()
}
