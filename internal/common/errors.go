// Package common defines shared constants and sentinel errors used across
// the credkeeper server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. Unknown email and wrong password share one value
	// so callers cannot tell which one happened.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorInternal           = errors.New("internal error")
	ErrorValidation         = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// InternalError marks a store, crypto or signing failure. Its message is the
// message of the wrapped cause, unchanged, so that transports can report it
// as is.
type InternalError struct {
	Err error
}

// NewInternalError wraps err, returning nil for a nil err.
func NewInternalError(err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Err: err}
}

func (e *InternalError) Error() string {
	return e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is reports ErrorInternal as a match so callers can branch on the category
// without a type assertion.
func (e *InternalError) Is(target error) bool {
	return target == ErrorInternal
}
