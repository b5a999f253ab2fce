package service

import "errors"

// Error kinds returned by the services. Every failure a service reports to its
// caller is an *Error whose Kind is one of these, so callers branch with errors.Is.
//
// The API layer maps them to HTTP status codes:
//   - ErrValidation: 400
//   - ErrNotFound: 400 (also used for empty list results)
//   - ErrConflict: 409
var (
	// ErrValidation indicates missing or malformed input. It is also used when a
	// note is created for a user that does not exist.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the target record is absent, or a list is empty.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate username or a user that still owns notes.
	ErrConflict = errors.New("conflict")
)

// Error carries an error kind, a message that is safe to show to clients,
// and optionally the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(message string, cause error) *Error {
	return &Error{Kind: ErrValidation, Message: message, Err: cause}
}

func notFoundError(message string, cause error) *Error {
	return &Error{Kind: ErrNotFound, Message: message, Err: cause}
}

func conflictError(message string, cause error) *Error {
	return &Error{Kind: ErrConflict, Message: message, Err: cause}
}

// Message returns the client-facing message of err if it is a service Error.
func Message(err error) (string, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message, true
	}
	return "", false
}
