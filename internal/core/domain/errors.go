package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated indicates an operation needs a session but none is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired indicates the stored access token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// Remote error kinds. A *RemoteError matches exactly one of these via errors.Is.

	// ErrAuthentication indicates invalid credentials or an expired session.
	ErrAuthentication = errors.New("authentication error")

	// ErrValidation indicates the server rejected a malformed request.
	ErrValidation = errors.New("validation error")

	// ErrNetwork indicates no response was received from the server.
	ErrNetwork = errors.New("network error")

	// ErrUnknown is the fallback for unclassified remote failures.
	ErrUnknown = errors.New("unknown error")
)

// ErrorKind classifies a remote failure.
type ErrorKind string

// Available error kinds.
const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindNetwork        ErrorKind = "network"
	ErrorKindUnknown        ErrorKind = "unknown"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// sentinel returns the package error the kind matches.
func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindAuthentication:
		return ErrAuthentication
	case ErrorKindValidation:
		return ErrValidation
	case ErrorKindNotFound:
		return ErrNotFound
	case ErrorKindNetwork:
		return ErrNetwork
	default:
		return ErrUnknown
	}
}

// RemoteError is the normalised failure of a call to the document API.
type RemoteError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message is the human-readable message shown to the user.
	Message string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Is reports whether target is the sentinel for this error's kind.
func (e *RemoteError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying transport error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// KindForStatus maps an HTTP status code to an error kind.
func KindForStatus(code int) ErrorKind {
	switch {
	case code == 401:
		return ErrorKindAuthentication
	case code == 404:
		return ErrorKindNotFound
	case code == 400, code == 403, code == 409, code == 422:
		return ErrorKindValidation
	default:
		return ErrorKindUnknown
	}
}

// KindOf returns the kind of err. Errors that are not remote errors are
// classified by the sentinels they wrap, then fall back to unknown.
func KindOf(err error) ErrorKind {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Kind
	}
	switch {
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrTokenExpired):
		return ErrorKindAuthentication
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrInvalidInput):
		return ErrorKindValidation
	default:
		return ErrorKindUnknown
	}
}

// IsAuthentication reports whether err should end the current session.
func IsAuthentication(err error) bool {
	return err != nil && KindOf(err) == ErrorKindAuthentication
}
