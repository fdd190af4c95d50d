package gateway

import "errors"

// ErrUnauthenticated covers the 401/403 class: the token is missing, expired
// or rejected. Callers should clear the session and prompt a new login.
var ErrUnauthenticated = errors.New("unauthenticated")

// RemoteError is a well-formed rejection from the feedback service. Message
// is the server-provided text and is shown to the user verbatim.
type RemoteError struct {
	Message string
	Status  int
}

func (e *RemoteError) Error() string {
	return e.Message
}

// TransportError means no usable response was received (connection refused,
// timeout, context cancellation). Local state must be left untouched so the
// user can simply retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
