package clients

import (
	"errors"
	"fmt"
)

// The upstream services distinguish exactly four failure classes. Handlers
// map these onto HTTP statuses; nothing is retried automatically.

// NotFoundError means the upstream has no resource for the identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success HTTP response from an upstream service.
type ServerError struct {
	Op     string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.Status, e.Body)
}

// ValidationError is a request rejected before any network call was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ErrInvalidCredentials is returned by the users client when the service
// rejects an email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
