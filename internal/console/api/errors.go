package api

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized matches classified errors carrying HTTP status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable matches classified errors produced when no HTTP
	// response was received at all.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is the classified outcome of a failed gateway call. Message is
// human-readable (the server's own message when it sent one); Status is the
// HTTP status code, or 0 when the failure happened before any response was
// received.
//
// Callers branch either on Status or via errors.Is against the package
// sentinels; they never see raw transport details.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match classified errors against the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrUnavailable:
		return e.Status == 0
	}
	return false
}

// AsError unwraps the classified *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
