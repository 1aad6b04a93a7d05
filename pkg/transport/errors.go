package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is wrapped by every failure to complete an exchange.
	ErrTransport = errors.New("transport failure")
	// ErrTimeout is additionally wrapped when the request deadline expired.
	ErrTimeout = errors.New("transport timeout")

	ErrMissingAPIKey = errors.New("api key is required")
	ErrInvalidURL    = errors.New("invalid base URL")
)

// StatusError is returned when the API answered with a non-2xx status.
// Body holds the raw response for error-envelope decoding.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// AsStatusError extracts a *StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
