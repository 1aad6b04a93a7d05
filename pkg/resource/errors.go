package resource

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDecode          = errors.New("failed to decode response")
	ErrRemoteRejection = errors.New("request rejected by the API")
)

// APIError is an error envelope returned by the API. Message and Exception
// are surfaced verbatim.
type APIError struct {
	StatusCode   int
	Message      string
	Exception    string
	ResponseCode int
	// Fields holds per-field messages when the API reports them as an object.
	Fields map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Exception
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, msg)
	}
	return "api error: " + msg
}

func (e *APIError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{ErrRemoteRejection, ErrNotFound}
	}
	return []error{ErrRemoteRejection}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRemoteRejection(err error) bool {
	return errors.Is(err, ErrRemoteRejection)
}

// AsAPIError extracts the API error envelope from err.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
