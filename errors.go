package paymill

import (
	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/subscription"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

var (
	ErrValidationFailed  = validator.ErrValidationFailed
	ErrInvalidInterval   = interval.ErrInvalidFormat
	ErrTransport         = transport.ErrTransport
	ErrTimeout           = transport.ErrTimeout
	ErrDecode            = resource.ErrDecode
	ErrRemoteRejection   = resource.ErrRemoteRejection
	ErrNotFound          = resource.ErrNotFound
	ErrPlanRequired      = subscription.ErrPlanRequired
	ErrInvalidChangeMode = subscription.ErrInvalidChangeMode
)

// APIError is the error envelope returned by the API.
type APIError = resource.APIError

func IsValidationError(err error) bool { return validator.IsValidationError(err) }

func IsNotFound(err error) bool { return resource.IsNotFound(err) }

func IsRemoteRejection(err error) bool { return resource.IsRemoteRejection(err) }

func IsTimeout(err error) bool { return transport.IsTimeout(err) }

func IsTransportError(err error) bool { return transport.IsTransport(err) }

// AsAPIError extracts the API error envelope from err.
func AsAPIError(err error) (*APIError, bool) { return resource.AsAPIError(err) }
