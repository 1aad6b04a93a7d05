package validator

import "errors"

var (
	// ErrValidationFailed is wrapped by every validation failure.
	ErrValidationFailed = errors.New("validation failed")

	ErrFieldRequired = errors.New("field is required")
	ErrInvalidValue  = errors.New("invalid value")
	ErrInvalidFormat = errors.New("invalid format")
)
