package subscription

import "errors"

var (
	// ErrPlanRequired is the cause of the validation error returned when a
	// subscription has neither an offer nor amount, currency and interval.
	ErrPlanRequired = errors.New("offer or amount, currency and interval are required")

	ErrInvalidChangeMode = errors.New("invalid offer change mode")
)
