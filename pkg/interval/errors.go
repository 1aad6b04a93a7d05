package interval

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat = errors.New("invalid interval format")
	ErrInvalidCount  = errors.New("interval count must be a positive integer")
	ErrUnknownUnit   = errors.New("unknown interval unit")
	ErrUnknownDay    = errors.New("unknown weekday")
	ErrWeekdayUnit   = errors.New("weekday is only allowed with WEEK unit")
)

// FormatError reports an interval string that does not follow the grammar.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil || e.Err == ErrInvalidFormat {
		return fmt.Sprintf("%s: %q", ErrInvalidFormat, e.Input)
	}
	return fmt.Sprintf("%s %q: %v", ErrInvalidFormat, e.Input, e.Err)
}

// Unwrap exposes both ErrInvalidFormat and the specific cause.
func (e *FormatError) Unwrap() []error {
	return []error{ErrInvalidFormat, e.Err}
}

func formatError(input string, err error) error {
	return &FormatError{Input: input, Err: err}
}
