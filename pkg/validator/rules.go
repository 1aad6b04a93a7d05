package validator

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Cause:   ErrFieldRequired,
		},
	}
}

// RequiredID validates a resource reference: it must be present and carry a non-empty id.
func RequiredID(field string, present bool, id string) Rule {
	return Rule{
		Check: func() bool {
			return present && strings.TrimSpace(id) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "reference must carry a non-empty id",
			Cause:   ErrFieldRequired,
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Cause:   ErrInvalidValue,
		},
	}
}

func PositiveAmount[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value > 0
		},
		Error: ValidationError{
			Field:   field,
			Message: "amount must be positive",
			Cause:   ErrInvalidValue,
		},
	}
}

func NonNegative[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0
		},
		Error: ValidationError{
			Field:   field,
			Message: "cannot be negative",
			Cause:   ErrInvalidValue,
		},
	}
}

// ValidCurrencyCode validates an upper-case ISO 4217 currency code.
func ValidCurrencyCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 3 || strings.ToUpper(value) != value {
				return false
			}
			_, err := currency.ParseISO(value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid ISO 4217 currency code",
			Cause:   ErrInvalidFormat,
		},
	}
}

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %v", allowedValues),
			Cause:   ErrInvalidValue,
		},
	}
}

// Check adapts a func returning an error into a Rule. fn is evaluated once,
// when the rule is built; its error becomes the Cause.
func Check(field string, fn func() error) Rule {
	err := fn()
	r := Rule{
		Check: func() bool { return err == nil },
		Error: ValidationError{Field: field, Cause: err},
	}
	if err != nil {
		r.Error.Message = err.Error()
	}
	return r
}
