package params

import (
	"reflect"
	"strconv"
	"time"

	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

// Identifier is implemented by resource references (offers, payments, clients).
type Identifier interface {
	GetID() string
}

// Builder accumulates validated parameters. After the first validation
// failure every further call is a no-op and Build returns that failure.
type Builder struct {
	values Values
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(name, value string, rules ...validator.Rule) *Builder {
	if b.err != nil {
		return b
	}
	if err := validator.First(rules...); err != nil {
		b.err = err
		return b
	}
	b.values.Add(name, value)
	return b
}

// Fail records err as the build error unless one is already set.
func (b *Builder) Fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Raw adds a value as-is, running the given rules first.
func (b *Builder) Raw(name, value string, rules ...validator.Rule) *Builder {
	return b.add(name, value, rules...)
}

// String adds a non-empty string. Empty strings are omitted.
func (b *Builder) String(name, value string, rules ...validator.Rule) *Builder {
	if value == "" {
		return b
	}
	return b.add(name, value, rules...)
}

// Int adds an optional non-negative integer.
func (b *Builder) Int(name string, value *int) *Builder {
	if value == nil {
		return b
	}
	return b.add(name, strconv.Itoa(*value), validator.NonNegative(name, *value))
}

// Amount adds an optional amount in minor currency units; it must be positive.
func (b *Builder) Amount(name string, value *int) *Builder {
	if value == nil {
		return b
	}
	return b.add(name, strconv.Itoa(*value), validator.PositiveAmount(name, *value))
}

// Currency adds an optional ISO 4217 code.
func (b *Builder) Currency(name, value string) *Builder {
	if value == "" {
		return b
	}
	return b.add(name, value, validator.ValidCurrencyCode(name, value))
}

// Bool adds a boolean as "true" or "false".
func (b *Builder) Bool(name string, value bool) *Builder {
	return b.add(name, strconv.FormatBool(value))
}

// Time adds an optional timestamp as epoch seconds.
func (b *Builder) Time(name string, value *time.Time) *Builder {
	if value == nil || value.IsZero() {
		return b
	}
	return b.add(name, strconv.FormatInt(value.Unix(), 10))
}

// TimeRange adds a "<from>-<to>" epoch range used by list filters.
// A zero bound is omitted from its side of the range.
func (b *Builder) TimeRange(name string, from, to time.Time) *Builder {
	if from.IsZero() && to.IsZero() {
		return b
	}
	if to.IsZero() {
		return b.add(name, strconv.FormatInt(from.Unix(), 10))
	}
	var lo string
	if !from.IsZero() {
		lo = strconv.FormatInt(from.Unix(), 10)
	}
	return b.add(name, lo+"-"+strconv.FormatInt(to.Unix(), 10))
}

// Enum adds the canonical token of an enumerated value, checked against allowed.
func (b *Builder) Enum(name string, value int, allowed ...int) *Builder {
	return b.add(name, strconv.Itoa(value), validator.InList(name, value, allowed))
}

// Ref adds the id of a resource reference. A nil reference is omitted unless
// required, in which case it fails validation.
func (b *Builder) Ref(name string, ref Identifier, required bool) *Builder {
	id, present := refID(ref)
	if !present && !required {
		return b
	}
	return b.add(name, id, validator.RequiredID(name, present, id))
}

// Interval adds an optional billing interval, weekday suffix allowed.
func (b *Builder) Interval(name string, value *interval.Interval) *Builder {
	if value == nil {
		return b
	}
	iv := *value
	return b.add(name, iv.String(), validator.Check(name, iv.Validate))
}

// Period adds an optional duration such as a validity period; a weekday
// suffix is rejected.
func (b *Builder) Period(name string, value *interval.Interval) *Builder {
	if value == nil {
		return b
	}
	iv := *value
	return b.add(name, iv.String(), validator.Check(name, func() error {
		if err := iv.Validate(); err != nil {
			return err
		}
		if iv.HasWeekday() {
			return interval.ErrWeekdayUnit
		}
		return nil
	}))
}

// Values returns a copy of what has been accumulated so far.
func (b *Builder) Values() Values {
	return Values{pairs: append([]pair(nil), b.values.pairs...)}
}

// Err returns the first validation failure, if any.
func (b *Builder) Err() error { return b.err }

// Build returns the parameter set or the first validation failure.
func (b *Builder) Build() (Values, error) {
	if b.err != nil {
		return Values{}, b.err
	}
	return b.Values(), nil
}

// refID guards against typed nil pointers hidden in the interface.
func refID(ref Identifier) (string, bool) {
	if ref == nil {
		return "", false
	}
	if rv := reflect.ValueOf(ref); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", false
	}
	return ref.GetID(), true
}
