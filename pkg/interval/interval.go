package interval

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Interval is a billing period such as "1 MONTH" or "2 WEEK,MONDAY".
// The zero value is not a valid interval; use New or Parse.
type Interval struct {
	Count   int
	Unit    Unit
	Weekday Weekday // optional, WEEK only
}

// New returns an interval without a charge weekday.
func New(count int, unit Unit) Interval {
	return Interval{Count: count, Unit: unit}
}

// Weekly returns a weekly interval charged on the given weekday.
func Weekly(count int, day Weekday) Interval {
	return Interval{Count: count, Unit: Week, Weekday: day}
}

// Parse reads the "<count> <UNIT>[,<WEEKDAY>]" grammar.
func Parse(s string) (Interval, error) {
	body, day, hasDay := strings.Cut(strings.TrimSpace(s), ",")

	fields := strings.Fields(body)
	if len(fields) != 2 {
		return Interval{}, formatError(s, ErrInvalidFormat)
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count <= 0 {
		return Interval{}, formatError(s, ErrInvalidCount)
	}

	unit, err := ParseUnit(fields[1])
	if err != nil {
		return Interval{}, formatError(s, err)
	}

	iv := Interval{Count: count, Unit: unit}
	if !hasDay {
		return iv, nil
	}
	if unit != Week {
		return Interval{}, formatError(s, ErrWeekdayUnit)
	}
	if iv.Weekday, err = ParseWeekday(day); err != nil {
		return Interval{}, formatError(s, err)
	}
	return iv, nil
}

// MustParse is like Parse but panics on malformed input.
// Intended for constants and tests.
func MustParse(s string) Interval {
	iv, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return iv
}

// Validate checks the structured form against the same rules Parse applies.
func (iv Interval) Validate() error {
	if iv.Count <= 0 {
		return formatError(iv.String(), ErrInvalidCount)
	}
	if _, err := ParseUnit(string(iv.Unit)); err != nil {
		return formatError(iv.String(), err)
	}
	if iv.Weekday == "" {
		return nil
	}
	if iv.Unit != Week {
		return formatError(iv.String(), ErrWeekdayUnit)
	}
	if _, err := ParseWeekday(string(iv.Weekday)); err != nil {
		return formatError(iv.String(), err)
	}
	return nil
}

// IsZero reports whether the interval is unset.
func (iv Interval) IsZero() bool {
	return iv == Interval{}
}

// HasWeekday reports whether a charge weekday is set.
func (iv Interval) HasWeekday() bool {
	return iv.Weekday != ""
}

// String formats the interval in canonical form.
func (iv Interval) String() string {
	s := strconv.Itoa(iv.Count) + " " + string(iv.Unit)
	if iv.Weekday != "" {
		s += "," + string(iv.Weekday)
	}
	return s
}

// AddTo advances t by the interval. Month and year arithmetic follows
// time.Time.AddDate normalization.
func (iv Interval) AddTo(t time.Time) time.Time {
	switch iv.Unit {
	case Day:
		return t.AddDate(0, 0, iv.Count)
	case Week:
		return t.AddDate(0, 0, 7*iv.Count)
	case Month:
		return t.AddDate(0, iv.Count, 0)
	case Year:
		return t.AddDate(iv.Count, 0, 0)
	}
	return t
}

func (iv Interval) MarshalText() ([]byte, error) {
	if iv.IsZero() {
		return []byte{}, nil
	}
	return []byte(iv.String()), nil
}

func (iv *Interval) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*iv = Interval{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	if iv.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(iv.String())
}

// UnmarshalJSON accepts a grammar string or null.
func (iv *Interval) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*iv = Interval{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return iv.UnmarshalText([]byte(s))
}
