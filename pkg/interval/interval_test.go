package interval_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paymill/pkg/interval"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1 DAY", "1 DAY"},
		{"1 WEEK", "1 WEEK"},
		{"1 MONTH", "1 MONTH"},
		{"3 YEAR", "3 YEAR"},
		{"2 WEEK,MONDAY", "2 WEEK,MONDAY"},
		{"2 week,monday", "2 WEEK,MONDAY"},
		{"  12   month ", "12 MONTH"},
		{"1 WEEK, friday", "1 WEEK,FRIDAY"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			iv, err := interval.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, iv.String())

			again, err := interval.Parse(iv.String())
			require.NoError(t, err)
			assert.Equal(t, iv, again)
		})
	}
}

func TestParse_Structured(t *testing.T) {
	t.Parallel()

	iv, err := interval.Parse("2 WEEK,monday")
	require.NoError(t, err)
	assert.Equal(t, 2, iv.Count)
	assert.Equal(t, interval.Week, iv.Unit)
	assert.Equal(t, interval.Monday, iv.Weekday)
	assert.True(t, iv.HasWeekday())
	assert.Equal(t, time.Monday, iv.Weekday.Time())

	iv, err = interval.Parse("1 YEAR")
	require.NoError(t, err)
	assert.Equal(t, interval.New(1, interval.Year), iv)
	assert.False(t, iv.HasWeekday())
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		cause error
	}{
		{"2 FORTNIGHT", interval.ErrUnknownUnit},
		{"WEEK,MONDAY", interval.ErrInvalidFormat},
		{"", interval.ErrInvalidFormat},
		{"MONTH", interval.ErrInvalidFormat},
		{"0 MONTH", interval.ErrInvalidCount},
		{"-1 DAY", interval.ErrInvalidCount},
		{"x DAY", interval.ErrInvalidCount},
		{"1 MONTH,MONDAY", interval.ErrWeekdayUnit},
		{"1 WEEK,FUNDAY", interval.ErrUnknownDay},
		{"1 2 WEEK", interval.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := interval.Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, interval.ErrInvalidFormat)
			assert.ErrorIs(t, err, tt.cause)

			var fe *interval.FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.input, fe.Input)
		})
	}
}

func TestInterval_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, interval.New(1, interval.Month).Validate())
	assert.NoError(t, interval.Weekly(2, interval.Sunday).Validate())
	assert.ErrorIs(t, interval.Interval{}.Validate(), interval.ErrInvalidCount)
	assert.ErrorIs(t, interval.New(1, "FORTNIGHT").Validate(), interval.ErrUnknownUnit)
	assert.ErrorIs(t, interval.Interval{Count: 1, Unit: interval.Day, Weekday: interval.Monday}.Validate(), interval.ErrWeekdayUnit)
}

func TestInterval_AddTo(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 3), interval.New(3, interval.Day).AddTo(base))
	assert.Equal(t, base.AddDate(0, 0, 14), interval.New(2, interval.Week).AddTo(base))
	assert.Equal(t, base.AddDate(0, 1, 0), interval.New(1, interval.Month).AddTo(base))
	assert.Equal(t, base.AddDate(1, 0, 0), interval.New(1, interval.Year).AddTo(base))
}

func TestInterval_JSON(t *testing.T) {
	t.Parallel()

	type holder struct {
		Interval interval.Interval  `json:"interval"`
		Validity *interval.Interval `json:"period_of_validity"`
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"interval":"2 WEEK,MONDAY","period_of_validity":null}`), &h))
	assert.Equal(t, interval.Weekly(2, interval.Monday), h.Interval)
	assert.Nil(t, h.Validity)

	out, err := json.Marshal(holder{Interval: interval.New(1, interval.Month)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"interval":"1 MONTH","period_of_validity":null}`, string(out))

	err = json.Unmarshal([]byte(`{"interval":"2 FORTNIGHT"}`), &h)
	assert.ErrorIs(t, err, interval.ErrInvalidFormat)
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { interval.MustParse("nope") })
	assert.NotPanics(t, func() { interval.MustParse("1 DAY") })
}
