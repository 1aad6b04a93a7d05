// Package interval implements the compact billing interval grammar used by
// offers, subscriptions and validity periods.
//
// An interval is a positive count followed by a unit, optionally followed by
// the weekday on which weekly charges are captured:
//
//	1 MONTH
//	2 WEEK,MONDAY
//	1 YEAR
//
// Units are DAY, WEEK, MONTH and YEAR. Tokens are case-insensitive on input and
// always upper-case on output, so Parse(s).String() yields the normalized form
// of s.
//
// # Usage
//
//	iv, err := interval.Parse("2 week,monday")
//	if err != nil {
//		// errors.Is(err, interval.ErrInvalidFormat)
//	}
//	fmt.Println(iv) // 2 WEEK,MONDAY
//
//	monthly := interval.New(1, interval.Month)
//	next := monthly.AddTo(time.Now())
//
// Interval implements encoding.TextMarshaler and json.Marshaler, so entity
// structs can carry it directly in their JSON representation.
package interval
