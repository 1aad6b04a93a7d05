package interval

import (
	"strings"
	"time"
)

// Unit is the calendar unit of an interval.
type Unit string

const (
	Day   Unit = "DAY"
	Week  Unit = "WEEK"
	Month Unit = "MONTH"
	Year  Unit = "YEAR"
)

// Units lists every recognized unit in ascending length.
var Units = []Unit{Day, Week, Month, Year}

// ParseUnit converts a case-insensitive token into a Unit.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case Day, Week, Month, Year:
		return u, nil
	}
	return "", ErrUnknownUnit
}

func (u Unit) String() string { return string(u) }

// Weekday is the day on which a weekly interval is charged.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdays = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseWeekday converts a case-insensitive weekday name into a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := weekdays[d]; !ok {
		return "", ErrUnknownDay
	}
	return d, nil
}

// Time returns the standard library weekday.
func (d Weekday) Time() time.Weekday { return weekdays[d] }

func (d Weekday) String() string { return string(d) }
