package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Time is a timestamp transmitted as epoch seconds. The zero value means
// "not set" and encodes as null.
type Time struct {
	time.Time
}

// NewTime truncates t to whole seconds.
func NewTime(t time.Time) Time {
	if t.IsZero() {
		return Time{}
	}
	return Time{Time: time.Unix(t.Unix(), 0).UTC()}
}

// Unix returns a Time for epoch seconds.
func Unix(sec int64) Time {
	return Time{Time: time.Unix(sec, 0).UTC()}
}

// Ptr returns the underlying time, or nil when unset.
func (t Time) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

// UnmarshalJSON accepts a number, a numeric string, null, false or 0.
func (t *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0", `""`, `"0"`:
		*t = Time{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	sec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(data), 64)
		if ferr != nil {
			return fmt.Errorf("invalid epoch timestamp %q", data)
		}
		sec = int64(f)
	}
	*t = Unix(sec)
	return nil
}
