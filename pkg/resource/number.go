package resource

import (
	"encoding/json"
	"strconv"
)

// Number is an integer the API sometimes sends as a string, e.g. counters
// and card expiry fields. null decodes to 0.
type Number int

func (n Number) Int() int { return int(n) }

func (n Number) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(n), 10), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if !hasValue(data) || string(data) == `""` {
		*n = 0
		return nil
	}
	v, err := flexInt(json.RawMessage(data))
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}
