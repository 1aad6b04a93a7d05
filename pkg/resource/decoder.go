package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxMessageLen bounds the message kept from a non-envelope error body, in bytes.
const maxMessageLen = 200

// Decoder turns response bodies into entities, lists and API errors.
// It holds no global state; construct one per client or share it freely.
type Decoder struct {
	strict bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithStrictFields makes top-level entity decoding reject unknown JSON members.
// Types with their own UnmarshalJSON are not affected.
func WithStrictFields() DecoderOption {
	return func(d *Decoder) { d.strict = true }
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type envelope struct {
	Data         json.RawMessage `json:"data"`
	DataCount    json.RawMessage `json:"data_count"`
	Error        json.RawMessage `json:"error"`
	Exception    json.RawMessage `json:"exception"`
	ResponseCode json.RawMessage `json:"response_code"`
}

// Entity decodes a single entity into v. The entity may be the whole body or
// nested under "data". An error envelope in the body yields *APIError.
func (d *Decoder) Entity(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fmt.Errorf("%w: empty response body", ErrDecode)
	}
	if body[0] != '{' {
		return fmt.Errorf("%w: expected JSON object", ErrDecode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if hasValue(env.Error) {
		return d.apiError(0, env)
	}

	// A present "data" member must hold the entity; only its absence means
	// the body is the entity itself.
	payload := body
	if data := bytes.TrimSpace(env.Data); len(data) > 0 {
		if data[0] != '{' {
			return fmt.Errorf("%w: entity data is not an object", ErrDecode)
		}
		payload = data
	}
	if err := d.unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// List decodes a list envelope. items must be a pointer to a slice.
// It returns the total count reported by the API, falling back to the number
// of decoded items when the count is missing.
func (d *Decoder) List(body []byte, items any) (int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return 0, fmt.Errorf("%w: empty response body", ErrDecode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if hasValue(env.Error) {
		return 0, d.apiError(0, env)
	}

	n := 0
	if data := bytes.TrimSpace(env.Data); hasValue(data) {
		if data[0] != '[' {
			return 0, fmt.Errorf("%w: list data is not an array", ErrDecode)
		}
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		n = len(raws)
		if err := json.Unmarshal(data, items); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	if !hasValue(env.DataCount) {
		return n, nil
	}
	total, err := flexInt(env.DataCount)
	if err != nil {
		return 0, fmt.Errorf("%w: data_count: %w", ErrDecode, err)
	}
	return total, nil
}

// Error builds an *APIError from a non-2xx response. Bodies that are not an
// error envelope are kept as the message.
func (d *Decoder) Error(status int, body []byte) *APIError {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err == nil && (hasValue(env.Error) || hasValue(env.Exception)) {
		return d.apiError(status, env)
	}
	msg := strings.Join(strings.Fields(string(body)), " ")
	if len(msg) > maxMessageLen {
		cut := maxMessageLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	return &APIError{StatusCode: status, Message: msg}
}

func (d *Decoder) apiError(status int, env envelope) *APIError {
	ae := &APIError{StatusCode: status}

	var s string
	if err := json.Unmarshal(env.Error, &s); err == nil {
		ae.Message = s
	} else {
		var obj map[string]any
		if err := json.Unmarshal(env.Error, &obj); err == nil {
			ae.Fields = flatten(obj)
			ae.Message = joinFields(ae.Fields)
		}
	}

	if hasValue(env.Exception) {
		var exc string
		if err := json.Unmarshal(env.Exception, &exc); err == nil {
			ae.Exception = exc
		}
	}
	if hasValue(env.ResponseCode) {
		if code, err := flexInt(env.ResponseCode); err == nil {
			ae.ResponseCode = code
		}
	}
	return ae
}

func (d *Decoder) unmarshal(data []byte, v any) error {
	if !d.strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// hasValue reports whether raw carries something other than null or an empty
// array, which the API uses for "no value".
func hasValue(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]":
		return false
	}
	return true
}

// flexInt accepts a JSON number or a numeric string.
func flexInt(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.Atoi(strings.TrimSpace(s))
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	i, err := n.Int64()
	if err != nil {
		return 0, errors.New("not an integer: " + n.String())
	}
	return int(i), nil
}

func flatten(obj map[string]any) map[string]string {
	out := make(map[string]string, len(obj))
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch val := v.(type) {
		case map[string]any:
			for k, nested := range val {
				key := k
				if prefix != "" {
					key = prefix + "." + k
				}
				walk(key, nested)
			}
		case string:
			out[prefix] = val
		case nil:
		default:
			out[prefix] = fmt.Sprint(val)
		}
	}
	walk("", obj)
	return out
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

// DecodeRef decodes a nested reference that the API sends as a full object,
// a bare id string, null or an empty array. fromID builds a reference that
// carries only an id.
func DecodeRef[T any](raw json.RawMessage, fromID func(id string) *T) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if !hasValue(raw) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		return fromID(id), nil
	case '{':
		v := new(T)
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected reference value %s", raw)
	}
}
