package params

import (
	"net/url"
	"strings"
)

// Values is an ordered multi-valued parameter set.
// The zero value is ready to use.
type Values struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// Add appends a value for key, keeping any earlier values.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, pair{key: key, value: value})
}

// Set replaces every value of key with a single value, keeping the position
// of the first occurrence.
func (v *Values) Set(key, value string) {
	for i := range v.pairs {
		if v.pairs[i].key == key {
			v.pairs[i].value = value
			v.del(key, i+1)
			return
		}
	}
	v.Add(key, value)
}

func (v *Values) del(key string, from int) {
	kept := v.pairs[:from]
	for _, p := range v.pairs[from:] {
		if p.key != key {
			kept = append(kept, p)
		}
	}
	v.pairs = kept
}

// Get returns the first value of key.
func (v Values) Get(key string) string {
	for _, p := range v.pairs {
		if p.key == key {
			return p.value
		}
	}
	return ""
}

// All returns every value of key in insertion order.
func (v Values) All(key string) []string {
	var out []string
	for _, p := range v.pairs {
		if p.key == key {
			out = append(out, p.value)
		}
	}
	return out
}

func (v Values) Has(key string) bool {
	for _, p := range v.pairs {
		if p.key == key {
			return true
		}
	}
	return false
}

// Keys returns distinct keys in first-insertion order.
func (v Values) Keys() []string {
	seen := make(map[string]bool, len(v.pairs))
	keys := make([]string, 0, len(v.pairs))
	for _, p := range v.pairs {
		if !seen[p.key] {
			seen[p.key] = true
			keys = append(keys, p.key)
		}
	}
	return keys
}

// Len returns the number of key/value pairs.
func (v Values) Len() int { return len(v.pairs) }

// Merge appends every pair of other.
func (v *Values) Merge(other Values) {
	v.pairs = append(v.pairs, other.pairs...)
}

// Encode returns the URL-encoded form in insertion order.
func (v Values) Encode() string {
	var sb strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

// URLValues converts to url.Values. Order across keys is lost.
func (v Values) URLValues() url.Values {
	out := make(url.Values, len(v.pairs))
	for _, p := range v.pairs {
		out.Add(p.key, p.value)
	}
	return out
}
