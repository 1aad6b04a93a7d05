// Package params converts typed request values into the ordered, flat
// key/value parameter sets sent to the API.
//
// Values keeps insertion order and allows repeated keys. Builder adds typed
// values one field at a time: absent values are omitted entirely, present
// values are validated and serialized (times as epoch seconds, booleans as
// "true"/"false", intervals in their canonical text form). The first invalid
// field stops the build; Build returns that single *validator.ValidationError.
//
//	vals, err := params.NewBuilder().
//	    Ref("payment", payment, true).
//	    Amount("amount", &amount).
//	    Currency("currency", "EUR").
//	    Interval("interval", &iv).
//	    Time("start_at", startAt).
//	    Build()
package params
