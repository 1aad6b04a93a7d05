// Package fakeapi is an in-memory emulation of the payment API used by
// package tests. It serves offers, clients, payments and subscriptions over
// HTTP with the same envelopes, parameters and business rules the client
// library relies on:
//
//   - subscriptions mirror the offer's amount, currency and interval unless
//     overridden, and start a trial when the offer has one
//   - unpause and capture-date-changing offer changes move the next capture
//     to now plus the interval
//   - amount and offer changes are refused within 24 hours of the next capture
//   - a client may hold one active subscription per offer
//
// The clock is injectable so tests can reason about capture dates, and every
// request is recorded for inspection.
//
//	api := fakeapi.New(fakeapi.WithAPIKey("test_key"), fakeapi.WithClock(clock))
//	ts := httptest.NewServer(api)
//	defer ts.Close()
package fakeapi
