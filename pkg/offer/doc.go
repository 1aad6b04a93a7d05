// Package offer manages offers: reusable billing plans with an amount, a
// currency, an interval and an optional trial length.
//
// Subscriptions created from an offer mirror its amount, currency and
// interval unless they override them.
package offer
