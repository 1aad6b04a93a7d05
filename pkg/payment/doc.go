// Package payment manages stored payment methods (cards and direct debit
// accounts) created from bridge tokens. A subscription charges exactly one
// payment.
package payment
