package subscription

import (
	"time"

	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/resource"
)

// FilterOption narrows a subscription list.
type FilterOption func(*filter)

type timeRange struct {
	from, to time.Time
}

type filter struct {
	offer      *offer.Offer
	createdAt  *timeRange
	canceledAt *timeRange
}

func (f *filter) ApplyFilter(b *params.Builder) {
	b.Ref("offer", f.offer, false)
	if f.createdAt != nil {
		b.TimeRange("created_at", f.createdAt.from, f.createdAt.to)
	}
	if f.canceledAt != nil {
		b.TimeRange("canceled_at", f.canceledAt.from, f.canceledAt.to)
	}
}

// Filter combines filter options into a resource.Filter.
func Filter(opts ...FilterOption) resource.Filter {
	f := &filter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ByOffer keeps subscriptions of o.
func ByOffer(o *offer.Offer) FilterOption {
	return func(f *filter) { f.offer = o }
}

// CreatedBetween keeps subscriptions created in [from, to]. With a zero to
// only subscriptions created exactly at from match.
func CreatedBetween(from, to time.Time) FilterOption {
	return func(f *filter) { f.createdAt = &timeRange{from: from, to: to} }
}

// CanceledBetween keeps subscriptions canceled in [from, to], with the same
// bound rules as CreatedBetween.
func CanceledBetween(from, to time.Time) FilterOption {
	return func(f *filter) { f.canceledAt = &timeRange{from: from, to: to} }
}

// OrderKey is a sort key accepted by the subscriptions collection.
type OrderKey string

const (
	OrderOffer      OrderKey = "offer"
	OrderCanceledAt OrderKey = "canceled_at"
	OrderCreatedAt  OrderKey = "created_at"
)

// Order sorts subscriptions by key.
func Order(key OrderKey, dir resource.Direction) *resource.Order {
	return resource.OrderBy(string(key), dir)
}
