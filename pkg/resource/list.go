package resource

import (
	"github.com/dmitrymomot/paymill/pkg/params"
)

// List is one page of a collection.
type List[T any] struct {
	Items []T
	// TotalCount is the number of matching entities on the server, not the
	// length of Items.
	TotalCount int
}

// Filter contributes resource-specific filter parameters to a list request.
type Filter interface {
	ApplyFilter(b *params.Builder)
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(b *params.Builder)

func (f FilterFunc) ApplyFilter(b *params.Builder) { f(b) }

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts a list by one key. The zero value means "server default".
type Order struct {
	Key       string
	Direction Direction
}

// OrderBy creates an order; an empty direction means ascending.
func OrderBy(key string, dir Direction) *Order {
	if dir == "" {
		dir = Asc
	}
	return &Order{Key: key, Direction: dir}
}

// String returns the wire token, e.g. "created_at_desc".
func (o Order) String() string {
	if o.Key == "" {
		return ""
	}
	dir := o.Direction
	if dir == "" {
		dir = Asc
	}
	return o.Key + "_" + string(dir)
}

// ListOptions selects a page of a collection. Nil fields are not sent.
type ListOptions struct {
	Filter Filter
	Order  *Order
	Count  *int
	Offset *int
}

// Params encodes the options. Nothing is emitted for absent fields.
func (o ListOptions) Params() (params.Values, error) {
	b := params.NewBuilder()
	if o.Filter != nil {
		o.Filter.ApplyFilter(b)
	}
	if o.Order != nil {
		b.String("order", o.Order.String())
	}
	b.Int("count", o.Count)
	b.Int("offset", o.Offset)
	return b.Build()
}

// Int returns a pointer to n, for ListOptions.Count and Offset.
func Int(n int) *int { return &n }
