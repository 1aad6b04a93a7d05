package payment

import (
	"context"

	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

const Path = "/payments"

// Order keys accepted by the payments collection.
const (
	OrderCreatedAt = "created_at"
)

type Service struct {
	res *resource.Service[Payment]
}

func NewService(tr transport.Transport, opts ...resource.Option) *Service {
	return &Service{res: resource.New[Payment](Path, tr, opts...)}
}

func (s *Service) List(ctx context.Context, opts resource.ListOptions) (*resource.List[Payment], error) {
	return s.res.List(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return s.res.Get(ctx, id)
}

// Create stores the payment method behind a bridge token, optionally
// attached to an existing client.
func (s *Service) Create(ctx context.Context, token string, c *client.Client) (*Payment, error) {
	vals, err := params.NewBuilder().
		Raw("token", token, validator.RequiredString("token", token)).
		Ref("client", c, false).
		Build()
	if err != nil {
		return nil, err
	}
	return s.res.Create(ctx, vals)
}

func (s *Service) Delete(ctx context.Context, p *Payment) error {
	if err := validator.First(validator.RequiredID("payment", p != nil, p.GetID())); err != nil {
		return err
	}
	return s.res.Delete(ctx, p.ID, params.Values{})
}
