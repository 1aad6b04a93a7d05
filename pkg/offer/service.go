package offer

import (
	"context"

	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

const Path = "/offers"

// Order keys accepted by the offers collection.
const (
	OrderName            = "name"
	OrderInterval        = "interval"
	OrderAmount          = "amount"
	OrderCreatedAt       = "created_at"
	OrderTrialPeriodDays = "trial_period_days"
)

type Service struct {
	res *resource.Service[Offer]
}

func NewService(tr transport.Transport, opts ...resource.Option) *Service {
	return &Service{res: resource.New[Offer](Path, tr, opts...)}
}

func (s *Service) List(ctx context.Context, opts resource.ListOptions) (*resource.List[Offer], error) {
	return s.res.List(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id string) (*Offer, error) {
	return s.res.Get(ctx, id)
}

// Create registers an offer. trialPeriodDays is optional.
func (s *Service) Create(ctx context.Context, amount int, currency string, iv interval.Interval, name string, trialPeriodDays *int) (*Offer, error) {
	vals, err := params.NewBuilder().
		Amount("amount", &amount).
		Raw("currency", currency,
			validator.RequiredString("currency", currency),
			validator.ValidCurrencyCode("currency", currency)).
		Interval("interval", &iv).
		Raw("name", name, validator.RequiredString("name", name)).
		Int("trial_period_days", trialPeriodDays).
		Build()
	if err != nil {
		return nil, err
	}
	return s.res.Create(ctx, vals)
}

// Update renames the offer and refreshes o from the response.
// With updateSubscriptions the new name is propagated to its subscriptions.
func (s *Service) Update(ctx context.Context, o *Offer, updateSubscriptions bool) (*Offer, error) {
	if err := validator.First(validator.RequiredID("offer", o != nil, o.GetID())); err != nil {
		return nil, err
	}
	vals, err := params.NewBuilder().
		Raw("name", o.Name, validator.RequiredString("name", o.Name)).
		Bool("update_subscriptions", updateSubscriptions).
		Build()
	if err != nil {
		return nil, err
	}
	return s.res.Update(ctx, o, o.ID, vals)
}

// Delete removes the offer. With removeWithSubscriptions its subscriptions
// are removed as well; otherwise they keep running.
func (s *Service) Delete(ctx context.Context, o *Offer, removeWithSubscriptions bool) error {
	if err := validator.First(validator.RequiredID("offer", o != nil, o.GetID())); err != nil {
		return err
	}
	vals, err := params.NewBuilder().Bool("remove_with_subscriptions", removeWithSubscriptions).Build()
	if err != nil {
		return err
	}
	return s.res.Delete(ctx, o.ID, vals)
}
