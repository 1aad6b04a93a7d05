package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/logger"
	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

const Path = "/subscriptions"

// OfferChangeMode selects how the API settles an offer change. The proration
// itself is computed by the API.
type OfferChangeMode int

const (
	// KeepCaptureDateNoRefund switches the plan now without refund; the next
	// capture date stays.
	KeepCaptureDateNoRefund OfferChangeMode = 0
	// KeepCaptureDateAndRefund switches the plan now and refunds if due; the
	// next capture date stays.
	KeepCaptureDateAndRefund OfferChangeMode = 1
	// ChangeCaptureDateAndRefund switches the plan now, settles pro rata and
	// moves the next capture to now plus the new offer's interval.
	ChangeCaptureDateAndRefund OfferChangeMode = 2
)

func (m OfferChangeMode) String() string {
	switch m {
	case KeepCaptureDateNoRefund:
		return "keep_capture_date_no_refund"
	case KeepCaptureDateAndRefund:
		return "keep_capture_date_and_refund"
	case ChangeCaptureDateAndRefund:
		return "change_capture_date_and_refund"
	default:
		return fmt.Sprintf("offer_change_mode(%d)", int(m))
	}
}

func (m OfferChangeMode) validate() error {
	switch m {
	case KeepCaptureDateNoRefund, KeepCaptureDateAndRefund, ChangeCaptureDateAndRefund:
		return nil
	}
	return ErrInvalidChangeMode
}

const (
	amountChangeTemporary = 0
	amountChangePermanent = 1
)

// periodRemove clears the period of validity.
const periodRemove = "remove"

// Service runs the subscription lifecycle against the API.
type Service struct {
	res *resource.Service[Subscription]
	log *slog.Logger
}

func NewService(tr transport.Transport, opts ...resource.Option) *Service {
	res := resource.New[Subscription](Path, tr, opts...)
	return &Service{res: res, log: res.Logger()}
}

// List returns one page of subscriptions. Empty options send no parameters.
func (s *Service) List(ctx context.Context, opts resource.ListOptions) (*resource.List[Subscription], error) {
	return s.res.List(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id string) (*Subscription, error) {
	return s.res.Get(ctx, id)
}

// Refresh reloads sub in place.
func (s *Service) Refresh(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if err := requireSubscription(sub); err != nil {
		return nil, err
	}
	fresh, err := s.res.Get(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	*sub = *fresh
	return sub, nil
}

// Create validates c locally and creates the subscription.
func (s *Service) Create(ctx context.Context, c Creator) (*Subscription, error) {
	vals, err := c.Params()
	if err != nil {
		return nil, err
	}

	sub, err := s.res.Create(ctx, vals)
	if err != nil {
		s.log.DebugContext(ctx, "subscription create failed", logger.Operation("create"), logger.Error(err))
		return nil, err
	}
	s.log.DebugContext(ctx, "subscription created", logger.Operation("create"), logger.ResourceID(sub.ID))
	return sub, nil
}

// Pause stops captures until Unpause.
func (s *Service) Pause(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return s.update(ctx, "pause", sub, params.NewBuilder().Bool("pause", true))
}

// Unpause resumes captures; the API recomputes the next capture date.
func (s *Service) Unpause(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return s.update(ctx, "unpause", sub, params.NewBuilder().Bool("pause", false))
}

// ChangeAmount sets a new amount. A temporary amount applies to the next
// capture only and is reported as TempAmount; a permanent one replaces Amount.
func (s *Service) ChangeAmount(ctx context.Context, sub *Subscription, amount int, temporary bool) (*Subscription, error) {
	changeType := amountChangePermanent
	if temporary {
		changeType = amountChangeTemporary
	}
	b := params.NewBuilder().
		Amount("amount", &amount).
		Enum("amount_change_type", changeType, amountChangeTemporary, amountChangePermanent)
	return s.update(ctx, "change_amount", sub, b)
}

// ChangeOffer moves sub to o, settled according to mode.
func (s *Service) ChangeOffer(ctx context.Context, sub *Subscription, o *offer.Offer, mode OfferChangeMode) (*Subscription, error) {
	b := params.NewBuilder().
		Ref("offer", o, true).
		Raw("offer_change_type", strconv.Itoa(int(mode)), validator.Check("offer_change_type", mode.validate))
	return s.update(ctx, "change_offer", sub, b)
}

// EndTrial ends the trial now and charges immediately.
func (s *Service) EndTrial(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return s.update(ctx, "end_trial", sub, params.NewBuilder().Bool("trial_end", false))
}

// LimitValidity ends the subscription automatically after period.
func (s *Service) LimitValidity(ctx context.Context, sub *Subscription, period interval.Interval) (*Subscription, error) {
	return s.update(ctx, "limit_validity", sub, params.NewBuilder().Period("period_of_validity", &period))
}

// UnlimitValidity removes the period of validity.
func (s *Service) UnlimitValidity(ctx context.Context, sub *Subscription) (*Subscription, error) {
	return s.update(ctx, "unlimit_validity", sub, params.NewBuilder().Raw("period_of_validity", periodRemove))
}

// Delete terminates sub. With cancelAtPeriodEnd it stays active until the
// end of the current period and is not renewed; otherwise it ends now while
// pending transactions are still charged.
func (s *Service) Delete(ctx context.Context, sub *Subscription, cancelAtPeriodEnd bool) error {
	if err := requireSubscription(sub); err != nil {
		return err
	}
	vals, err := params.NewBuilder().Bool("remove", !cancelAtPeriodEnd).Build()
	if err != nil {
		return err
	}

	log := s.log.With(logger.Operation("delete"), logger.ResourceID(sub.ID))
	if err := s.res.Delete(ctx, sub.ID, vals); err != nil {
		log.DebugContext(ctx, "subscription delete failed", logger.Error(err))
		return err
	}
	log.DebugContext(ctx, "subscription deleted", slog.Bool("cancel_at_period_end", cancelAtPeriodEnd))
	return nil
}

func (s *Service) update(ctx context.Context, op string, sub *Subscription, b *params.Builder) (*Subscription, error) {
	if err := requireSubscription(sub); err != nil {
		return nil, err
	}
	vals, err := b.Build()
	if err != nil {
		return nil, err
	}

	log := s.log.With(logger.Operation(op), logger.ResourceID(sub.ID))
	out, err := s.res.Update(ctx, sub, sub.ID, vals)
	if err != nil {
		log.DebugContext(ctx, "subscription update failed", logger.Error(err))
		return nil, err
	}
	log.DebugContext(ctx, "subscription updated", slog.String("status", string(out.Status)))
	return out, nil
}

func requireSubscription(sub *Subscription) error {
	return validator.First(validator.RequiredID("subscription", sub != nil, sub.GetID()))
}
