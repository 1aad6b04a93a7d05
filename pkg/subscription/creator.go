package subscription

import (
	"time"

	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/payment"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

// Creator describes a subscription to create. Each With method returns a
// modified copy, so a Creator can be reused as a template.
type Creator struct {
	payment          *payment.Payment
	client           *client.Client
	offer            *offer.Offer
	amount           *int
	currency         string
	interval         *interval.Interval
	startAt          *time.Time
	name             string
	periodOfValidity *interval.Interval
}

// Create starts a subscription of payment to offer. Amount, currency and
// interval mirror the offer unless overridden.
func Create(p *payment.Payment, o *offer.Offer) Creator {
	return Creator{payment: p, offer: o}
}

// CreateWithAmount starts a subscription without an offer.
func CreateWithAmount(p *payment.Payment, amount int, currency string, iv interval.Interval) Creator {
	return Creator{payment: p, amount: &amount, currency: currency, interval: &iv}
}

func (c Creator) WithClient(cl *client.Client) Creator {
	c.client = cl
	return c
}

func (c Creator) WithOffer(o *offer.Offer) Creator {
	c.offer = o
	return c
}

func (c Creator) WithAmount(amount int) Creator {
	c.amount = &amount
	return c
}

func (c Creator) WithCurrency(currency string) Creator {
	c.currency = currency
	return c
}

func (c Creator) WithInterval(iv interval.Interval) Creator {
	c.interval = &iv
	return c
}

// WithStartAt delays the first capture, or the start of the offer's trial.
func (c Creator) WithStartAt(t time.Time) Creator {
	c.startAt = &t
	return c
}

func (c Creator) WithName(name string) Creator {
	c.name = name
	return c
}

// WithPeriodOfValidity ends the subscription automatically after d.
func (c Creator) WithPeriodOfValidity(d interval.Interval) Creator {
	c.periodOfValidity = &d
	return c
}

func (c Creator) hasPlan() bool {
	if c.offer != nil {
		return true
	}
	return c.amount != nil && c.currency != "" && c.interval != nil
}

// Params validates the creator and encodes it. Validation stops at the
// first failure.
func (c Creator) Params() (params.Values, error) {
	b := params.NewBuilder().Ref("payment", c.payment, true)
	if !c.hasPlan() {
		b.Fail(validator.Field("offer", "an offer or amount, currency and interval must be given", ErrPlanRequired))
	}
	return b.
		Ref("client", c.client, false).
		Ref("offer", c.offer, false).
		Amount("amount", c.amount).
		Currency("currency", c.currency).
		Interval("interval", c.interval).
		Time("start_at", c.startAt).
		String("name", c.name, validator.MaxLenString("name", c.name, 255)).
		Period("period_of_validity", c.periodOfValidity).
		Build()
}
