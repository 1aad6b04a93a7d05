package offer

import (
	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/resource"
)

// Offer is a billing plan.
type Offer struct {
	ID                string            `json:"id"`
	Name              string            `json:"name,omitempty"`
	Amount            int               `json:"amount,omitempty"`
	Currency          string            `json:"currency,omitempty"`
	Interval          interval.Interval `json:"interval"`
	TrialPeriodDays   *int              `json:"trial_period_days,omitempty"`
	CreatedAt         resource.Time     `json:"created_at"`
	UpdatedAt         resource.Time     `json:"updated_at"`
	SubscriptionCount SubscriptionCount `json:"subscription_count"`
	AppID             string            `json:"app_id,omitempty"`
}

// SubscriptionCount reports how many subscriptions use the offer.
type SubscriptionCount struct {
	Active   resource.Number `json:"active"`
	Inactive resource.Number `json:"inactive"`
}

// New returns a reference to an existing offer.
func New(id string) *Offer {
	return &Offer{ID: id}
}

// GetID returns the id, or "" for a nil offer.
func (o *Offer) GetID() string {
	if o == nil {
		return ""
	}
	return o.ID
}
