package subscription

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/payment"
	"github.com/dmitrymomot/paymill/pkg/resource"
)

// Status is the billing state reported by the API.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Subscription is a recurring charge of a payment.
type Subscription struct {
	ID               string            `json:"id"`
	Offer            *offer.Offer      `json:"offer,omitempty"`
	Livemode         bool              `json:"livemode"`
	Amount           int               `json:"amount,omitempty"`
	TempAmount       *int              `json:"temp_amount"`
	Currency         string            `json:"currency,omitempty"`
	Name             string            `json:"name,omitempty"`
	Interval         interval.Interval `json:"interval"`
	PeriodOfValidity interval.Interval `json:"period_of_validity"`
	EndOfPeriod      resource.Time     `json:"end_of_period"`
	TrialStart       resource.Time     `json:"trial_start"`
	TrialEnd         resource.Time     `json:"trial_end"`
	NextCaptureAt    resource.Time     `json:"next_capture_at"`
	CreatedAt        resource.Time     `json:"created_at"`
	UpdatedAt        resource.Time     `json:"updated_at"`
	CanceledAt       resource.Time     `json:"canceled_at"`
	Payment          *payment.Payment  `json:"payment,omitempty"`
	Client           *client.Client    `json:"client,omitempty"`
	AppID            string            `json:"app_id,omitempty"`
	IsCanceled       bool              `json:"is_canceled"`
	IsDeleted        bool              `json:"is_deleted"`
	Status           Status            `json:"status,omitempty"`
	MandateReference string            `json:"mandate_reference,omitempty"`
}

// New returns a reference to an existing subscription.
func New(id string) *Subscription {
	return &Subscription{ID: id}
}

// GetID returns the id, or "" for a nil subscription.
func (s *Subscription) GetID() string {
	if s == nil {
		return ""
	}
	return s.ID
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// InTrialAt reports whether t falls inside the trial window.
func (s *Subscription) InTrialAt(t time.Time) bool {
	if s.TrialEnd.IsZero() {
		return false
	}
	if !s.TrialStart.IsZero() && t.Before(s.TrialStart.Time) {
		return false
	}
	return t.Before(s.TrialEnd.Time)
}

// HasLimitedValidity reports whether the subscription ends automatically.
func (s *Subscription) HasLimitedValidity() bool {
	return !s.PeriodOfValidity.IsZero()
}

// UnmarshalJSON accepts nested offer, payment and client either embedded or
// as bare ids.
func (s *Subscription) UnmarshalJSON(data []byte) error {
	type plain Subscription
	aux := struct {
		*plain
		Offer   json.RawMessage `json:"offer"`
		Payment json.RawMessage `json:"payment"`
		Client  json.RawMessage `json:"client"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if s.Offer, err = resource.DecodeRef(aux.Offer, offer.New); err != nil {
		return fmt.Errorf("subscription offer: %w", err)
	}
	if s.Payment, err = resource.DecodeRef(aux.Payment, payment.New); err != nil {
		return fmt.Errorf("subscription payment: %w", err)
	}
	if s.Client, err = resource.DecodeRef(aux.Client, client.New); err != nil {
		return fmt.Errorf("subscription client: %w", err)
	}
	return nil
}
