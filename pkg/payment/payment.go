package payment

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/resource"
)

// Type distinguishes cards from direct debit accounts.
type Type string

const (
	TypeCreditCard Type = "creditcard"
	TypeDebit      Type = "debit"
)

// Payment is a stored payment method.
type Payment struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type,omitempty"`
	Client      *client.Client  `json:"client,omitempty"`
	CardType    string          `json:"card_type,omitempty"`
	Country     string          `json:"country,omitempty"`
	ExpireMonth resource.Number `json:"expire_month,omitempty"`
	ExpireYear  resource.Number `json:"expire_year,omitempty"`
	CardHolder  string          `json:"card_holder,omitempty"`
	Last4       string          `json:"last4,omitempty"`
	CreatedAt   resource.Time   `json:"created_at"`
	UpdatedAt   resource.Time   `json:"updated_at"`
	AppID       string          `json:"app_id,omitempty"`
}

// New returns a reference to an existing payment.
func New(id string) *Payment {
	return &Payment{ID: id}
}

// GetID returns the id, or "" for a nil payment.
func (p *Payment) GetID() string {
	if p == nil {
		return ""
	}
	return p.ID
}

// UnmarshalJSON accepts the client either embedded or as a bare id.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	aux := struct {
		*plain
		Client json.RawMessage `json:"client"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c, err := resource.DecodeRef(aux.Client, client.New)
	if err != nil {
		return fmt.Errorf("payment client: %w", err)
	}
	p.Client = c
	return nil
}
