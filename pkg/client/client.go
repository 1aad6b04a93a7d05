package client

import "github.com/dmitrymomot/paymill/pkg/resource"

// Client is a customer record.
type Client struct {
	ID          string        `json:"id"`
	Email       string        `json:"email,omitempty"`
	Description string        `json:"description,omitempty"`
	CreatedAt   resource.Time `json:"created_at"`
	UpdatedAt   resource.Time `json:"updated_at"`
	AppID       string        `json:"app_id,omitempty"`
}

// New returns a reference to an existing client.
func New(id string) *Client {
	return &Client{ID: id}
}

// GetID returns the id, or "" for a nil client.
func (c *Client) GetID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
