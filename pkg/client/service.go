package client

import (
	"context"

	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

// Path is the collection path of clients.
const Path = "/clients"

// Order keys accepted by the clients collection.
const (
	OrderEmail     = "email"
	OrderCreatedAt = "created_at"
)

type Service struct {
	res *resource.Service[Client]
}

func NewService(tr transport.Transport, opts ...resource.Option) *Service {
	return &Service{res: resource.New[Client](Path, tr, opts...)}
}

func (s *Service) List(ctx context.Context, opts resource.ListOptions) (*resource.List[Client], error) {
	return s.res.List(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	return s.res.Get(ctx, id)
}

// Create registers a client. Both fields are optional.
func (s *Service) Create(ctx context.Context, email, description string) (*Client, error) {
	vals, err := params.NewBuilder().
		String("email", email, validator.MaxLenString("email", email, 255)).
		String("description", description, validator.MaxLenString("description", description, 255)).
		Build()
	if err != nil {
		return nil, err
	}
	return s.res.Create(ctx, vals)
}

// Update sends the email and description of c and refreshes c from the response.
func (s *Service) Update(ctx context.Context, c *Client) (*Client, error) {
	if err := validator.First(validator.RequiredID("client", c != nil, c.GetID())); err != nil {
		return nil, err
	}
	vals, err := params.NewBuilder().
		String("email", c.Email, validator.MaxLenString("email", c.Email, 255)).
		String("description", c.Description, validator.MaxLenString("description", c.Description, 255)).
		Build()
	if err != nil {
		return nil, err
	}
	return s.res.Update(ctx, c, c.ID, vals)
}

// Delete removes the client.
func (s *Service) Delete(ctx context.Context, c *Client) error {
	if err := validator.First(validator.RequiredID("client", c != nil, c.GetID())); err != nil {
		return err
	}
	return s.res.Delete(ctx, c.ID, params.Values{})
}
