package paymill

import (
	"fmt"

	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/config"
	"github.com/dmitrymomot/paymill/pkg/metrics"
	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/payment"
	"github.com/dmitrymomot/paymill/pkg/subscription"
	"github.com/dmitrymomot/paymill/pkg/transport"
)

// Client gives access to every API resource through one transport.
// It is safe for concurrent use when the transport is.
type Client struct {
	Subscriptions *subscription.Service
	Offers        *offer.Service
	Clients       *client.Service
	Payments      *payment.Service

	transport transport.Transport
	metrics   *metrics.Collector
}

// New builds a client talking to the API with the given private key.
func New(apiKey string, opts ...Option) (*Client, error) {
	o := collect(opts)

	var trOpts []transport.Option
	if o.logger != nil {
		trOpts = append(trOpts, transport.WithLogger(o.logger))
	}

	var collector *metrics.Collector
	if o.registerer != nil {
		var err error
		collector, err = metrics.New(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("paymill: register metrics: %w", err)
		}
		trOpts = append(trOpts, transport.WithOnRequest(collector.Hook()))
	}

	tr, err := transport.NewHTTPClient(apiKey, append(trOpts, o.transportOpts...)...)
	if err != nil {
		return nil, err
	}

	c := build(tr, o)
	c.metrics = collector
	return c, nil
}

// NewWithTransport builds a client on top of an existing transport.
func NewWithTransport(tr transport.Transport, opts ...Option) *Client {
	return build(tr, collect(opts))
}

// NewFromConfig validates cfg and builds a client with the configured
// transport settings and logger. Explicit opts take precedence.
func NewFromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithLogger(cfg.Logger()),
		WithTransportOptions(cfg.TransportOptions()...),
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

// Transport returns the transport shared by all services.
func (c *Client) Transport() transport.Transport { return c.transport }

// Metrics returns the request metrics collector, or nil when WithMetrics was not used.
func (c *Client) Metrics() *metrics.Collector { return c.metrics }

func collect(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func build(tr transport.Transport, o *options) *Client {
	ro := o.resourceOptions()
	return &Client{
		Subscriptions: subscription.NewService(tr, ro...),
		Offers:        offer.NewService(tr, ro...),
		Clients:       client.NewService(tr, ro...),
		Payments:      payment.NewService(tr, ro...),
		transport:     tr,
	}
}
