package paymill

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
)

type options struct {
	logger        *slog.Logger
	decoder       *resource.Decoder
	registerer    prometheus.Registerer
	transportOpts []transport.Option
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger shared by the transport and every service.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDecoder replaces the response decoder, e.g. resource.NewDecoder(resource.WithStrictFields()).
func WithDecoder(d *resource.Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}

// WithMetrics registers request metrics on reg.
// Ignored by NewWithTransport, which does not own the transport.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithTransportOptions passes options through to the HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transportOpts = append(o.transportOpts, opts...)
	}
}

func (o *options) resourceOptions() []resource.Option {
	var opts []resource.Option
	if o.logger != nil {
		opts = append(opts, resource.WithLogger(o.logger))
	}
	if o.decoder != nil {
		opts = append(opts, resource.WithDecoder(o.decoder))
	}
	return opts
}
