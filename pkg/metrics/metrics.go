package metrics

import (
	"errors"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/paymill/pkg/transport"
)

// Collector records transport results.
type Collector struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

type options struct {
	namespace string
	buckets   []float64
}

type Option func(*options)

func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithBuckets overrides the latency histogram buckets, in seconds.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		if len(b) > 0 {
			o.buckets = b
		}
	}
}

// New creates a collector and registers it on reg. A nil reg skips registration.
func New(reg prometheus.Registerer, opts ...Option) (*Collector, error) {
	o := &options{
		namespace: "paymill",
		buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}
	for _, opt := range opts {
		opt(o)
	}

	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "requests_total",
				Help:      "API requests by method, resource and HTTP status.",
			},
			[]string{"method", "resource", "status"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "request_errors_total",
				Help:      "Failed API requests by kind (timeout/transport/api).",
			},
			[]string{"method", "resource", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      "request_duration_seconds",
				Help:      "API request latency.",
				Buckets:   o.buckets,
			},
			[]string{"method", "resource"},
		),
	}

	if reg != nil {
		for _, col := range []prometheus.Collector{c.requests, c.errors, c.duration} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Observe records one exchange.
func (c *Collector) Observe(r transport.RequestResult) {
	res := resourceName(r.Path)
	status := "none"
	if r.StatusCode > 0 {
		status = strconv.Itoa(r.StatusCode)
	}

	c.requests.WithLabelValues(r.Method, res, status).Inc()
	c.duration.WithLabelValues(r.Method, res).Observe(r.Duration.Seconds())
	if r.Error != nil {
		c.errors.WithLabelValues(r.Method, res, errorKind(r.Error)).Inc()
	}
}

// Hook adapts Observe to transport.WithOnRequest.
func (c *Collector) Hook() transport.RequestHook {
	return c.Observe
}

func resourceName(path string) string {
	p := strings.Trim(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "unknown"
	}
	return p
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, transport.ErrTimeout):
		return "timeout"
	case errors.Is(err, transport.ErrTransport):
		return "transport"
	default:
		return "api"
	}
}
