package transport

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.paymill.com/v2.1"

const defaultUserAgent = "paymill-go/1.0"

// RequestResult describes one completed exchange.
type RequestResult struct {
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	RequestID  string
	Error      error
}

// RequestHook is called after every exchange, successful or not.
type RequestHook func(result RequestResult)

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	limiter    *rate.Limiter
	onRequest  []RequestHook
}

func defaultOptions() *options {
	return &options{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
	}
}

// Option configures an HTTPClient.
type Option func(*options)

// WithBaseURL overrides the API root, e.g. to point at a test server.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout bounds each exchange. Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHTTPClient uses a custom *http.Client for proxies or test transports.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRateLimit throttles outgoing requests to r per second with the given burst.
// The wait respects the request context.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *options) {
		if r <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(r, burst)
	}
}

// WithOnRequest registers a hook notified after each exchange.
func WithOnRequest(h RequestHook) Option {
	return func(o *options) {
		if h != nil {
			o.onRequest = append(o.onRequest, h)
		}
	}
}
