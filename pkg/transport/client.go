package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/paymill/pkg/logger"
	"github.com/dmitrymomot/paymill/pkg/params"
)

// maxBodySize caps how much of a response is read into memory.
const maxBodySize = 4 << 20

// HTTPClient is the net/http implementation of Transport.
// It is safe for concurrent use.
type HTTPClient struct {
	apiKey  string
	baseURL *url.URL
	client  *http.Client
	opts    *options
	log     *slog.Logger
}

var _ Transport = (*HTTPClient)(nil)

// NewHTTPClient creates a transport authenticating with apiKey.
func NewHTTPClient(apiKey string, opts ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	base, err := url.Parse(strings.TrimRight(o.baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, o.baseURL)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  client,
		opts:    o,
		log:     logger.OrDiscard(o.logger).With(logger.Component("transport")),
	}, nil
}

// BaseURL returns the configured API root.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *HTTPClient) Get(ctx context.Context, path string, vals params.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, vals)
}

func (c *HTTPClient) Post(ctx context.Context, path string, vals params.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, vals)
}

func (c *HTTPClient) Put(ctx context.Context, path string, vals params.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, vals)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, vals params.Values) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, vals)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, vals params.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, requestID := ensureRequestID(ctx)

	start := time.Now()
	result := RequestResult{Method: method, Path: path, RequestID: requestID}

	body, status, err := c.exchange(ctx, method, path, vals, requestID)
	result.Duration = time.Since(start)
	result.StatusCode = status
	result.Error = err

	for _, hook := range c.opts.onRequest {
		hook(result)
	}

	attrs := []any{
		logger.Method(method),
		logger.Path(path),
		logger.StatusCode(status),
		logger.Duration(result.Duration),
	}
	if err != nil {
		c.log.DebugContext(ctx, "request failed", append(attrs, logger.Error(err))...)
		return nil, err
	}
	c.log.DebugContext(ctx, "request completed", attrs...)
	return body, nil
}

func (c *HTTPClient) exchange(ctx context.Context, method, path string, vals params.Values, requestID string) ([]byte, int, error) {
	if c.opts.limiter != nil {
		if err := c.opts.limiter.Wait(ctx); err != nil {
			return nil, 0, c.wrapErr(ctx, err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	req, err := c.newRequest(reqCtx, method, path, vals)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, c.wrapErr(reqCtx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, c.wrapErr(reqCtx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return body, resp.StatusCode, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, vals params.Values) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	encoded := vals.Encode()

	if method == http.MethodGet {
		u.RawQuery = encoded
		return http.NewRequestWithContext(ctx, method, u.String(), nil)
	}

	var body io.Reader
	if encoded != "" {
		body = strings.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func (c *HTTPClient) wrapErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %w", ErrTransport, ErrTimeout, err)
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %w: %w", ErrTransport, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
