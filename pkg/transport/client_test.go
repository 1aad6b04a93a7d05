package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/transport"
)

func newClient(t *testing.T, url string, opts ...transport.Option) *transport.HTTPClient {
	t.Helper()
	c, err := transport.NewHTTPClient("test_key", append([]transport.Option{transport.WithBaseURL(url)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("requires api key", func(t *testing.T) {
		t.Parallel()
		_, err := transport.NewHTTPClient("  ")
		assert.ErrorIs(t, err, transport.ErrMissingAPIKey)
	})

	t.Run("rejects invalid base url", func(t *testing.T) {
		t.Parallel()
		_, err := transport.NewHTTPClient("key", transport.WithBaseURL("ftp://example.com"))
		assert.ErrorIs(t, err, transport.ErrInvalidURL)
	})

	t.Run("defaults to production url", func(t *testing.T) {
		t.Parallel()
		c, err := transport.NewHTTPClient("key")
		require.NoError(t, err)
		assert.Equal(t, transport.DefaultBaseURL, c.BaseURL())
	})
}

func TestHTTPClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2.1/subscriptions", r.URL.Path)
		assert.Equal(t, "count=5&order=created_at_desc", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "test_key", user)
		assert.Empty(t, pass)

		_, err := uuid.Parse(r.Header.Get(transport.RequestIDHeader))
		assert.NoError(t, err)

		w.Write([]byte(`{"data":[],"data_count":0}`))
	}))
	defer server.Close()

	var vals params.Values
	vals.Add("count", "5")
	vals.Add("order", "created_at_desc")

	body, err := newClient(t, server.URL+"/v2.1").Get(context.Background(), "/subscriptions", vals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"data_count":0}`, string(body))
}

func TestHTTPClient_FormBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		call   func(c *transport.HTTPClient, vals params.Values) ([]byte, error)
		method string
	}{
		{
			name:   "post",
			method: http.MethodPost,
			call: func(c *transport.HTTPClient, vals params.Values) ([]byte, error) {
				return c.Post(context.Background(), "/subscriptions/sub_1", vals)
			},
		},
		{
			name:   "put",
			method: http.MethodPut,
			call: func(c *transport.HTTPClient, vals params.Values) ([]byte, error) {
				return c.Put(context.Background(), "/subscriptions/sub_1", vals)
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			call: func(c *transport.HTTPClient, vals params.Values) ([]byte, error) {
				return c.Delete(context.Background(), "/subscriptions/sub_1", vals)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, "/subscriptions/sub_1", r.URL.Path)
				assert.Empty(t, r.URL.RawQuery)
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, "pause=true&name=a+b", string(body))

				w.Write([]byte(`{"data":{"id":"sub_1"}}`))
			}))
			defer server.Close()

			var vals params.Values
			vals.Add("pause", "true")
			vals.Add("name", "a b")

			body, err := tt.call(newClient(t, server.URL), vals)
			require.NoError(t, err)
			assert.Contains(t, string(body), "sub_1")
		})
	}
}

func TestHTTPClient_StatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Subscription not found"}`))
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Get(context.Background(), "/subscriptions/missing", params.Values{})
	require.Error(t, err)
	assert.False(t, transport.IsTransport(err))

	se, ok := transport.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, http.MethodGet, se.Method)
	assert.JSONEq(t, `{"error":"Subscription not found"}`, string(se.Body))
}

func TestHTTPClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := newClient(t, server.URL, transport.WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/offers", params.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrTransport)
	assert.True(t, transport.IsTimeout(err))
}

func TestHTTPClient_ConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newClient(t, url).Get(context.Background(), "/offers", params.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrTransport)
	assert.False(t, transport.IsTimeout(err))
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, server.URL).Get(ctx, "/offers", params.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrTransport)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHTTPClient_RequestIDFromContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(transport.RequestIDHeader))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var got transport.RequestResult
	c := newClient(t, server.URL, transport.WithOnRequest(func(r transport.RequestResult) { got = r }))

	ctx := transport.WithRequestID(context.Background(), "req-42")
	_, err := c.Get(ctx, "/clients", params.Values{})
	require.NoError(t, err)

	assert.Equal(t, "req-42", got.RequestID)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/clients", got.Path)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.NoError(t, got.Error)
}

func TestHTTPClient_OnRequestReportsFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	var (
		mu      sync.Mutex
		results []transport.RequestResult
	)
	c := newClient(t, server.URL, transport.WithOnRequest(func(r transport.RequestResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}))

	_, err := c.Post(context.Background(), "/subscriptions", params.Values{})
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1)
	assert.Equal(t, http.StatusBadRequest, results[0].StatusCode)
	assert.Error(t, results[0].Error)
}

func TestHTTPClient_RateLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newClient(t, server.URL, transport.WithRateLimit(20, 1))

	start := time.Now()
	for range 3 {
		_, err := c.Get(context.Background(), "/offers", params.Values{})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRequestIDFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, transport.RequestIDFromContext(context.Background()))

	ctx := transport.WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", transport.RequestIDFromContext(ctx))

	attr, ok := transport.RequestIDExtractor()(ctx)
	assert.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	_, ok = transport.RequestIDExtractor()(context.Background())
	assert.False(t, ok)
}
