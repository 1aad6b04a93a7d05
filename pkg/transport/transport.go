package transport

import (
	"context"

	"github.com/dmitrymomot/paymill/pkg/params"
)

// Transport performs one HTTP exchange against a path relative to the API
// base URL and returns the raw response body.
type Transport interface {
	Get(ctx context.Context, path string, vals params.Values) ([]byte, error)
	Post(ctx context.Context, path string, vals params.Values) ([]byte, error)
	Put(ctx context.Context, path string, vals params.Values) ([]byte, error)
	Delete(ctx context.Context, path string, vals params.Values) ([]byte, error)
}
