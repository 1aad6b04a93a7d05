package resource

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/paymill/pkg/logger"
	"github.com/dmitrymomot/paymill/pkg/params"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

// Service performs CRUD exchanges for one resource kind.
// It is safe for concurrent use if its transport is.
type Service[T any] struct {
	path    string
	name    string
	tr      transport.Transport
	decoder *Decoder
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	decoder *Decoder
	logger  *slog.Logger
}

func WithDecoder(d *Decoder) Option {
	return func(o *serviceOptions) {
		if d != nil {
			o.decoder = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a service for the collection at path, e.g. "/offers".
func New[T any](path string, tr transport.Transport, opts ...Option) *Service[T] {
	o := &serviceOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.decoder == nil {
		o.decoder = NewDecoder()
	}

	path = "/" + strings.Trim(path, "/")
	name := strings.TrimPrefix(path, "/")
	return &Service[T]{
		path:    path,
		name:    name,
		tr:      tr,
		decoder: o.decoder,
		log:     logger.OrDiscard(o.logger).With(logger.Resource(name)),
	}
}

// Path returns the collection path.
func (s *Service[T]) Path() string { return s.path }

// Logger returns the service logger, already tagged with the resource name.
func (s *Service[T]) Logger() *slog.Logger { return s.log }

// List fetches one page of the collection.
func (s *Service[T]) List(ctx context.Context, opts ListOptions) (*List[T], error) {
	vals, err := opts.Params()
	if err != nil {
		return nil, err
	}

	body, err := s.tr.Get(ctx, s.path, vals)
	if err != nil {
		return nil, s.remoteErr(err)
	}

	items := []T{}
	total, err := s.decoder.List(body, &items)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "listed", logger.Count(len(items)))
	return &List[T]{Items: items, TotalCount: total}, nil
}

// Get fetches one entity by id.
func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	body, err := s.tr.Get(ctx, s.entityPath(id), params.Values{})
	if err != nil {
		return nil, s.remoteErr(err)
	}
	return s.decode(body)
}

// Create posts vals to the collection and returns the created entity.
func (s *Service[T]) Create(ctx context.Context, vals params.Values) (*T, error) {
	body, err := s.tr.Post(ctx, s.path, vals)
	if err != nil {
		return nil, s.remoteErr(err)
	}
	return s.decode(body)
}

// Update puts vals to the entity with the given id and overwrites *entity
// with the server representation. When entity is nil a new value is returned.
func (s *Service[T]) Update(ctx context.Context, entity *T, id string, vals params.Values) (*T, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	body, err := s.tr.Put(ctx, s.entityPath(id), vals)
	if err != nil {
		return nil, s.remoteErr(err)
	}
	fresh, err := s.decode(body)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return fresh, nil
	}
	*entity = *fresh
	return entity, nil
}

// Delete removes the entity with the given id. The response body is only
// inspected for an error envelope.
func (s *Service[T]) Delete(ctx context.Context, id string, vals params.Values) error {
	if err := requireID(id); err != nil {
		return err
	}
	body, err := s.tr.Delete(ctx, s.entityPath(id), vals)
	if err != nil {
		return s.remoteErr(err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	var discard map[string]any
	if err := s.decoder.Entity(body, &discard); err != nil && !errors.Is(err, ErrDecode) {
		return err
	}
	return nil
}

func (s *Service[T]) decode(body []byte) (*T, error) {
	v := new(T)
	if err := s.decoder.Entity(body, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service[T]) entityPath(id string) string {
	return s.path + "/" + url.PathEscape(id)
}

// remoteErr converts a non-2xx transport answer into *APIError.
func (s *Service[T]) remoteErr(err error) error {
	if se, ok := transport.AsStatusError(err); ok {
		return s.decoder.Error(se.StatusCode, se.Body)
	}
	return err
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return validator.Field("id", "is required", validator.ErrFieldRequired)
	}
	return nil
}
