package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/paymill/pkg/logger"
)

// Request is a recorded incoming request.
type Request struct {
	Method string
	Path   string
	Params url.Values
}

// Server is an http.Handler emulating the API.
type Server struct {
	apiKey string
	log    *slog.Logger
	router chi.Router

	mu            sync.Mutex
	now           func() time.Time
	requests      []Request
	offers        map[string]*offerRecord
	clients       map[string]*clientRecord
	payments      map[string]*paymentRecord
	subscriptions map[string]*subscriptionRecord
	seq           int64
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKey requires basic auth with key as user name. Without it any
// credentials are accepted.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithClock sets the time source used for all timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		now:           time.Now,
		offers:        make(map[string]*offerRecord),
		clients:       make(map[string]*clientRecord),
		payments:      make(map[string]*paymentRecord),
		subscriptions: make(map[string]*subscriptionRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrDiscard(s.log).With(logger.Component("fakeapi"))
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetNow freezes the clock at t.
func (s *Server) SetNow(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = func() time.Time { return t }
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.record, s.authenticate)

	r.Route("/offers", func(r chi.Router) {
		r.Get("/", s.listOffers)
		r.Post("/", s.createOffer)
		r.Get("/{id}", s.getOffer)
		r.Put("/{id}", s.updateOffer)
		r.Delete("/{id}", s.deleteOffer)
	})
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", s.listClients)
		r.Post("/", s.createClient)
		r.Get("/{id}", s.getClient)
		r.Put("/{id}", s.updateClient)
		r.Delete("/{id}", s.deleteClient)
	})
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", s.listPayments)
		r.Post("/", s.createPayment)
		r.Get("/{id}", s.getPayment)
		r.Delete("/{id}", s.deletePayment)
	})
	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", s.listSubscriptions)
		r.Post("/", s.createSubscription)
		r.Get("/{id}", s.getSubscription)
		r.Put("/{id}", s.updateSubscription)
		r.Delete("/{id}", s.deleteSubscription)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "not_found")
	})
	return r
}

// record stores the request with its parameters. Bodies are parsed for
// every method, DELETE included.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vals := r.URL.Query()
		if r.Body != nil && r.Method != http.MethodGet {
			body, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if form, err := url.ParseQuery(string(body)); err == nil {
				for k, v := range form {
					vals[k] = append(vals[k], v...)
				}
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		r.Form = vals

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Params: vals})
		s.mu.Unlock()

		s.log.DebugContext(r.Context(), "request", logger.Method(r.Method), logger.Path(r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" {
			user, _, ok := r.BasicAuth()
			if !ok || user != s.apiKey {
				writeError(w, http.StatusUnauthorized, "Access Denied", "InvalidAuthentication")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) clock() time.Time {
	return time.Unix(s.now().Unix(), 0).UTC()
}

func (s *Server) newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"data": v, "mode": "test"})
}

func writeList(w http.ResponseWriter, items []any, total int) {
	if items == nil {
		items = []any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": items, "data_count": total, "mode": "test"})
}

func writeError(w http.ResponseWriter, status int, msg, exception string) {
	writeJSON(w, status, map[string]any{"error": msg, "exception": exception})
}

func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":     map[string]any{"messages": map[string]string{field: msg}, "field": field},
		"exception": "invalid_" + field,
	})
}
