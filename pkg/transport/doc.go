// Package transport sends parameter sets to the API over HTTP and returns raw
// response bodies.
//
// Transport is the narrow contract the resource engine depends on. HTTPClient
// is the production implementation: it authenticates with the API key using
// HTTP basic auth (key as user name, empty password), encodes GET parameters
// into the query string and POST/PUT/DELETE parameters as a form body, and
// tags every request with an X-Request-ID header.
//
// # Usage
//
//	tr := transport.NewHTTPClient(apiKey,
//	    transport.WithTimeout(10*time.Second),
//	    transport.WithLogger(log),
//	    transport.WithRateLimit(rate.Limit(20), 5),
//	    transport.WithOnRequest(func(r transport.RequestResult) { ... }),
//	)
//	body, err := tr.Get(ctx, "/subscriptions", vals)
//
// # Error Handling
//
// Connectivity, authentication-layer and timeout problems wrap ErrTransport
// (timeouts additionally wrap ErrTimeout). A response with a non-2xx status is
// returned as *StatusError carrying the status code and the body, so the
// caller can decode the API's error envelope. HTTPClient never retries.
package transport
