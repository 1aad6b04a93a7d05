// Package metrics exports Prometheus metrics for API exchanges.
//
// A Collector is fed by the transport request hook:
//
//	m, err := metrics.New(prometheus.DefaultRegisterer)
//	tr, err := transport.NewHTTPClient(key, transport.WithOnRequest(m.Hook()))
//
// Metrics (namespace "paymill" by default):
//
//	requests_total{method,resource,status}
//	request_errors_total{method,resource,kind}   kind: timeout, transport, api
//	request_duration_seconds{method,resource}
//
// The resource label is the collection name only ("subscriptions"), never an id.
package metrics
