// Package resource is the generic engine shared by every API resource kind.
//
// A Service[T] binds one collection path (for example "/subscriptions") to a
// transport.Transport and a Decoder. It turns typed requests into parameter
// sets, performs exactly one exchange per call, and decodes the JSON answer
// into T:
//
//	svc := resource.New[Offer]("/offers", tr)
//	list, err := svc.List(ctx, resource.ListOptions{Count: resource.Int(20)})
//	offer, err := svc.Get(ctx, "offer_123")
//
// List responses use the envelope {"data": [...], "data_count": N}. Single
// entity responses are accepted either bare or nested under "data".
//
// # Errors
//
// Failures fall into four classes. Transport failures are returned unchanged
// and wrap transport.ErrTransport. Bodies that are not the expected JSON
// shape wrap ErrDecode. Error envelopes returned by the API become *APIError,
// which wraps ErrRemoteRejection (and ErrNotFound for HTTP 404). Missing ids
// are reported as *validator.ValidationError before any request is made.
package resource
