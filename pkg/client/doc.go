// Package client manages API clients: the customers that own payments and
// subscriptions.
//
//	svc := client.NewService(tr)
//	c, err := svc.Create(ctx, "jane@example.com", "Jane")
//
// A *Client with only an id, as returned by New, is enough to reference an
// existing client from other services.
package client
