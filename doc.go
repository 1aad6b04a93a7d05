// Package paymill is a client for the PAYMILL payment REST API.
//
// A Client bundles one authenticated transport with a service per resource:
//
//	pm, err := paymill.New(os.Getenv("PAYMILL_API_KEY"))
//	if err != nil {
//		return err
//	}
//
//	o, err := pm.Offers.Create(ctx, 4900, "EUR", interval.MustParse("1 MONTH"), "Pro", nil)
//	c, err := pm.Clients.Create(ctx, "jane@example.com", "")
//	p, err := pm.Payments.Create(ctx, token, c)
//
//	sub, err := pm.Subscriptions.Create(ctx, subscription.Create(p, o).WithClient(c))
//	sub, err = pm.Subscriptions.Pause(ctx, sub)
//	err = pm.Subscriptions.Delete(ctx, sub, true) // cancel at period end
//
// Configuration can come from the environment or a YAML file:
//
//	cfg, err := config.Load()
//	pm, err := paymill.NewFromConfig(cfg, paymill.WithMetrics(prometheus.DefaultRegisterer))
//
// Every operation performs exactly one HTTP exchange. Nothing is retried or
// cached. Local validation failures are reported before any request is sent:
//
//	switch {
//	case paymill.IsValidationError(err):
//	case paymill.IsNotFound(err):
//	case paymill.IsRemoteRejection(err):
//	case paymill.IsTimeout(err):
//	}
package paymill
