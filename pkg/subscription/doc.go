// Package subscription manages recurring charges of a payment: creation from
// an offer or from an explicit amount, currency and interval, and the
// lifecycle operations the API supports afterwards.
//
// # Creating
//
// A subscription needs a payment and a plan. The plan is either an offer or
// the full triple of amount, currency and interval; anything else fails with
// a *validator.ValidationError before a request is sent:
//
//	sub, err := svc.Create(ctx, subscription.Create(pay, gold).
//	    WithClient(cli).
//	    WithStartAt(time.Now().Add(24*time.Hour)))
//
//	sub, err = svc.Create(ctx, subscription.CreateWithAmount(pay, 900, "EUR", interval.MustParse("1 MONTH")).
//	    WithPeriodOfValidity(interval.MustParse("1 YEAR")))
//
// # Lifecycle
//
// Pause, Unpause, ChangeAmount, ChangeOffer, EndTrial, LimitValidity and
// UnlimitValidity each issue one update and overwrite the passed
// *Subscription with the server's answer. Delete either terminates the
// subscription immediately or lets it run until the end of the current period.
//
// Timing rules (changes are refused within 24 hours of the next capture, one
// subscription per client and offer) are enforced by the API only. Their
// rejections surface unchanged as *resource.APIError.
//
// # Listing
//
//	list, err := svc.List(ctx, resource.ListOptions{
//	    Filter: subscription.Filter(subscription.ByOffer(gold)),
//	    Order:  subscription.Order(subscription.OrderCreatedAt, resource.Desc),
//	    Count:  resource.Int(20),
//	})
package subscription
