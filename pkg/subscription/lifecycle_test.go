package subscription_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paymill/internal/fakeapi"
	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/interval"
	"github.com/dmitrymomot/paymill/pkg/offer"
	"github.com/dmitrymomot/paymill/pkg/payment"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/subscription"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

func unix(sec int64) time.Time { return time.Unix(sec, 0) }

var epoch = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type harness struct {
	api      *fakeapi.Server
	subs     *subscription.Service
	offers   *offer.Service
	clients  *client.Service
	payments *payment.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	api := fakeapi.New(fakeapi.WithAPIKey("test_key"))
	api.SetNow(epoch)
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	tr, err := transport.NewHTTPClient("test_key", transport.WithBaseURL(ts.URL))
	require.NoError(t, err)

	return &harness{
		api:      api,
		subs:     subscription.NewService(tr),
		offers:   offer.NewService(tr),
		clients:  client.NewService(tr),
		payments: payment.NewService(tr),
	}
}

func (h *harness) offer(t *testing.T, amount int, iv string, trialDays *int) *offer.Offer {
	t.Helper()
	o, err := h.offers.Create(context.Background(), amount, "EUR", interval.MustParse(iv), "Plan "+iv, trialDays)
	require.NoError(t, err)
	return o
}

func (h *harness) payment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := h.payments.Create(context.Background(), "tok_test", nil)
	require.NoError(t, err)
	return p
}

func TestLifecycle_CreateMirrorsOffer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	o := h.offer(t, 900, "1 MONTH", nil)
	pay := h.payment(t)

	sub, err := h.subs.Create(ctx, subscription.Create(pay, o))
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, 900, sub.Amount)
	assert.Equal(t, "EUR", sub.Currency)
	assert.Equal(t, interval.New(1, interval.Month), sub.Interval)
	assert.Equal(t, o.ID, sub.Offer.GetID())
	assert.Equal(t, pay.ID, sub.Payment.GetID())
	assert.Equal(t, pay.Client.GetID(), sub.Client.GetID())
	assert.Equal(t, subscription.StatusActive, sub.Status)
	assert.Equal(t, epoch.AddDate(0, 1, 0).Unix(), sub.NextCaptureAt.Unix())
}

func TestLifecycle_CreateWithoutOffer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	sub, err := h.subs.Create(context.Background(),
		subscription.CreateWithAmount(h.payment(t), 1500, "USD", interval.Weekly(1, interval.Monday)).
			WithName("Weekly box").
			WithPeriodOfValidity(interval.MustParse("1 YEAR")))
	require.NoError(t, err)

	assert.Nil(t, sub.Offer)
	assert.Equal(t, 1500, sub.Amount)
	assert.Equal(t, "Weekly box", sub.Name)
	assert.Equal(t, interval.Weekly(1, interval.Monday), sub.Interval)
	assert.True(t, sub.HasLimitedValidity())
	assert.Equal(t, epoch.AddDate(1, 0, 0).Unix(), sub.EndOfPeriod.Unix())
}

func TestLifecycle_CreateWithoutPlanIssuesNoRequest(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	pay := h.payment(t)
	before := len(h.api.Requests())

	_, err := h.subs.Create(context.Background(), subscription.Create(pay, nil).WithAmount(900).WithCurrency("EUR"))
	require.Error(t, err)
	assert.True(t, validator.IsValidationError(err))
	assert.Len(t, h.api.Requests(), before)
}

func TestLifecycle_ChangeAmount(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	sub, err := h.subs.Create(ctx, subscription.Create(h.payment(t), h.offer(t, 900, "1 MONTH", nil)))
	require.NoError(t, err)

	_, err = h.subs.ChangeAmount(ctx, sub, 2000, true)
	require.NoError(t, err)
	assert.Equal(t, 900, sub.Amount)
	require.NotNil(t, sub.TempAmount)
	assert.Equal(t, 2000, *sub.TempAmount)

	_, err = h.subs.ChangeAmount(ctx, sub, 2000, false)
	require.NoError(t, err)
	assert.Equal(t, 2000, sub.Amount)
	assert.Nil(t, sub.TempAmount)
}

func TestLifecycle_PauseUnpause(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	sub, err := h.subs.Create(ctx, subscription.Create(h.payment(t), h.offer(t, 900, "1 WEEK", nil)))
	require.NoError(t, err)

	_, err = h.subs.Pause(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusInactive, sub.Status)

	later := epoch.Add(10 * 24 * time.Hour)
	h.api.SetNow(later)

	_, err = h.subs.Unpause(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, sub.Status)
	assert.Equal(t, later.AddDate(0, 0, 7).Unix(), sub.NextCaptureAt.Unix())
}

func TestLifecycle_ChangeOffer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	monthly := h.offer(t, 900, "1 MONTH", nil)
	yearly := h.offer(t, 9000, "1 YEAR", nil)
	weekly := h.offer(t, 300, "2 WEEK", nil)

	sub, err := h.subs.Create(ctx, subscription.Create(h.payment(t), monthly))
	require.NoError(t, err)
	prior := sub.NextCaptureAt.Unix()

	_, err = h.subs.ChangeOffer(ctx, sub, yearly, subscription.KeepCaptureDateAndRefund)
	require.NoError(t, err)
	assert.Equal(t, yearly.ID, sub.Offer.GetID())
	assert.Equal(t, 9000, sub.Amount)
	assert.Equal(t, prior, sub.NextCaptureAt.Unix())

	now := epoch.Add(3 * 24 * time.Hour)
	h.api.SetNow(now)

	_, err = h.subs.ChangeOffer(ctx, sub, weekly, subscription.ChangeCaptureDateAndRefund)
	require.NoError(t, err)
	assert.Equal(t, interval.New(2, interval.Week), sub.Interval)
	assert.Equal(t, now.AddDate(0, 0, 14).Unix(), sub.NextCaptureAt.Unix())
}

func TestLifecycle_ChangesRejectedCloseToCapture(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	assertTooLate := func(t *testing.T, sub *subscription.Subscription, op func() (*subscription.Subscription, error)) {
		t.Helper()
		before := *sub
		got, err := op()
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, resource.IsRemoteRejection(err))
		ae, ok := resource.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
		assert.Equal(t, "subscription_change_too_late", ae.Exception)
		assert.Contains(t, ae.Message, "within 24 hours of the next capture")
		assert.Equal(t, before, *sub)
	}

	soon, err := h.subs.Create(ctx,
		subscription.CreateWithAmount(h.payment(t), 900, "EUR", interval.MustParse("1 MONTH")).
			WithStartAt(epoch.Add(12*time.Hour)))
	require.NoError(t, err)
	other := h.offer(t, 1900, "1 MONTH", nil)

	assertTooLate(t, soon, func() (*subscription.Subscription, error) {
		return h.subs.ChangeAmount(ctx, soon, 2000, false)
	})
	assertTooLate(t, soon, func() (*subscription.Subscription, error) {
		return h.subs.Pause(ctx, soon)
	})
	assertTooLate(t, soon, func() (*subscription.Subscription, error) {
		return h.subs.ChangeOffer(ctx, soon, other, subscription.KeepCaptureDateNoRefund)
	})
	assert.Equal(t, 900, soon.Amount)
	assert.Nil(t, soon.Offer)

	paused, err := h.subs.Create(ctx,
		subscription.CreateWithAmount(h.payment(t), 900, "EUR", interval.MustParse("1 MONTH")).
			WithStartAt(epoch.Add(72*time.Hour)))
	require.NoError(t, err)
	_, err = h.subs.Pause(ctx, paused)
	require.NoError(t, err)
	require.Equal(t, subscription.StatusInactive, paused.Status)

	h.api.SetNow(epoch.Add(49 * time.Hour))
	assertTooLate(t, paused, func() (*subscription.Subscription, error) {
		return h.subs.Unpause(ctx, paused)
	})
	assert.Equal(t, subscription.StatusInactive, paused.Status)
}

func TestLifecycle_OneSubscriptionPerClientAndOffer(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	o := h.offer(t, 900, "1 MONTH", nil)
	pay := h.payment(t)

	_, err := h.subs.Create(ctx, subscription.Create(pay, o))
	require.NoError(t, err)

	_, err = h.subs.Create(ctx, subscription.Create(pay, o))
	require.Error(t, err)
	assert.True(t, resource.IsRemoteRejection(err))
	assert.False(t, resource.IsNotFound(err))
}

func TestLifecycle_EndTrial(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	sub, err := h.subs.Create(ctx, subscription.Create(h.payment(t), h.offer(t, 900, "1 MONTH", resource.Int(14))))
	require.NoError(t, err)
	assert.True(t, sub.InTrialAt(epoch.Add(time.Hour)))
	assert.Equal(t, epoch.AddDate(0, 0, 14).Unix(), sub.NextCaptureAt.Unix())

	now := epoch.Add(2 * 24 * time.Hour)
	h.api.SetNow(now)

	_, err = h.subs.EndTrial(ctx, sub)
	require.NoError(t, err)
	assert.True(t, sub.TrialEnd.IsZero())
	assert.False(t, sub.InTrialAt(now))
	assert.Equal(t, now.Unix(), sub.NextCaptureAt.Unix())

	last, ok := h.api.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "false", last.Params.Get("trial_end"))
}

func TestLifecycle_Validity(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	sub, err := h.subs.Create(ctx, subscription.Create(h.payment(t), h.offer(t, 900, "1 MONTH", nil)))
	require.NoError(t, err)
	assert.False(t, sub.HasLimitedValidity())

	_, err = h.subs.LimitValidity(ctx, sub, interval.MustParse("6 MONTH"))
	require.NoError(t, err)
	assert.Equal(t, interval.New(6, interval.Month), sub.PeriodOfValidity)
	assert.Equal(t, epoch.AddDate(0, 6, 0).Unix(), sub.EndOfPeriod.Unix())

	_, err = h.subs.UnlimitValidity(ctx, sub)
	require.NoError(t, err)
	assert.False(t, sub.HasLimitedValidity())
	assert.True(t, sub.EndOfPeriod.IsZero())
}

func TestLifecycle_Delete(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	monthly := h.offer(t, 900, "1 MONTH", nil)
	weekly := h.offer(t, 300, "1 WEEK", nil)
	pay := h.payment(t)

	atEnd, err := h.subs.Create(ctx, subscription.Create(pay, monthly))
	require.NoError(t, err)
	now, err := h.subs.Create(ctx, subscription.Create(pay, weekly))
	require.NoError(t, err)

	require.NoError(t, h.subs.Delete(ctx, atEnd, true))
	last, ok := h.api.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "false", last.Params.Get("remove"))

	_, err = h.subs.Refresh(ctx, atEnd)
	require.NoError(t, err)
	assert.True(t, atEnd.IsCanceled)
	assert.False(t, atEnd.IsDeleted)
	assert.Equal(t, atEnd.NextCaptureAt.Unix(), atEnd.EndOfPeriod.Unix())

	require.NoError(t, h.subs.Delete(ctx, now, false))
	_, err = h.subs.Get(ctx, now.ID)
	assert.True(t, resource.IsNotFound(err))
}

func TestLifecycle_List(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	gold := h.offer(t, 900, "1 MONTH", nil)
	silver := h.offer(t, 500, "1 MONTH", nil)

	for i, o := range []*offer.Offer{gold, silver, gold} {
		h.api.SetNow(epoch.Add(time.Duration(i) * time.Hour))
		_, err := h.subs.Create(ctx, subscription.Create(h.payment(t), o))
		require.NoError(t, err)
	}

	all, err := h.subs.List(ctx, resource.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 3, all.TotalCount)

	last, ok := h.api.LastRequest()
	require.True(t, ok)
	assert.Empty(t, last.Params)

	golds, err := h.subs.List(ctx, resource.ListOptions{
		Filter: subscription.Filter(subscription.ByOffer(gold)),
		Order:  subscription.Order(subscription.OrderCreatedAt, resource.Desc),
	})
	require.NoError(t, err)
	require.Len(t, golds.Items, 2)
	assert.True(t, golds.Items[0].CreatedAt.After(golds.Items[1].CreatedAt.Time))

	paged, err := h.subs.List(ctx, resource.ListOptions{Count: resource.Int(1), Offset: resource.Int(1)})
	require.NoError(t, err)
	assert.Len(t, paged.Items, 1)
	assert.Equal(t, 3, paged.TotalCount)

	created, err := h.subs.List(ctx, resource.ListOptions{
		Filter: subscription.Filter(subscription.CreatedBetween(epoch.Add(30*time.Minute), epoch.Add(3*time.Hour))),
	})
	require.NoError(t, err)
	assert.Len(t, created.Items, 2)
}
