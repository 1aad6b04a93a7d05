package fakeapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/currency"

	"github.com/dmitrymomot/paymill/pkg/interval"
)

// changeCutoff is how close to the next capture amount and offer changes
// are still accepted.
const changeCutoff = 24 * time.Hour

func (sub *subscriptionRecord) cancel(now time.Time, remove bool) {
	sub.canceled = true
	sub.canceledAt = now
	sub.updatedAt = now
	if remove {
		sub.deleted = true
		sub.nextCaptureAt = time.Time{}
		return
	}
	sub.endOfPeriod = sub.nextCaptureAt
}

// tooLate reports whether the next capture is due within the cutoff.
// A capture date already in the past (e.g. while paused) does not block.
func (sub *subscriptionRecord) tooLate(now time.Time) bool {
	if sub.nextCaptureAt.IsZero() {
		return false
	}
	left := sub.nextCaptureAt.Sub(now)
	return left >= 0 && left < changeCutoff
}

func writeTooLate(w http.ResponseWriter, change string) {
	writeError(w, http.StatusBadRequest, change+" is not allowed within 24 hours of the next capture", "subscription_change_too_late")
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var createdFrom, createdTo, canceledFrom, canceledTo int64
	var err error
	if v := r.Form.Get("created_at"); v != "" {
		if createdFrom, createdTo, err = timeRange(v); err != nil {
			writeFieldError(w, "created_at", "Invalid range")
			return
		}
	}
	if v := r.Form.Get("canceled_at"); v != "" {
		if canceledFrom, canceledTo, err = timeRange(v); err != nil {
			writeFieldError(w, "canceled_at", "Invalid range")
			return
		}
	}
	offerID := r.Form.Get("offer")

	items := make([]*subscriptionRecord, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		if sub.deleted {
			continue
		}
		if offerID != "" && sub.offerID != offerID {
			continue
		}
		if r.Form.Has("created_at") && !within(sub.createdAt, createdFrom, createdTo) {
			continue
		}
		if r.Form.Has("canceled_at") && (sub.canceledAt.IsZero() || !within(sub.canceledAt, canceledFrom, canceledTo)) {
			continue
		}
		items = append(items, sub)
	}

	err = sortBy(items, r.Form.Get("order"), func(sub *subscriptionRecord) int64 { return sub.seq }, map[string]func(*subscriptionRecord) string{
		"offer":       func(sub *subscriptionRecord) string { return sub.offerID },
		"canceled_at": func(sub *subscriptionRecord) string { return sortableTime(sub.canceledAt) },
		"created_at":  func(sub *subscriptionRecord) string { return sortableTime(sub.createdAt) },
	})
	if err != nil {
		writeParamError(w, err)
		return
	}
	paged, total, err := page(items, r.Form)
	if err != nil {
		writeParamError(w, err)
		return
	}
	out := make([]any, 0, len(paged))
	for _, sub := range paged {
		out = append(out, sub.render(s))
	}
	writeList(w, out, total)
}

func within(t time.Time, from, to int64) bool {
	sec := t.Unix()
	return sec >= from && sec <= to
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := r.Form
	now := s.clock()

	p, ok := s.payments[f.Get("payment")]
	if !ok {
		writeFieldError(w, "payment", "Payment not found")
		return
	}

	clientID := p.clientID
	if id := f.Get("client"); id != "" {
		if _, ok := s.clients[id]; !ok {
			writeError(w, http.StatusNotFound, "Client not found", "client_not_found")
			return
		}
		clientID = id
	}

	sub := &subscriptionRecord{
		paymentID: p.id,
		clientID:  clientID,
		name:      f.Get("name"),
		createdAt: now,
		updatedAt: now,
		startAt:   now,
	}

	var trialDays int
	if id := f.Get("offer"); id != "" {
		o, ok := s.offers[id]
		if !ok {
			writeError(w, http.StatusNotFound, "Offer not found", "offer_not_found")
			return
		}
		for _, other := range s.subscriptions {
			if other.offerID == o.id && other.clientID == clientID && !other.canceled {
				writeError(w, http.StatusConflict, "Client already has an active subscription for this offer", "subscription_already_exists")
				return
			}
		}
		sub.offerID = o.id
		sub.amount = o.amount
		sub.currency = o.currency
		sub.interval = o.interval
		trialDays = o.trialPeriodDays
		if sub.name == "" {
			sub.name = o.name
		}
	}

	if v := f.Get("amount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeFieldError(w, "amount", "Amount must be a positive integer")
			return
		}
		sub.amount = n
	}
	if v := f.Get("currency"); v != "" {
		if _, err := currency.ParseISO(v); err != nil {
			writeFieldError(w, "currency", "Invalid currency")
			return
		}
		sub.currency = strings.ToUpper(v)
	}
	if v := f.Get("interval"); v != "" {
		iv, err := interval.Parse(v)
		if err != nil {
			writeFieldError(w, "interval", "Invalid interval")
			return
		}
		sub.interval = iv
	}
	if sub.amount == 0 || sub.currency == "" || sub.interval.IsZero() {
		writeError(w, http.StatusBadRequest, "Either an offer or amount, currency and interval must be provided", "subscription_plan_missing")
		return
	}

	if v := f.Get("start_at"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeFieldError(w, "start_at", "Invalid timestamp")
			return
		}
		sub.startAt = time.Unix(sec, 0).UTC()
	}

	switch {
	case trialDays > 0:
		sub.trialStart = sub.startAt
		sub.trialEnd = sub.startAt.AddDate(0, 0, trialDays)
		sub.nextCaptureAt = sub.trialEnd
	case sub.startAt.After(now):
		sub.nextCaptureAt = sub.startAt
	default:
		// first period is captured on creation
		sub.nextCaptureAt = sub.interval.AddTo(now)
	}

	if v := f.Get("period_of_validity"); v != "" {
		iv, err := interval.Parse(v)
		if err != nil || iv.HasWeekday() {
			writeFieldError(w, "period_of_validity", "Invalid period")
			return
		}
		sub.periodOfValidity = iv
		sub.endOfPeriod = iv.AddTo(sub.startAt)
	}

	sub.seq = s.nextSeq()
	sub.id = s.newID("sub")
	s.subscriptions[sub.id] = sub
	writeData(w, sub.render(s))
}

func (s *Server) findSubscription(w http.ResponseWriter, r *http.Request) (*subscriptionRecord, bool) {
	sub, ok := s.subscriptions[chi.URLParam(r, "id")]
	if !ok || sub.deleted {
		writeError(w, http.StatusNotFound, "Subscription not found", "subscription_not_found")
		return nil, false
	}
	return sub, true
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.findSubscription(w, r)
	if !ok {
		return
	}
	writeData(w, sub.render(s))
}

func (s *Server) updateSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.findSubscription(w, r)
	if !ok {
		return
	}
	if sub.canceled {
		writeError(w, http.StatusBadRequest, "Subscription is canceled", "subscription_canceled")
		return
	}

	f := r.Form
	now := s.clock()

	switch {
	case f.Has("pause"):
		pause := f.Get("pause") == "true"
		if sub.tooLate(now) {
			writeTooLate(w, "Pausing or unpausing")
			return
		}
		if !pause && sub.paused {
			sub.nextCaptureAt = sub.interval.AddTo(now)
		}
		sub.paused = pause

	case f.Has("amount"):
		amount, err := strconv.Atoi(f.Get("amount"))
		if err != nil || amount <= 0 {
			writeFieldError(w, "amount", "Amount must be a positive integer")
			return
		}
		if sub.tooLate(now) {
			writeTooLate(w, "Changing the amount")
			return
		}
		switch f.Get("amount_change_type") {
		case "0":
			sub.tempAmount = &amount
		case "1":
			sub.amount = amount
			sub.tempAmount = nil
		default:
			writeFieldError(w, "amount_change_type", "Invalid amount change type")
			return
		}

	case f.Has("offer"):
		o, ok := s.offers[f.Get("offer")]
		if !ok {
			writeError(w, http.StatusNotFound, "Offer not found", "offer_not_found")
			return
		}
		mode := f.Get("offer_change_type")
		if mode != "0" && mode != "1" && mode != "2" {
			writeFieldError(w, "offer_change_type", "Invalid offer change type")
			return
		}
		if sub.tooLate(now) {
			writeTooLate(w, "Changing the offer")
			return
		}
		sub.offerID = o.id
		sub.amount = o.amount
		sub.currency = o.currency
		sub.interval = o.interval
		sub.tempAmount = nil
		if mode == "2" {
			sub.nextCaptureAt = o.interval.AddTo(now)
		}

	case f.Has("trial_end"):
		if sub.trialEnd.IsZero() || !now.Before(sub.trialEnd) {
			writeError(w, http.StatusBadRequest, "Subscription is not in trial", "subscription_not_in_trial")
			return
		}
		// The first charge becomes due immediately.
		sub.trialEnd = time.Time{}
		sub.nextCaptureAt = now

	case f.Has("period_of_validity"):
		v := f.Get("period_of_validity")
		if v == "remove" {
			sub.periodOfValidity = interval.Interval{}
			sub.endOfPeriod = time.Time{}
			break
		}
		iv, err := interval.Parse(v)
		if err != nil || iv.HasWeekday() {
			writeFieldError(w, "period_of_validity", "Invalid period")
			return
		}
		sub.periodOfValidity = iv
		sub.endOfPeriod = iv.AddTo(sub.startAt)
	}

	if v := f.Get("name"); v != "" {
		sub.name = v
	}
	sub.updatedAt = now
	writeData(w, sub.render(s))
}

func (s *Server) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.findSubscription(w, r)
	if !ok {
		return
	}
	remove := r.Form.Get("remove") != "false"
	sub.cancel(s.clock(), remove)
	writeData(w, sub.render(s))
}
