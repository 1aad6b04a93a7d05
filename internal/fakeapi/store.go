package fakeapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/paymill/pkg/interval"
)

type offerRecord struct {
	seq             int64
	id              string
	name            string
	amount          int
	currency        string
	interval        interval.Interval
	trialPeriodDays int
	createdAt       time.Time
	updatedAt       time.Time
}

type clientRecord struct {
	seq         int64
	id          string
	email       string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

type paymentRecord struct {
	seq         int64
	id          string
	clientID    string
	expireMonth int
	expireYear  int
	createdAt   time.Time
	updatedAt   time.Time
}

type subscriptionRecord struct {
	seq              int64
	id               string
	offerID          string
	paymentID        string
	clientID         string
	name             string
	amount           int
	tempAmount       *int
	currency         string
	interval         interval.Interval
	periodOfValidity interval.Interval
	startAt          time.Time
	endOfPeriod      time.Time
	trialStart       time.Time
	trialEnd         time.Time
	nextCaptureAt    time.Time
	createdAt        time.Time
	updatedAt        time.Time
	canceledAt       time.Time
	paused           bool
	canceled         bool
	deleted          bool
}

func (s *Server) nextSeq() int64 {
	s.seq++
	return s.seq
}

func epoch(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

func intervalValue(iv interval.Interval) any {
	if iv.IsZero() {
		return nil
	}
	return iv.String()
}

func (o *offerRecord) render(s *Server) map[string]any {
	active, inactive := 0, 0
	for _, sub := range s.subscriptions {
		if sub.offerID != o.id || sub.deleted {
			continue
		}
		if sub.status() == "active" {
			active++
		} else {
			inactive++
		}
	}
	var trial any
	if o.trialPeriodDays > 0 {
		trial = o.trialPeriodDays
	}
	return map[string]any{
		"id":                o.id,
		"name":              o.name,
		"amount":            o.amount,
		"currency":          o.currency,
		"interval":          o.interval.String(),
		"trial_period_days": trial,
		"created_at":        o.createdAt.Unix(),
		"updated_at":        o.updatedAt.Unix(),
		// counters are strings on the real API as well
		"subscription_count": map[string]any{
			"active":   strconv.Itoa(active),
			"inactive": inactive,
		},
		"app_id": nil,
	}
}

func (c *clientRecord) render() map[string]any {
	return map[string]any{
		"id":          c.id,
		"email":       nullable(c.email),
		"description": nullable(c.description),
		"created_at":  c.createdAt.Unix(),
		"updated_at":  c.updatedAt.Unix(),
		"app_id":      nil,
	}
}

func (p *paymentRecord) render() map[string]any {
	return map[string]any{
		"id":           p.id,
		"type":         "creditcard",
		"client":       nullable(p.clientID),
		"card_type":    "visa",
		"country":      "DE",
		"expire_month": strconv.Itoa(p.expireMonth),
		"expire_year":  strconv.Itoa(p.expireYear),
		"card_holder":  "Max Mustermann",
		"last4":        "1111",
		"created_at":   p.createdAt.Unix(),
		"updated_at":   p.updatedAt.Unix(),
		"app_id":       nil,
	}
}

func (sub *subscriptionRecord) status() string {
	if sub.paused || sub.deleted {
		return "inactive"
	}
	return "active"
}

func (sub *subscriptionRecord) render(s *Server) map[string]any {
	var offer any = []any{}
	if o, ok := s.offers[sub.offerID]; ok {
		offer = o.render(s)
	}
	var payment any
	if p, ok := s.payments[sub.paymentID]; ok {
		payment = p.render()
	}
	var client any
	if c, ok := s.clients[sub.clientID]; ok {
		client = c.render()
	}
	var temp any
	if sub.tempAmount != nil {
		temp = *sub.tempAmount
	}
	return map[string]any{
		"id":                 sub.id,
		"offer":              offer,
		"livemode":           false,
		"amount":             sub.amount,
		"temp_amount":        temp,
		"currency":           sub.currency,
		"name":               sub.name,
		"interval":           sub.interval.String(),
		"period_of_validity": intervalValue(sub.periodOfValidity),
		"end_of_period":      epoch(sub.endOfPeriod),
		"trial_start":        epoch(sub.trialStart),
		"trial_end":          epoch(sub.trialEnd),
		"next_capture_at":    epoch(sub.nextCaptureAt),
		"created_at":         sub.createdAt.Unix(),
		"updated_at":         sub.updatedAt.Unix(),
		"canceled_at":        epoch(sub.canceledAt),
		"payment":            payment,
		"client":             client,
		"app_id":             nil,
		"is_canceled":        sub.canceled,
		"is_deleted":         sub.deleted,
		"status":             sub.status(),
		"mandate_reference":  nil,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// page applies count and offset. Count defaults to 20.
func page[T any](items []T, form url.Values) ([]T, int, error) {
	total := len(items)
	count, offset := 20, 0
	if v := form.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, 0, errInvalidParam("count")
		}
		count = n
	}
	if v := form.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, 0, errInvalidParam("offset")
		}
		offset = n
	}
	if offset >= len(items) {
		return nil, total, nil
	}
	end := min(offset+count, len(items))
	return items[offset:end], total, nil
}

// timeRange parses "<from>-<to>" or a single epoch value.
func timeRange(v string) (from, to int64, err error) {
	lo, hi, isRange := strings.Cut(v, "-")
	if lo != "" {
		if from, err = strconv.ParseInt(lo, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	if !isRange {
		return from, from, nil
	}
	if to, err = strconv.ParseInt(hi, 10, 64); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// sortBy orders records by the "order" parameter, falling back to insertion order.
func sortBy[T any](items []T, order string, seq func(T) int64, keys map[string]func(T) string) error {
	sort.SliceStable(items, func(i, j int) bool { return seq(items[i]) < seq(items[j]) })
	if order == "" {
		return nil
	}
	key, desc := order, false
	switch {
	case strings.HasSuffix(order, "_desc"):
		key, desc = strings.TrimSuffix(order, "_desc"), true
	case strings.HasSuffix(order, "_asc"):
		key = strings.TrimSuffix(order, "_asc")
	}
	get, ok := keys[key]
	if !ok {
		return errInvalidParam("order")
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return get(items[i]) > get(items[j])
		}
		return get(items[i]) < get(items[j])
	})
	return nil
}

// sortableTime renders t so that string order equals time order.
func sortableTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%020d", t.Unix())
}

func padInt(n int) string {
	return fmt.Sprintf("%020d", n)
}

type paramError struct{ field string }

func (e paramError) Error() string { return "invalid parameter " + e.field }

func errInvalidParam(field string) error { return paramError{field: field} }
