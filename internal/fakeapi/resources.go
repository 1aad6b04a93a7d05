package fakeapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/currency"

	"github.com/dmitrymomot/paymill/pkg/interval"
)

func (s *Server) listOffers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*offerRecord, 0, len(s.offers))
	for _, o := range s.offers {
		items = append(items, o)
	}
	err := sortBy(items, r.Form.Get("order"), func(o *offerRecord) int64 { return o.seq }, map[string]func(*offerRecord) string{
		"name":              func(o *offerRecord) string { return o.name },
		"interval":          func(o *offerRecord) string { return o.interval.String() },
		"amount":            func(o *offerRecord) string { return padInt(o.amount) },
		"created_at":        func(o *offerRecord) string { return sortableTime(o.createdAt) },
		"trial_period_days": func(o *offerRecord) string { return padInt(o.trialPeriodDays) },
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
	for _, o := range paged {
		out = append(out, o.render(s))
	}
	writeList(w, out, total)
}

func (s *Server) createOffer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := strconv.Atoi(r.Form.Get("amount"))
	if err != nil || amount <= 0 {
		writeFieldError(w, "amount", "Amount must be a positive integer")
		return
	}
	cur := r.Form.Get("currency")
	if _, err := currency.ParseISO(cur); err != nil {
		writeFieldError(w, "currency", "Invalid currency")
		return
	}
	iv, err := interval.Parse(r.Form.Get("interval"))
	if err != nil {
		writeFieldError(w, "interval", "Invalid interval")
		return
	}
	name := r.Form.Get("name")
	if name == "" {
		writeFieldError(w, "name", "Name is required")
		return
	}
	trial := 0
	if v := r.Form.Get("trial_period_days"); v != "" {
		if trial, err = strconv.Atoi(v); err != nil || trial < 0 {
			writeFieldError(w, "trial_period_days", "Invalid trial period")
			return
		}
	}

	now := s.clock()
	o := &offerRecord{
		seq:             s.nextSeq(),
		id:              s.newID("offer"),
		name:            name,
		amount:          amount,
		currency:        strings.ToUpper(cur),
		interval:        iv,
		trialPeriodDays: trial,
		createdAt:       now,
		updatedAt:       now,
	}
	s.offers[o.id] = o
	writeData(w, o.render(s))
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Offer not found", "offer_not_found")
		return
	}
	writeData(w, o.render(s))
}

func (s *Server) updateOffer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Offer not found", "offer_not_found")
		return
	}
	if name := r.Form.Get("name"); name != "" {
		o.name = name
		if r.Form.Get("update_subscriptions") == "true" {
			for _, sub := range s.subscriptions {
				if sub.offerID == o.id {
					sub.name = name
				}
			}
		}
	}
	o.updatedAt = s.clock()
	writeData(w, o.render(s))
}

func (s *Server) deleteOffer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Offer not found", "offer_not_found")
		return
	}
	if r.Form.Get("remove_with_subscriptions") == "true" {
		now := s.clock()
		for _, sub := range s.subscriptions {
			if sub.offerID == o.id {
				sub.cancel(now, true)
			}
		}
	}
	delete(s.offers, o.id)
	writeList(w, nil, 0)
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*clientRecord, 0, len(s.clients))
	for _, c := range s.clients {
		items = append(items, c)
	}
	err := sortBy(items, r.Form.Get("order"), func(c *clientRecord) int64 { return c.seq }, map[string]func(*clientRecord) string{
		"email":      func(c *clientRecord) string { return c.email },
		"created_at": func(c *clientRecord) string { return sortableTime(c.createdAt) },
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
	for _, c := range paged {
		out = append(out, c.render())
	}
	writeList(w, out, total)
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.addClient(r.Form.Get("email"), r.Form.Get("description"))
	writeData(w, c.render())
}

func (s *Server) addClient(email, description string) *clientRecord {
	now := s.clock()
	c := &clientRecord{
		seq:         s.nextSeq(),
		id:          s.newID("client"),
		email:       email,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}
	s.clients[c.id] = c
	return c
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", "client_not_found")
		return
	}
	writeData(w, c.render())
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", "client_not_found")
		return
	}
	if r.Form.Has("email") {
		c.email = r.Form.Get("email")
	}
	if r.Form.Has("description") {
		c.description = r.Form.Get("description")
	}
	c.updatedAt = s.clock()
	writeData(w, c.render())
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.clients[id]; !ok {
		writeError(w, http.StatusNotFound, "Client not found", "client_not_found")
		return
	}
	delete(s.clients, id)
	writeList(w, nil, 0)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*paymentRecord, 0, len(s.payments))
	for _, p := range s.payments {
		items = append(items, p)
	}
	err := sortBy(items, r.Form.Get("order"), func(p *paymentRecord) int64 { return p.seq }, map[string]func(*paymentRecord) string{
		"created_at": func(p *paymentRecord) string { return sortableTime(p.createdAt) },
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
	for _, p := range paged {
		out = append(out, p.render())
	}
	writeList(w, out, total)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Form.Get("token") == "" {
		writeFieldError(w, "token", "Token is required")
		return
	}
	clientID := r.Form.Get("client")
	if clientID != "" {
		if _, ok := s.clients[clientID]; !ok {
			writeError(w, http.StatusNotFound, "Client not found", "client_not_found")
			return
		}
	} else {
		clientID = s.addClient("", "").id
	}

	now := s.clock()
	p := &paymentRecord{
		seq:         s.nextSeq(),
		id:          s.newID("pay"),
		clientID:    clientID,
		expireMonth: 12,
		expireYear:  now.Year() + 1,
		createdAt:   now,
		updatedAt:   now,
	}
	s.payments[p.id] = p
	writeData(w, p.render())
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Payment not found", "payment_not_found")
		return
	}
	writeData(w, p.render())
}

func (s *Server) deletePayment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.payments[id]; !ok {
		writeError(w, http.StatusNotFound, "Payment not found", "payment_not_found")
		return
	}
	delete(s.payments, id)
	writeList(w, nil, 0)
}

func writeParamError(w http.ResponseWriter, err error) {
	var pe paramError
	if errors.As(err, &pe) {
		writeFieldError(w, pe.field, "Invalid value")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error(), "invalid_request")
}
