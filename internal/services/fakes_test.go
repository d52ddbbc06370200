package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventpay/internal/domain"
)

var (
	testNow     = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testTimeout = 5 * time.Second
	testLogger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Event ids are UUIDs because Join rejects anything else before touching storage.
const (
	eventOpen    = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e01"
	eventOther   = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e02"
	eventPast    = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e03"
	eventNow     = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e04"
	eventFull    = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e05"
	eventNoSeats = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4e06"
	eventUnknown = "5b0f3c1e-8a52-4d8e-9f1a-0c6a2b7d4eff"
)

type inTxKey struct{}

// memStore is an in-memory stand-in for the Postgres tables. A transaction holds mu for its
// whole duration and restores a snapshot on error, which gives the same all-or-nothing and
// serialized admission behaviour as the conditional UPDATE in Postgres.
type memStore struct {
	mu           sync.Mutex
	seq          int
	users        map[string]*domain.User
	events       map[string]*domain.Event
	reservations map[string]*domain.Reservation
	payments     map[string]*domain.Payment
	reviews      []*domain.Review

	failPaymentCreate error
	commits           int
	rollbacks         int
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*domain.User),
		events:       make(map[string]*domain.Event),
		reservations: make(map[string]*domain.Reservation),
		payments:     make(map[string]*domain.Payment),
	}
}

func (m *memStore) lock(ctx context.Context) func() {
	if ctx.Value(inTxKey{}) != nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addUser(id, email string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Email: email, Name: id, Role: role, CreatedAt: testNow}
	m.users[id] = u
	return u
}

func (m *memStore) addEvent(id, hostID string, date time.Time, fee float64, max int) *domain.Event {
	e := domain.NewEvent(hostID, "Go Meetup "+id, date, fee, max, testNow)
	e.ID = id
	m.events[id] = e
	return e
}

type memSnapshot struct {
	seq          int
	events       map[string]domain.Event
	reservations map[string]domain.Reservation
	payments     map[string]domain.Payment
	reviews      []*domain.Review
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		seq:          m.seq,
		events:       make(map[string]domain.Event, len(m.events)),
		reservations: make(map[string]domain.Reservation, len(m.reservations)),
		payments:     make(map[string]domain.Payment, len(m.payments)),
		reviews:      append([]*domain.Review(nil), m.reviews...),
	}
	for k, v := range m.events {
		s.events[k] = *v
	}
	for k, v := range m.reservations {
		s.reservations[k] = *v
	}
	for k, v := range m.payments {
		s.payments[k] = *v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.seq = s.seq
	m.events = make(map[string]*domain.Event, len(s.events))
	for k, v := range s.events {
		v := v
		m.events[k] = &v
	}
	m.reservations = make(map[string]*domain.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		v := v
		m.reservations[k] = &v
	}
	m.payments = make(map[string]*domain.Payment, len(s.payments))
	for k, v := range s.payments {
		v := v
		m.payments[k] = &v
	}
	m.reviews = s.reviews
}

// transactor

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		m.restore(snap)
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *domain.User) error {
	defer r.lock(ctx)()
	u.ID = r.nextID("user")
	r.users[u.ID] = u
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.lock(ctx)()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// events and capacity ledger

type memEvents struct{ *memStore }

func (r memEvents) Create(ctx context.Context, e *domain.Event) error {
	defer r.lock(ctx)()
	e.ID = r.nextID("event")
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	defer r.lock(ctx)()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r memEvents) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	defer r.lock(ctx)()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Status = status
	cp := *e
	return &cp, nil
}

func (r memEvents) Admit(ctx context.Context, eventID string) (int, error) {
	defer r.lock(ctx)()
	e, ok := r.events[eventID]
	if !ok || e.ParticipantCount >= e.MaxParticipants {
		return 0, domain.ErrCapacityExceeded
	}
	e.ParticipantCount++
	return e.ParticipantCount, nil
}

// reservations

type memReservations struct{ *memStore }

func (r memReservations) Create(ctx context.Context, res *domain.Reservation) error {
	defer r.lock(ctx)()
	for _, existing := range r.reservations {
		if existing.UserID == res.UserID && existing.EventID == res.EventID {
			return domain.ErrAlreadyJoined
		}
	}
	res.ID = r.nextID("res")
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r memReservations) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	defer r.lock(ctx)()
	res, ok := r.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r memReservations) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Reservation, error) {
	defer r.lock(ctx)()
	for _, res := range r.reservations {
		if res.EventID == eventID && res.UserID == userID {
			cp := *res
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memReservations) ListByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	defer r.lock(ctx)()
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.UserID == userID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memReservations) MarkPaid(ctx context.Context, id string) (bool, error) {
	defer r.lock(ctx)()
	res, ok := r.reservations[id]
	if !ok {
		return false, domain.ErrReservationNotFound
	}
	if res.Paid {
		return false, nil
	}
	res.Paid = true
	return true, nil
}

// payments

type memPayments struct{ *memStore }

func (r memPayments) Create(ctx context.Context, p *domain.Payment) error {
	defer r.lock(ctx)()
	if r.failPaymentCreate != nil {
		return r.failPaymentCreate
	}
	p.ID = r.nextID("pay")
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r memPayments) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	defer r.lock(ctx)()
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPayments) HasPaid(ctx context.Context, userID, eventID string) (bool, error) {
	defer r.lock(ctx)()
	for _, p := range r.payments {
		if p.UserID == userID && p.EventID == eventID && p.Status == domain.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

func (r memPayments) AttachCheckoutSession(ctx context.Context, id, sessionID string) error {
	defer r.lock(ctx)()
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.GatewaySessionID = sessionID
	return nil
}

func (r memPayments) MarkPaid(ctx context.Context, id string, payload json.RawMessage) (bool, error) {
	defer r.lock(ctx)()
	p, ok := r.payments[id]
	if !ok {
		return false, domain.ErrPaymentNotFound
	}
	if p.Status == domain.PaymentStatusPaid {
		return false, nil
	}
	p.Status = domain.PaymentStatusPaid
	p.GatewayPayload = append(json.RawMessage(nil), payload...)
	return true, nil
}

func (r memPayments) SumByHostAndStatus(ctx context.Context, hostID string, status domain.PaymentStatus) (float64, error) {
	defer r.lock(ctx)()
	var total float64
	for _, p := range r.payments {
		e, ok := r.events[p.EventID]
		if ok && e.HostID == hostID && p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

// reviews

type memReviews struct{ *memStore }

func (r memReviews) Create(ctx context.Context, rv *domain.Review) error {
	defer r.lock(ctx)()
	for _, existing := range r.reviews {
		if existing.EventID == rv.EventID && existing.ReviewerID == rv.ReviewerID {
			return domain.ErrAlreadyReviewed
		}
	}
	rv.ID = r.nextID("rev")
	cp := *rv
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r memReviews) ListByReviewerID(ctx context.Context, reviewerID string) ([]*domain.Review, error) {
	defer r.lock(ctx)()
	out := make([]*domain.Review, 0)
	for _, rv := range r.reviews {
		if rv.ReviewerID == reviewerID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r memReviews) ListByHostID(ctx context.Context, hostID string) ([]*domain.Review, error) {
	defer r.lock(ctx)()
	out := make([]*domain.Review, 0)
	for _, rv := range r.reviews {
		if rv.HostID == hostID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// fakeGateway records checkout requests and hands out sequential session ids.
type fakeGateway struct {
	mu       sync.Mutex
	requests []domain.CheckoutSessionRequest
	err      error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.requests = append(g.requests, req)
	id := fmt.Sprintf("cs_test_%d", len(g.requests))
	return &domain.CheckoutSession{ID: id, URL: "https://checkout.example.com/" + id}, nil
}

// fakeVerifier accepts the signature "valid" and decodes the payload with the same shape the
// Stripe adapter produces.
type fakeVerifier struct{}

func (fakeVerifier) Verify(payload []byte, signatureHeader string) (*domain.GatewayEvent, error) {
	if signatureHeader != "valid" {
		return nil, domain.ErrInvalidSignature
	}
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Join(domain.ErrInvalidPayload, err)
	}
	var obj struct {
		Metadata map[string]string `json:"metadata"`
	}
	_ = json.Unmarshal(raw.Data.Object, &obj)
	return &domain.GatewayEvent{
		ID:            raw.ID,
		Type:          raw.Type,
		ReservationID: obj.Metadata["reservationId"],
		PaymentID:     obj.Metadata["paymentId"],
		Payload:       raw.Data.Object,
	}, nil
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.PaymentConfirmedEmailData
	err  error
}

func (f *fakeEmailService) SendPaymentConfirmed(ctx context.Context, data *domain.PaymentConfirmedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return f.err
}

func checkoutCompleted(eventID, reservationID, paymentID string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":   eventID,
		"type": domain.GatewayEventCheckoutCompleted,
		"data": map[string]any{
			"object": map[string]any{
				"id":     "cs_test_1",
				"object": "checkout.session",
				"metadata": map[string]string{
					"reservationId": reservationID,
					"paymentId":     paymentID,
				},
			},
		},
	})
	return body
}
