package settlement

import (
	"context"
	"fmt"
	"sync"
	"time"
	"triphub/src/models"
	"triphub/src/types"
)

// memStore mimics the conditional update semantics of the SQL store: each
// method is atomic under one mutex.
type memStore struct {
	mu         sync.Mutex
	bookings   map[uint]*models.Booking
	payments   map[string]*models.Payment
	quantities map[uint]int
	createErr  error
}

func newMemStore() *memStore {
	return &memStore{
		bookings:   map[uint]*models.Booking{},
		payments:   map[string]*models.Payment{},
		quantities: map[uint]int{},
	}
}

func (m *memStore) addBooking(b models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.PaymentStatus == "" {
		b.PaymentStatus = types.PAYMENT_UNPAID
	}
	m.bookings[b.ID] = &b
}

func (m *memStore) booking(id uint) models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.bookings[id]
}

func (m *memStore) quantity(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quantities[id]
}

func (m *memStore) paymentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

func (m *memStore) FindPaymentByTransaction(_ context.Context, txID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.payments[txID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) TransitionPayment(_ context.Context, id uint, from []types.PaymentStatus, to types.PaymentStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if b.PaymentStatus == f {
			b.PaymentStatus = to
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) FindBooking(_ context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, types.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) CreatePayment(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.payments[p.TransactionID]; ok {
		return fmt.Errorf("duplicate transaction %s: %w", p.TransactionID, types.ErrConflict)
	}
	p.ID = uint(len(m.payments) + 1)
	cp := *p
	m.payments[p.TransactionID] = &cp
	return nil
}

func (m *memStore) DecrementIfAvailable(_ context.Context, id uint, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quantities[id] < qty {
		return false, nil
	}
	m.quantities[id] -= qty
	return true, nil
}

func (m *memStore) Increment(_ context.Context, id uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[id] += qty
	return nil
}

func (m *memStore) PendingRetries(_ context.Context, _ time.Duration, limit int) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.PaymentStatus == types.PAYMENT_PENDING && b.CheckoutSessionID != nil && len(out) < limit {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	sessions map[string]*types.CheckoutSession
	err      error
}

func (g *fakeGateway) add(s types.CheckoutSession) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessions == nil {
		g.sessions = map[string]*types.CheckoutSession{}
	}
	g.sessions[s.ID] = &s
}

func (g *fakeGateway) RetrieveSession(_ context.Context, id string) (*types.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	s, ok := g.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, types.ErrUpstream)
	}
	cp := *s
	return &cp, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	payments []string
	err      error
}

func (n *recordingNotifier) PaymentSettled(_ context.Context, p *models.Payment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, p.TransactionID)
	return n.err
}
