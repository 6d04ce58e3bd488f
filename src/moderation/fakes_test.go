package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"
	"triphub/src/models"
	"triphub/src/types"
)

type memDB struct {
	mu      sync.Mutex
	vendors map[uint]models.Vendor
	roles   map[string]types.Role
	tickets map[uint]models.Ticket

	failRole    error
	failTickets error
}

func newMemDB() *memDB {
	return &memDB{
		vendors: map[uint]models.Vendor{},
		roles:   map[string]types.Role{},
		tickets: map[uint]models.Ticket{},
	}
}

func (m *memDB) clone() *memDB {
	c := newMemDB()
	for k, v := range m.vendors {
		c.vendors[k] = v
	}
	for k, v := range m.roles {
		c.roles[k] = v
	}
	for k, v := range m.tickets {
		c.tickets[k] = v
	}
	c.failRole = m.failRole
	c.failTickets = m.failTickets
	return c
}

// runInTx applies fn to a copy and keeps it only when fn succeeds.
func (m *memDB) runInTx(ctx context.Context, fn func(tx VendorTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := m.clone()
	if err := fn(&memTx{db: work}); err != nil {
		return err
	}
	m.vendors, m.roles, m.tickets = work.vendors, work.roles, work.tickets
	return nil
}

type memTx struct {
	db *memDB
}

func (t *memTx) FindVendor(_ context.Context, id uint) (*models.Vendor, error) {
	v, ok := t.db.vendors[id]
	if !ok {
		return nil, types.ErrVendorNotFound
	}
	return &v, nil
}

func (t *memTx) UpdateVendorStatus(_ context.Context, id uint, status types.VendorStatus, at time.Time) error {
	v := t.db.vendors[id]
	v.Status = status
	v.UpdatedAt = at
	t.db.vendors[id] = v
	return nil
}

func (t *memTx) SetUserRole(_ context.Context, email string, role types.Role) (int64, error) {
	if t.db.failRole != nil {
		return 0, t.db.failRole
	}
	if _, ok := t.db.roles[email]; !ok {
		return 0, nil
	}
	t.db.roles[email] = role
	return 1, nil
}

func (m *memDB) SetVendorStatusByEmail(_ context.Context, email string, status types.VendorStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, v := range m.vendors {
		if v.Email == email {
			v.Status = status
			m.vendors[id] = v
			n++
		}
	}
	return n, nil
}

func (m *memDB) SetUserRole(ctx context.Context, email string, role types.Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{db: m}).SetUserRole(ctx, email, role)
}

func (m *memDB) BlockVendorTickets(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTickets != nil {
		return 0, m.failTickets
	}
	var n int64
	for id, t := range m.tickets {
		if t.Vendor.Email == email {
			t.IsVisible = false
			t.IsAdvertised = false
			t.Status = types.TICKET_BLOCKED
			m.tickets[id] = t
			n++
		}
	}
	return n, nil
}

func (m *memDB) CountAdvertised(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tickets {
		if t.IsAdvertised {
			n++
		}
	}
	return n, nil
}

func (m *memDB) SetAdvertised(_ context.Context, id uint, advertised bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return fmt.Errorf("ticket %d: %w", id, types.ErrNotFound)
	}
	t.IsAdvertised = advertised
	m.tickets[id] = t
	return nil
}

type recordingRoles struct {
	mu          sync.Mutex
	invalidated []string
}

func (r *recordingRoles) Invalidate(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, email)
	return nil
}

type recordingPublisher struct {
	flagged []string
}

func (p *recordingPublisher) VendorFlagged(_ context.Context, email string) error {
	p.flagged = append(p.flagged, email)
	return nil
}
