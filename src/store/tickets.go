package store

import (
	"context"
	"fmt"
	"triphub/src/models"
	"triphub/src/models/scopes"
	"triphub/src/types"

	"gorm.io/gorm"
)

func (s *Store) ListTickets(ctx context.Context, filters types.TicketQueryFilters) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithVendorEmail(filters.Email), scopes.WithField("status", filters.Status)).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, translate(err, "listing tickets")
	}
	return tickets, nil
}

func (s *Store) LatestTickets(ctx context.Context, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.WithContext(ctx).
		Scopes(scopes.Approved, scopes.Visible).
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, translate(err, "listing latest tickets")
	}
	return tickets, nil
}

func (s *Store) AdvertisedTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.WithContext(ctx).
		Where("is_advertised = ?", true).
		Scopes(scopes.Approved, scopes.Visible).
		Order("updated_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, translate(err, "listing advertised tickets")
	}
	return tickets, nil
}

func (s *Store) FindTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&ticket).Error; err != nil {
		return nil, translate(err, "finding ticket")
	}
	return &ticket, nil
}

func (s *Store) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return translate(s.db.WithContext(ctx).Create(ticket).Error, "creating ticket")
}

// UpdateTicket applies updates to a ticket owned by vendorEmail.
func (s *Store) UpdateTicket(ctx context.Context, id uint, vendorEmail string, updates map[string]any) (*models.Ticket, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", types.ErrValidation)
	}
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ? AND vendor_email = ?", id, vendorEmail).
		Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error, "updating ticket")
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("ticket %d: %w", id, types.ErrNotFound)
	}
	return s.FindTicket(ctx, id)
}

func (s *Store) DeleteTicket(ctx context.Context, id uint, vendorEmail string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND vendor_email = ?", id, vendorEmail).Delete(&models.Ticket{})
	if res.Error != nil {
		return translate(res.Error, "deleting ticket")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket %d: %w", id, types.ErrNotFound)
	}
	return nil
}

func (s *Store) SetTicketStatus(ctx context.Context, id uint, status types.TicketStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).Scopes(scopes.WithID(id)).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "updating ticket status")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket %d: %w", id, types.ErrNotFound)
	}
	return nil
}

func (s *Store) CountAdvertised(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).Where("is_advertised = ?", true).Count(&count).Error
	if err != nil {
		return 0, translate(err, "counting advertised tickets")
	}
	return count, nil
}

func (s *Store) SetAdvertised(ctx context.Context, id uint, advertised bool) error {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).Scopes(scopes.WithID(id)).Update("is_advertised", advertised)
	if res.Error != nil {
		return translate(res.Error, "updating advertised flag")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// BlockVendorTickets hides and blocks every ticket listed under email. The
// advertised flag is cleared too so blocked tickets give their slot back.
func (s *Store) BlockVendorTickets(ctx context.Context, email string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("vendor_email = ?", email).
		Updates(map[string]any{"is_visible": false, "is_advertised": false, "status": types.TICKET_BLOCKED})
	if res.Error != nil {
		return 0, translate(res.Error, "blocking vendor tickets")
	}
	return res.RowsAffected, nil
}

// DecrementIfAvailable takes qty units off the ticket only when at least
// qty remain. It reports whether the decrement happened.
func (s *Store) DecrementIfAvailable(ctx context.Context, ticketID uint, qty int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ? AND quantity >= ?", ticketID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, translate(res.Error, "decrementing ticket quantity")
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) Increment(ctx context.Context, ticketID uint, qty int) error {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Scopes(scopes.WithID(ticketID)).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return translate(res.Error, "incrementing ticket quantity")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket %d: %w", ticketID, types.ErrNotFound)
	}
	return nil
}
