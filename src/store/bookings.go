package store

import (
	"context"
	"fmt"
	"time"
	"triphub/src/models"
	"triphub/src/models/scopes"
	"triphub/src/types"
)

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translate(s.db.WithContext(ctx).Create(booking).Error, "creating booking")
}

func (s *Store) FindBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&booking).Error; err != nil {
		return nil, translate(err, "finding booking")
	}
	return &booking, nil
}

// ListBookings returns the bookings where column (user_email or
// vendor_email) equals email, narrowed by the optional filters.
func (s *Store) ListBookings(ctx context.Context, column string, email string, filters types.BookingQueryFilters) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Scopes(
			scopes.WithField(column, email),
			scopes.WithField("booking_status", filters.BookingStatus),
			scopes.WithField("payment_status", filters.PaymentStatus),
		).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "listing bookings")
	}
	return bookings, nil
}

// SetBookingStatus lets the owning vendor accept or reject a booking.
func (s *Store) SetBookingStatus(ctx context.Context, id uint, vendorEmail string, status types.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND vendor_email = ?", id, vendorEmail).
		Update("booking_status", status)
	if res.Error != nil {
		return translate(res.Error, "updating booking status")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %d: %w", id, types.ErrNotFound)
	}
	return nil
}

func (s *Store) SetCheckoutSession(ctx context.Context, id uint, sessionID string) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).Scopes(scopes.WithID(id)).Update("checkout_session_id", sessionID)
	if res.Error != nil {
		return translate(res.Error, "saving checkout session")
	}
	return nil
}

// TransitionPayment moves the booking's payment status to `to` only when
// it is currently one of from. It reports whether a row changed.
func (s *Store) TransitionPayment(ctx context.Context, id uint, from []types.PaymentStatus, to types.PaymentStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND payment_status IN ?", id, from).
		Update("payment_status", to)
	if res.Error != nil {
		return false, translate(res.Error, "transitioning payment status")
	}
	return res.RowsAffected == 1, nil
}

// PendingRetries lists bookings parked in the pending retry state that
// have not been touched for at least olderThan.
func (s *Store) PendingRetries(ctx context.Context, olderThan time.Duration, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("payment_status = ? AND checkout_session_id IS NOT NULL", types.PAYMENT_PENDING).
		Where("updated_at <= ?", time.Now().Add(-olderThan)).
		Order("updated_at ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "listing pending bookings")
	}
	return bookings, nil
}
