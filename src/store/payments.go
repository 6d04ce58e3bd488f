package store

import (
	"context"
	"errors"
	"triphub/src/models"
	"triphub/src/models/scopes"

	"gorm.io/gorm"
)

// FindPaymentByTransaction returns nil, nil when no payment carries txID.
func (s *Store) FindPaymentByTransaction(ctx context.Context, txID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Where("transaction_id = ?", txID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "finding payment")
	}
	return &payment, nil
}

func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return translate(s.db.WithContext(ctx).Create(payment).Error, "recording payment")
}

// ListPayments returns payments where column equals email; an empty email
// lists everything.
func (s *Store) ListPayments(ctx context.Context, column string, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithField(column, email)).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err, "listing payments")
	}
	return payments, nil
}
