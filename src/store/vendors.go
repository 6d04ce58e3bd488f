package store

import (
	"context"
	"errors"
	"fmt"
	"time"
	"triphub/src/models"
	"triphub/src/models/scopes"
	"triphub/src/types"

	"gorm.io/gorm"
)

func (s *Store) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	err := s.db.WithContext(ctx).Create(vendor).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.ErrDuplicateVendor
	}
	return translate(err, "creating vendor")
}

func (s *Store) ListVendors(ctx context.Context, status string) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithField("status", status)).
		Order("created_at DESC").
		Find(&vendors).Error
	if err != nil {
		return nil, translate(err, "listing vendors")
	}
	return vendors, nil
}

func (s *Store) FindVendor(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrVendorNotFound
	}
	if err != nil {
		return nil, translate(err, "finding vendor")
	}
	return &vendor, nil
}

func (s *Store) UpdateVendorStatus(ctx context.Context, id uint, status types.VendorStatus, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Vendor{}).
		Scopes(scopes.WithID(id)).
		UpdateColumns(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error, "updating vendor status")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vendor %d: %w", id, types.ErrVendorNotFound)
	}
	return nil
}

func (s *Store) SetVendorStatusByEmail(ctx context.Context, email string, status types.VendorStatus) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("email = ?", email).
		Update("status", status)
	if res.Error != nil {
		return 0, translate(res.Error, "updating vendor status")
	}
	return res.RowsAffected, nil
}

func (s *Store) FindVendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrVendorNotFound
	}
	if err != nil {
		return nil, translate(err, "finding vendor")
	}
	return &vendor, nil
}
