package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"triphub/src/models"
	"triphub/src/monitoring"
	"triphub/src/types"
)

// VendorTx is the slice of the store the approval transaction touches.
type VendorTx interface {
	FindVendor(ctx context.Context, id uint) (*models.Vendor, error)
	UpdateVendorStatus(ctx context.Context, id uint, status types.VendorStatus, at time.Time) error
	SetUserRole(ctx context.Context, email string, role types.Role) (int64, error)
}

// TxRunner runs fn inside one all-or-nothing store transaction.
type TxRunner func(ctx context.Context, fn func(tx VendorTx) error) error

// RoleInvalidator drops cached roles once they changed in the store.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, email string) error
}

type Approver struct {
	runInTx TxRunner
	roles   RoleInvalidator
	now     func() time.Time
}

func NewApprover(runInTx TxRunner, roles RoleInvalidator) *Approver {
	return &Approver{runInTx: runInTx, roles: roles, now: time.Now}
}

// SetStatus moves a vendor to approved, rejected or pending. Approval
// promotes the mirrored user to the vendor role in the same transaction.
func (a *Approver) SetStatus(ctx context.Context, vendorID uint, status types.VendorStatus) (*models.Vendor, error) {
	switch status {
	case types.VENDOR_APPROVED, types.VENDOR_REJECTED, types.VENDOR_PENDING:
	default:
		return nil, fmt.Errorf("invalid vendor status %q: %w", status, types.ErrValidation)
	}

	var vendor *models.Vendor
	err := a.runInTx(ctx, func(tx VendorTx) error {
		v, err := tx.FindVendor(ctx, vendorID)
		if err != nil {
			return err
		}
		at := a.now()
		if err := tx.UpdateVendorStatus(ctx, v.ID, status, at); err != nil {
			return err
		}
		if status == types.VENDOR_APPROVED {
			n, err := tx.SetUserRole(ctx, v.Email, types.ROLE_VENDOR)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no user registered as %s", v.Email)
			}
		}
		v.Status = status
		v.UpdatedAt = at
		vendor = v
		return nil
	})
	if err != nil {
		monitoring.VendorStatusChanges.WithLabelValues(string(status), "error").Inc()
		if errors.Is(err, types.ErrVendorNotFound) {
			return nil, types.ErrVendorNotFound
		}
		log.Printf("[Approval] vendor %d -> %s rolled back: %s\n", vendorID, status, err.Error())
		return nil, fmt.Errorf("%w: %s", types.ErrUpdateFailed, err.Error())
	}
	monitoring.VendorStatusChanges.WithLabelValues(string(status), "ok").Inc()

	if status == types.VENDOR_APPROVED && a.roles != nil {
		if err := a.roles.Invalidate(ctx, vendor.Email); err != nil {
			log.Printf("[Approval] could not invalidate cached role of %s: %s\n", vendor.Email, err.Error())
		}
	}
	return vendor, nil
}
