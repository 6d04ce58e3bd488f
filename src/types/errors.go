package types

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInventoryExhausted = errors.New("insufficient ticket quantity")
	ErrUpstream           = errors.New("upstream service error")
)

var (
	ErrVendorNotFound  = fmt.Errorf("vendor-not-found: %w", ErrNotFound)
	ErrUpdateFailed    = errors.New("update-failed")
	ErrAdvertiseLimit  = fmt.Errorf("advertise-limit-reached: maximum %d tickets can be advertised: %w", MaxAdvertisedTickets, ErrConflict)
	ErrDuplicateVendor = fmt.Errorf("vendor application already exists: %w", ErrConflict)
	ErrInvalidQuantity = fmt.Errorf("quantity must be positive: %w", ErrValidation)
)
