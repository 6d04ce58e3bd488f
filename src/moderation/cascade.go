package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"triphub/src/monitoring"
	"triphub/src/types"
)

type CascadeStore interface {
	SetVendorStatusByEmail(ctx context.Context, email string, status types.VendorStatus) (int64, error)
	SetUserRole(ctx context.Context, email string, role types.Role) (int64, error)
	BlockVendorTickets(ctx context.Context, email string) (int64, error)
}

type Publisher interface {
	VendorFlagged(ctx context.Context, email string) error
}

type UpdateSummary struct {
	Matched int64  `json:"matched"`
	Error   string `json:"error,omitempty"`
}

type CascadeResult struct {
	Email   string        `json:"email"`
	Vendor  UpdateSummary `json:"vendor"`
	User    UpdateSummary `json:"user"`
	Tickets UpdateSummary `json:"tickets"`
}

// Cascade applies a fraud determination to a vendor, its user and its
// tickets. The three updates are independent: each is atomic on its own,
// a failure of one does not stop the others.
type Cascade struct {
	store     CascadeStore
	roles     RoleInvalidator
	publisher Publisher
}

func NewCascade(store CascadeStore, roles RoleInvalidator, publisher Publisher) *Cascade {
	return &Cascade{store: store, roles: roles, publisher: publisher}
}

func (c *Cascade) FlagFraud(ctx context.Context, email string) (*CascadeResult, error) {
	if email == "" {
		return nil, fmt.Errorf("vendor email is required: %w", types.ErrValidation)
	}
	res := &CascadeResult{Email: email}
	var errs []error

	apply := func(name string, summary *UpdateSummary, update func() (int64, error)) {
		n, err := update()
		summary.Matched = n
		if err != nil {
			summary.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	apply("vendor", &res.Vendor, func() (int64, error) {
		return c.store.SetVendorStatusByEmail(ctx, email, types.VENDOR_FRAUD)
	})
	apply("user", &res.User, func() (int64, error) {
		return c.store.SetUserRole(ctx, email, types.ROLE_USER)
	})
	apply("tickets", &res.Tickets, func() (int64, error) {
		return c.store.BlockVendorTickets(ctx, email)
	})

	if c.roles != nil {
		if err := c.roles.Invalidate(ctx, email); err != nil {
			log.Printf("[Moderation] could not invalidate cached role of %s: %s\n", email, err.Error())
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Printf("[Moderation] fraud cascade for %s incomplete: %s\n", email, err.Error())
		return res, err
	}
	monitoring.FraudFlags.Inc()

	if c.publisher != nil {
		if err := c.publisher.VendorFlagged(ctx, email); err != nil {
			log.Printf("[Moderation] could not publish fraud flag of %s: %s\n", email, err.Error())
		}
	}
	return res, nil
}
