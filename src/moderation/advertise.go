package moderation

import (
	"context"
	"fmt"
	"triphub/src/monitoring"
	"triphub/src/types"
)

type AdvertiseStore interface {
	CountAdvertised(ctx context.Context) (int64, error)
	SetAdvertised(ctx context.Context, ticketID uint, advertised bool) error
}

type Advertiser struct {
	store AdvertiseStore
	limit int64
}

func NewAdvertiser(store AdvertiseStore) *Advertiser {
	return &Advertiser{store: store, limit: types.MaxAdvertisedTickets}
}

// SetAdvertised flags or unflags a ticket as advertised. Unflagging always
// succeeds.
//
// The limit is a count followed by a separate update with no transaction
// around them. Two callers that both read limit-1 will both set their flag,
// so n concurrent callers can overshoot the limit by up to n-1.
func (a *Advertiser) SetAdvertised(ctx context.Context, ticketID uint, advertised bool) error {
	if !advertised {
		return a.store.SetAdvertised(ctx, ticketID, false)
	}
	count, err := a.store.CountAdvertised(ctx)
	if err != nil {
		return fmt.Errorf("counting advertised tickets: %w", err)
	}
	if count >= a.limit {
		monitoring.AdvertiseRejections.Inc()
		return types.ErrAdvertiseLimit
	}
	return a.store.SetAdvertised(ctx, ticketID, true)
}
