package settlement

import (
	"context"
	"log"
	"time"
	"triphub/src/models"
)

type PendingLister interface {
	PendingRetries(ctx context.Context, olderThan time.Duration, limit int) ([]models.Booking, error)
}

// RetryPending settles again every booking parked in the pending state. It
// returns the outcome per booking id; bookings whose retry errored are
// logged and left out.
func (c *Coordinator) RetryPending(ctx context.Context, lister PendingLister, olderThan time.Duration, limit int) (map[uint]Outcome, error) {
	bookings, err := lister.PendingRetries(ctx, olderThan, limit)
	if err != nil {
		return nil, err
	}
	outcomes := make(map[uint]Outcome, len(bookings))
	for _, booking := range bookings {
		if booking.CheckoutSessionID == nil {
			continue
		}
		res, err := c.Settle(ctx, *booking.CheckoutSessionID)
		if err != nil {
			log.Printf("[Settlement] retry of booking %d failed: %s\n", booking.ID, err.Error())
			continue
		}
		outcomes[booking.ID] = res.Outcome
	}
	return outcomes, nil
}
