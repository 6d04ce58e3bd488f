package inventory

import (
	"context"
	"fmt"
	"triphub/src/types"
)

// Counter is the store primitive behind the ledger. DecrementIfAvailable
// must be a single conditional update: it succeeds only while the stored
// quantity is at least qty.
type Counter interface {
	DecrementIfAvailable(ctx context.Context, ticketID uint, qty int) (bool, error)
	Increment(ctx context.Context, ticketID uint, qty int) error
}

// Ledger owns ticket quantities. It never lets a quantity go negative and
// carries no compensation logic of its own.
type Ledger struct {
	counter Counter
}

func NewLedger(counter Counter) *Ledger {
	return &Ledger{counter: counter}
}

// Reserve takes qty units of the ticket and reports whether it could.
func (l *Ledger) Reserve(ctx context.Context, ticketID uint, qty int) (bool, error) {
	if qty <= 0 {
		return false, types.ErrInvalidQuantity
	}
	ok, err := l.counter.DecrementIfAvailable(ctx, ticketID, qty)
	if err != nil {
		return false, fmt.Errorf("reserving %d of ticket %d: %w", qty, ticketID, err)
	}
	return ok, nil
}

// Release hands qty units back to the ticket.
func (l *Ledger) Release(ctx context.Context, ticketID uint, qty int) error {
	if qty <= 0 {
		return types.ErrInvalidQuantity
	}
	if err := l.counter.Increment(ctx, ticketID, qty); err != nil {
		return fmt.Errorf("releasing %d of ticket %d: %w", qty, ticketID, err)
	}
	return nil
}
