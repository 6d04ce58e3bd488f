package settlement

import "triphub/src/types"

type transition struct {
	from types.PaymentStatus
	to   types.PaymentStatus
}

// The payment lifecycle of a booking. pending is the retry marker left
// behind when a booking was marked paid but could not be settled.
var transitions = []transition{
	{types.PAYMENT_UNPAID, types.PAYMENT_PAID},
	{types.PAYMENT_PENDING, types.PAYMENT_PAID},
	{types.PAYMENT_PAID, types.PAYMENT_PENDING},
}

func CanTransition(from, to types.PaymentStatus) bool {
	for _, t := range transitions {
		if t.from == from && t.to == to {
			return true
		}
	}
	return false
}

// SourcesFor lists every status that may move to `to`. The result is the
// precondition of the conditional update that performs the move.
func SourcesFor(to types.PaymentStatus) []types.PaymentStatus {
	var sources []types.PaymentStatus
	for _, t := range transitions {
		if t.to == to {
			sources = append(sources, t.from)
		}
	}
	return sources
}
