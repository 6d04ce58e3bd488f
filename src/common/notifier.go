package common

import (
	"context"
	"encoding/json"
	"triphub/src/lib"
	"triphub/src/models"
	"triphub/src/types"
)

type PaymentSettledEvent struct {
	Event         string  `json:"event"`
	PaymentID     uint    `json:"paymentId"`
	BookingID     uint    `json:"bookingId"`
	TicketID      uint    `json:"ticketId"`
	TicketTitle   string  `json:"ticketTitle"`
	CustomerEmail string  `json:"customerEmail"`
	VendorEmail   string  `json:"vendorEmail"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	TransactionID string  `json:"transactionId"`
	PaidAt        string  `json:"paidAt"`
}

func NewPaymentSettledEvent(p *models.Payment) PaymentSettledEvent {
	return PaymentSettledEvent{
		Event:         "payment.settled",
		PaymentID:     p.ID,
		BookingID:     p.BookingID,
		TicketID:      p.TicketID,
		TicketTitle:   p.TicketTitle,
		CustomerEmail: p.CustomerEmail,
		VendorEmail:   p.VendorEmail,
		Amount:        p.Amount,
		Currency:      p.Currency,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// SettlementNotifier publishes payment.settled for the queue consumers.
type SettlementNotifier struct {
	Env types.Environment
}

func (n SettlementNotifier) PaymentSettled(ctx context.Context, p *models.Payment) error {
	event := NewPaymentSettledEvent(p)
	queue := lib.WithSuffix(PaymentsSettledQueue)
	if n.Env == types.Local {
		return lib.KafkaProduceMessage("triphub-api", queue, event)
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return lib.SQSProduceMessage(ctx, queue, string(body))
}
