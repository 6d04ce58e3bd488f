package common

import (
	"context"
	"log"
	"triphub/src/lib/mailer"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// PaymentSettledHandler mails the receipt and tells the vendor dashboard
// about a freshly settled payment.
type PaymentSettledHandler struct {
	Mailer mailer.Mailer
	Push   func(email string, event string, data any) error
}

func (h *PaymentSettledHandler) Handle(payload string) {
	if !gjson.Valid(payload) {
		log.Printf("[PaymentsSettled] dropping malformed message\n")
		return
	}
	msg := gjson.Parse(payload)
	if msg.Get("event").String() != "payment.settled" {
		return
	}
	customer := msg.Get("customerEmail").String()
	vendor := msg.Get("vendorEmail").String()
	bookingID := uint(msg.Get("bookingId").Uint())

	if customer != "" && h.Mailer != nil {
		receipt := mailer.ReceiptMessage(mailer.Receipt{
			CustomerEmail: customer,
			TicketTitle:   msg.Get("ticketTitle").String(),
			Amount:        decimal.NewFromFloat(msg.Get("amount").Float()).StringFixed(2),
			Currency:      msg.Get("currency").String(),
			TransactionID: msg.Get("transactionId").String(),
			BookingID:     bookingID,
		})
		if err := h.Mailer.Send(context.Background(), receipt); err != nil {
			log.Printf("[PaymentsSettled] receipt for booking %d not sent: %s\n", bookingID, err.Error())
		}
	}
	if vendor != "" && h.Push != nil {
		data := map[string]any{
			"bookingId":   bookingID,
			"ticketTitle": msg.Get("ticketTitle").String(),
			"amount":      msg.Get("amount").Float(),
		}
		if err := h.Push(vendor, "booking-paid", data); err != nil {
			log.Printf("[PaymentsSettled] push to %s failed: %s\n", vendor, err.Error())
		}
	}
}
