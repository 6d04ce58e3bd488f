package models

import (
	"time"
	"triphub/src/types"
)

type Payment struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	Amount        float64             `gorm:"type:numeric(12,2)" json:"amount"`
	Currency      string              `json:"currency"`
	CustomerEmail string              `gorm:"index" json:"customerEmail"`
	VendorEmail   string              `gorm:"index" json:"vendorEmail"`
	TicketTitle   string              `json:"ticketTitle"`
	TicketID      uint                `json:"ticketId"`
	BookingID     uint                `gorm:"index" json:"bookingId"`
	TransactionID string              `gorm:"uniqueIndex;not null" json:"transactionId"`
	PaymentStatus types.PaymentStatus `json:"paymentStatus"`
	PaidAt        time.Time           `json:"paidAt"`

	types.Timestamps
}
