package models

import "triphub/src/types"

type Booking struct {
	ID                uint                `gorm:"primarykey" json:"id"`
	TicketID          uint                `gorm:"index" json:"ticketId"`
	TicketTitle       string              `json:"ticketTitle,omitempty"`
	UserEmail         string              `gorm:"index" json:"userEmail"`
	VendorEmail       string              `gorm:"index" json:"vendorEmail"`
	Quantity          int                 `gorm:"not null;check:quantity_positive,quantity > 0" json:"quantity"`
	UnitPrice         float64             `gorm:"type:numeric(12,2)" json:"unitPrice"`
	TotalPrice        float64             `gorm:"type:numeric(12,2)" json:"totalPrice"`
	BookingStatus     types.BookingStatus `gorm:"default:'pending'" json:"bookingStatus"`
	PaymentStatus     types.PaymentStatus `gorm:"default:'unpaid';index" json:"paymentStatus"`
	CheckoutSessionID *string             `json:"checkoutSessionId,omitempty"`

	Ticket *Ticket `gorm:"foreignKey:ticket_id" json:"ticket,omitempty"`

	types.Timestamps
}
