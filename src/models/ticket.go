package models

import (
	"triphub/src/types"

	"github.com/lib/pq"
)

// VendorRef is the vendor identity embedded in every ticket.
type VendorRef struct {
	ID    uint   `json:"id,omitempty"`
	Email string `gorm:"index" json:"email"`
	Name  string `json:"name,omitempty"`
}

type Ticket struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	Title         string             `json:"title"`
	From          string             `json:"from"`
	To            string             `json:"to"`
	TransportType string             `json:"transportType"`
	Perks         pq.StringArray     `gorm:"type:text[]" json:"perks,omitempty"`
	Image         string             `json:"image,omitempty"`
	Vendor        VendorRef          `gorm:"embedded;embeddedPrefix:vendor_" json:"vendor"`
	Status        types.TicketStatus `gorm:"default:'pending';index" json:"status"`
	IsVisible     bool               `gorm:"default:true" json:"isVisible"`
	IsAdvertised  bool               `gorm:"default:false;index" json:"isAdvertised"`
	Price         float64            `gorm:"type:numeric(12,2)" json:"price"`
	Quantity      int                `gorm:"not null;check:quantity_non_negative,quantity >= 0" json:"quantity"`
	DepartureDate string             `json:"departureDate"`
	DepartureTime string             `json:"departureTime"`

	types.Timestamps
}
