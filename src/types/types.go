package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type Environment string

const (
	Local      Environment = "local"
	Test       Environment = "test"
	Production Environment = "production"
)

type Role string

const (
	ROLE_USER   Role = "user"
	ROLE_VENDOR Role = "vendor"
	ROLE_ADMIN  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case ROLE_USER, ROLE_VENDOR, ROLE_ADMIN:
		return true
	}
	return false
}

type TicketStatus string

const (
	TICKET_PENDING  TicketStatus = "pending"
	TICKET_APPROVED TicketStatus = "approved"
	TICKET_REJECTED TicketStatus = "rejected"
	TICKET_BLOCKED  TicketStatus = "blocked"
)

type BookingStatus string

const (
	BOOKING_PENDING  BookingStatus = "pending"
	BOOKING_ACCEPTED BookingStatus = "accepted"
	BOOKING_REJECTED BookingStatus = "rejected"
)

// PaymentStatus is the payment lifecycle of a Booking. PAYMENT_PENDING marks a
// booking that was briefly paid but whose settlement could not complete.
type PaymentStatus string

const (
	PAYMENT_UNPAID  PaymentStatus = "unpaid"
	PAYMENT_PAID    PaymentStatus = "paid"
	PAYMENT_PENDING PaymentStatus = "pending"
)

type VendorStatus string

const (
	VENDOR_PENDING  VendorStatus = "pending"
	VENDOR_APPROVED VendorStatus = "approved"
	VENDOR_REJECTED VendorStatus = "rejected"
	VENDOR_FRAUD    VendorStatus = "fraud"
)

// MaxAdvertisedTickets caps how many tickets can carry the advertised flag.
const MaxAdvertisedTickets = 6

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type TicketQueryFilters struct {
	Email  string `form:"email"`
	Status string `form:"status"`
}

type CreateTicketRequestBody struct {
	Title         string   `json:"title" binding:"required"`
	From          string   `json:"from" binding:"required"`
	To            string   `json:"to" binding:"required"`
	TransportType string   `json:"transportType" binding:"required"`
	Perks         []string `json:"perks,omitempty"`
	Image         string   `json:"image,omitempty"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Quantity      int      `json:"quantity" binding:"required,min=1"`
	DepartureDate string   `json:"departureDate" binding:"required,futuredate"`
	DepartureTime string   `json:"departureTime" binding:"required"`
}

// UpdateTicketRequestBody only carries the fields a vendor may change. Nil
// fields are left untouched.
type UpdateTicketRequestBody struct {
	Price         *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Quantity      *int     `json:"quantity,omitempty" binding:"omitempty,min=0"`
	DepartureDate *string  `json:"departureDate,omitempty" binding:"omitempty,futuredate"`
	DepartureTime *string  `json:"departureTime,omitempty"`
}

type TicketStatusRequestBody struct {
	Status TicketStatus `json:"status" binding:"required,oneof=pending approved rejected blocked"`
}

type AdvertiseRequestBody struct {
	IsAdvertised *bool `json:"isAdvertised" binding:"required"`
}

type CreateBookingRequestBody struct {
	TicketID uint `json:"ticketId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type BookingQueryFilters struct {
	BookingStatus string `form:"bookingStatus"`
	PaymentStatus string `form:"paymentStatus"`
}

type BookingStatusRequestBody struct {
	BookingStatus BookingStatus `json:"bookingStatus" binding:"required,oneof=accepted rejected"`
}

type CheckoutRequestBody struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

type PaymentSuccessQuery struct {
	SessionID string `form:"session_id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

type CreateVendorRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image,omitempty"`
}

type VendorStatusRequestBody struct {
	Status VendorStatus `json:"status" binding:"required"`
}

type FraudRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyETicketRequestBody struct {
	Code string `json:"code" binding:"required"`
}

type ImageUploadRequestBody struct {
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
}

type Handler func(payload string)

// CheckoutSession is the gateway-neutral view of a hosted checkout session.
// AmountTotal is in the currency's minor units.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url,omitempty"`
	PaymentStatus string            `json:"paymentStatus"`
	PaymentIntent string            `json:"paymentIntent,omitempty"`
	AmountTotal   int64             `json:"amountTotal"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

const SESSION_PAID = "paid"

// Checkout metadata keys round-tripped through the payment gateway.
const (
	META_BOOKING_ID     = "bookingId"
	META_TICKET_ID      = "ticketId"
	META_TICKET_TITLE   = "ticketTitle"
	META_CUSTOMER_EMAIL = "customerEmail"
	META_VENDOR_EMAIL   = "vendorEmail"
)

// VerifiedToken is what the identity provider vouches for.
type VerifiedToken struct {
	UID   string
	Email string
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
