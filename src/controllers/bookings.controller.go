package controllers

import (
	"fmt"
	"log"
	"net/http"
	"triphub/src/middlewares"
	"triphub/src/models"
	"triphub/src/types"
	"triphub/src/utils"

	"github.com/gin-gonic/gin"
)

func (a *API) CreateBooking(ctx *gin.Context) (*models.Booking, int, error) {
	var body types.CreateBookingRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	ticket, err := a.Store.FindTicket(ctx.Request.Context(), body.TicketID)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	if ticket.Status != types.TICKET_APPROVED || !ticket.IsVisible {
		err := fmt.Errorf("ticket %d is not available: %w", ticket.ID, types.ErrNotFound)
		return nil, http.StatusNotFound, err
	}
	if body.Quantity > ticket.Quantity {
		err := fmt.Errorf("only %d seats left: %w", ticket.Quantity, types.ErrValidation)
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	booking := &models.Booking{
		TicketID:      ticket.ID,
		TicketTitle:   ticket.Title,
		UserEmail:     identity.Email,
		VendorEmail:   ticket.Vendor.Email,
		Quantity:      body.Quantity,
		UnitPrice:     ticket.Price,
		TotalPrice:    utils.LineTotal(ticket.Price, body.Quantity).InexactFloat64(),
		BookingStatus: types.BOOKING_PENDING,
		PaymentStatus: types.PAYMENT_UNPAID,
	}
	if err := a.Store.CreateBooking(ctx.Request.Context(), booking); err != nil {
		log.Printf("Error creating booking: %s\n", err.Error())
		return nil, utils.StatusFor(err), err
	}
	return booking, http.StatusCreated, nil
}

func (a *API) listBookings(ctx *gin.Context, column string) ([]models.Booking, int, error) {
	var filters types.BookingQueryFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		return nil, http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	bookings, err := a.Store.ListBookings(ctx.Request.Context(), column, identity.Email, filters)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return bookings, http.StatusOK, nil
}

func (a *API) OwnBookings(ctx *gin.Context) ([]models.Booking, int, error) {
	return a.listBookings(ctx, "user_email")
}

func (a *API) VendorBookings(ctx *gin.Context) ([]models.Booking, int, error) {
	return a.listBookings(ctx, "vendor_email")
}

func (a *API) SetBookingStatus(ctx *gin.Context) (int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return http.StatusBadRequest, err
	}
	var body types.BookingStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	identity := middlewares.GetIdentity(ctx)
	if err := a.Store.SetBookingStatus(ctx.Request.Context(), params.ID, identity.Email, body.BookingStatus); err != nil {
		return utils.StatusFor(err), err
	}
	return http.StatusOK, nil
}

// BookingQRCode renders the e-ticket of a paid booking owned by the caller
// and returns the path of the image.
func (a *API) BookingQRCode(ctx *gin.Context) (*string, int, error) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	booking, err := a.Store.FindBooking(ctx.Request.Context(), params.ID)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	identity := middlewares.GetIdentity(ctx)
	if booking.UserEmail != identity.Email {
		return nil, http.StatusNotFound, fmt.Errorf("booking %d: %w", params.ID, types.ErrNotFound)
	}
	if booking.PaymentStatus != types.PAYMENT_PAID {
		return nil, http.StatusConflict, fmt.Errorf("booking %d is not paid: %w", params.ID, types.ErrConflict)
	}
	filepath, err := utils.GenerateETicket(a.QRKey, booking, a.TempDir)
	if err != nil {
		log.Printf("Error generating e-ticket: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &filepath, http.StatusOK, nil
}

// VerifyETicket checks a scanned e-ticket against the vendor's paid
// bookings and returns the booking it admits.
func (a *API) VerifyETicket(ctx *gin.Context) (*models.Booking, int, error) {
	var body types.VerifyETicketRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	ticket, err := utils.ReadETicket(a.QRKey, body.Code)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	booking, err := a.Store.FindBooking(ctx.Request.Context(), ticket.BookingID)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	identity := middlewares.GetIdentity(ctx)
	if booking.VendorEmail != identity.Email {
		return nil, http.StatusNotFound, fmt.Errorf("booking %d: %w", ticket.BookingID, types.ErrNotFound)
	}
	if booking.PaymentStatus != types.PAYMENT_PAID {
		return nil, http.StatusConflict, fmt.Errorf("booking %d is not paid: %w", booking.ID, types.ErrConflict)
	}
	if booking.UserEmail != ticket.Email || booking.TicketID != ticket.TicketID || booking.Quantity != ticket.Quantity {
		log.Printf("[ETicket] booking %d does not match the scanned e-ticket\n", booking.ID)
		return nil, http.StatusBadRequest, fmt.Errorf("e-ticket does not match booking %d: %w", booking.ID, types.ErrValidation)
	}
	return booking, http.StatusOK, nil
}
