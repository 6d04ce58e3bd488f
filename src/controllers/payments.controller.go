package controllers

import (
	"fmt"
	"log"
	"net/http"
	"triphub/src/lib"
	"triphub/src/middlewares"
	"triphub/src/models"
	"triphub/src/settlement"
	"triphub/src/types"
	"triphub/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateCheckoutSession opens a hosted checkout for an accepted, unpaid
// booking of the caller.
func (a *API) CreateCheckoutSession(ctx *gin.Context) (*types.CheckoutSession, int, error) {
	var body types.CheckoutRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	booking, err := a.Store.FindBooking(ctx.Request.Context(), body.BookingID)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	identity := middlewares.GetIdentity(ctx)
	if booking.UserEmail != identity.Email {
		return nil, http.StatusNotFound, fmt.Errorf("booking %d: %w", body.BookingID, types.ErrNotFound)
	}
	if booking.BookingStatus != types.BOOKING_ACCEPTED {
		err := fmt.Errorf("booking %d has not been accepted by the vendor: %w", booking.ID, types.ErrConflict)
		return nil, http.StatusConflict, err
	}
	if booking.PaymentStatus == types.PAYMENT_PAID {
		err := fmt.Errorf("booking %d is already paid: %w", booking.ID, types.ErrConflict)
		return nil, http.StatusConflict, err
	}
	session, err := a.Checkout.CreateCheckoutSession(ctx.Request.Context(), lib.CheckoutInput{
		BookingID:     booking.ID,
		TicketID:      booking.TicketID,
		TicketTitle:   booking.TicketTitle,
		CustomerEmail: booking.UserEmail,
		VendorEmail:   booking.VendorEmail,
		Currency:      a.Currency,
		UnitAmount:    utils.ToMinorUnits(decimal.NewFromFloat(booking.UnitPrice), a.Currency),
		Quantity:      int64(booking.Quantity),
		SuccessURL:    fmt.Sprint(a.AppHost, "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     fmt.Sprint(a.AppHost, "/dashboard/bookings"),
	})
	if err != nil {
		log.Printf("[Checkout] error creating session for booking %d: %s\n", booking.ID, err.Error())
		return nil, utils.StatusFor(err), err
	}
	if err := a.Store.SetCheckoutSession(ctx.Request.Context(), booking.ID, session.ID); err != nil {
		log.Printf("[Checkout] could not save session %s: %s\n", session.ID, err.Error())
	}
	return session, http.StatusOK, nil
}

func (a *API) PaymentSuccess(ctx *gin.Context) (*settlement.Result, int, error) {
	var query types.PaymentSuccessQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	result, err := a.Settler.Settle(ctx.Request.Context(), query.SessionID)
	if err != nil {
		log.Printf("[Settlement] session %s: %s\n", query.SessionID, err.Error())
		return nil, utils.StatusFor(err), err
	}
	return result, result.Outcome.HTTPStatus(), nil
}

func (a *API) OwnPayments(ctx *gin.Context) ([]models.Payment, int, error) {
	identity := middlewares.GetIdentity(ctx)
	payments, err := a.Store.ListPayments(ctx.Request.Context(), "customer_email", identity.Email)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return payments, http.StatusOK, nil
}

func (a *API) VendorPayments(ctx *gin.Context) ([]models.Payment, int, error) {
	identity := middlewares.GetIdentity(ctx)
	payments, err := a.Store.ListPayments(ctx.Request.Context(), "vendor_email", identity.Email)
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return payments, http.StatusOK, nil
}

func (a *API) AllPayments(ctx *gin.Context) ([]models.Payment, int, error) {
	payments, err := a.Store.ListPayments(ctx.Request.Context(), "", "")
	if err != nil {
		return nil, utils.StatusFor(err), err
	}
	return payments, http.StatusOK, nil
}
