package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
	"triphub/src/models"
	"triphub/src/monitoring"
	"triphub/src/types"
	"triphub/src/utils"
)

type Outcome string

const (
	OutcomeSuccess               Outcome = "success"
	OutcomeAlreadyProcessed      Outcome = "already-processed"
	OutcomePaymentIncomplete     Outcome = "payment-incomplete"
	OutcomeInsufficientInventory Outcome = "insufficient-inventory"
	OutcomeBookingAlreadyPaid    Outcome = "booking-already-paid"
)

func (o Outcome) HTTPStatus() int {
	switch o {
	case OutcomeSuccess, OutcomeAlreadyProcessed:
		return http.StatusOK
	case OutcomePaymentIncomplete:
		return http.StatusPaymentRequired
	}
	return http.StatusConflict
}

type Result struct {
	Outcome       Outcome         `json:"outcome"`
	BookingID     uint            `json:"bookingId,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	Payment       *models.Payment `json:"payment,omitempty"`
}

type Gateway interface {
	RetrieveSession(ctx context.Context, sessionID string) (*types.CheckoutSession, error)
}

type Store interface {
	FindPaymentByTransaction(ctx context.Context, txID string) (*models.Payment, error)
	TransitionPayment(ctx context.Context, bookingID uint, from []types.PaymentStatus, to types.PaymentStatus) (bool, error)
	FindBooking(ctx context.Context, id uint) (*models.Booking, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
}

type Reserver interface {
	Reserve(ctx context.Context, ticketID uint, qty int) (bool, error)
	Release(ctx context.Context, ticketID uint, qty int) error
}

// Notifier is told about every successful settlement. Failures are logged
// and never change the outcome.
type Notifier interface {
	PaymentSettled(ctx context.Context, payment *models.Payment) error
}

// Coordinator turns a paid checkout session into a paid booking, a
// reserved inventory and a single payment record.
type Coordinator struct {
	gateway  Gateway
	store    Store
	ledger   Reserver
	notifier Notifier
	now      func() time.Time
}

func NewCoordinator(gateway Gateway, store Store, ledger Reserver, notifier Notifier) *Coordinator {
	return &Coordinator{
		gateway:  gateway,
		store:    store,
		ledger:   ledger,
		notifier: notifier,
		now:      time.Now,
	}
}

// outcomeError stops the saga with a terminal, non-error outcome.
type outcomeError struct {
	outcome Outcome
}

func (e *outcomeError) Error() string {
	return string(e.outcome)
}

func stop(outcome Outcome) error {
	return &outcomeError{outcome: outcome}
}

type run struct {
	sessionID     string
	session       *types.CheckoutSession
	bookingID     uint
	transactionID string
	booking       *models.Booking
	payment       *models.Payment
}

// Settle drives the checkout session identified by sessionID to a terminal
// outcome. Store and gateway failures are returned as errors.
func (c *Coordinator) Settle(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required: %w", types.ErrValidation)
	}
	start := time.Now()
	defer func() {
		monitoring.SettlementDuration.Observe(time.Since(start).Seconds())
	}()

	state := &run{sessionID: sessionID}
	err := c.saga().Execute(ctx, state)

	var stopped *outcomeError
	switch {
	case err == nil:
		c.notify(ctx, state.payment)
		return c.finish(state, OutcomeSuccess), nil
	case errors.As(err, &stopped):
		return c.finish(state, stopped.outcome), nil
	}
	monitoring.SettlementOutcomes.WithLabelValues("error").Inc()
	log.Printf("[Settlement] session %s failed: %s\n", sessionID, err.Error())
	return nil, err
}

func (c *Coordinator) finish(state *run, outcome Outcome) *Result {
	monitoring.SettlementOutcomes.WithLabelValues(string(outcome)).Inc()
	log.Printf("[Settlement] session %s booking %d: %s\n", state.sessionID, state.bookingID, outcome)
	return &Result{
		Outcome:       outcome,
		BookingID:     state.bookingID,
		TransactionID: state.transactionID,
		Payment:       state.payment,
	}
}

func (c *Coordinator) notify(ctx context.Context, payment *models.Payment) {
	if c.notifier == nil || payment == nil {
		return
	}
	if err := c.notifier.PaymentSettled(ctx, payment); err != nil {
		log.Printf("[Settlement] could not publish settlement of %s: %s\n", payment.TransactionID, err.Error())
	}
}

func (c *Coordinator) saga() *Saga[*run] {
	return NewSaga(
		Step[*run]{Name: "verify-payment", Run: c.verifyPayment},
		Step[*run]{Name: "check-idempotency", Run: c.checkIdempotency},
		Step[*run]{Name: "mark-paid", Run: c.markPaid, Rollback: c.markPending},
		Step[*run]{Name: "load-booking", Run: c.loadBooking},
		Step[*run]{Name: "reserve-inventory", Run: c.reserve, Rollback: c.release},
		Step[*run]{Name: "record-payment", Run: c.recordPayment},
	)
}

func (c *Coordinator) verifyPayment(ctx context.Context, r *run) error {
	session, err := c.gateway.RetrieveSession(ctx, r.sessionID)
	if err != nil {
		return err
	}
	r.session = session
	if session.PaymentStatus != types.SESSION_PAID {
		return stop(OutcomePaymentIncomplete)
	}
	raw := session.Metadata[types.META_BOOKING_ID]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("session %s carries no valid %s: %w", r.sessionID, types.META_BOOKING_ID, types.ErrValidation)
	}
	r.bookingID = uint(id)
	r.transactionID = session.PaymentIntent
	if r.transactionID == "" {
		r.transactionID = session.ID
	}
	return nil
}

func (c *Coordinator) checkIdempotency(ctx context.Context, r *run) error {
	existing, err := c.store.FindPaymentByTransaction(ctx, r.transactionID)
	if err != nil {
		return err
	}
	if existing != nil {
		r.payment = existing
		return stop(OutcomeAlreadyProcessed)
	}
	return nil
}

func (c *Coordinator) markPaid(ctx context.Context, r *run) error {
	ok, err := c.store.TransitionPayment(ctx, r.bookingID, SourcesFor(types.PAYMENT_PAID), types.PAYMENT_PAID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	// zero rows: either the booking is gone or somebody else paid it
	if _, err := c.store.FindBooking(ctx, r.bookingID); err != nil {
		return err
	}
	return stop(OutcomeBookingAlreadyPaid)
}

func (c *Coordinator) markPending(ctx context.Context, r *run) error {
	ok, err := c.store.TransitionPayment(ctx, r.bookingID, SourcesFor(types.PAYMENT_PENDING), types.PAYMENT_PENDING)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("booking %d was no longer paid: %w", r.bookingID, types.ErrConflict)
	}
	return nil
}

func (c *Coordinator) loadBooking(ctx context.Context, r *run) error {
	booking, err := c.store.FindBooking(ctx, r.bookingID)
	if err != nil {
		return err
	}
	r.booking = booking
	return nil
}

func (c *Coordinator) reserve(ctx context.Context, r *run) error {
	ok, err := c.ledger.Reserve(ctx, r.booking.TicketID, r.booking.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return stop(OutcomeInsufficientInventory)
	}
	return nil
}

func (c *Coordinator) release(ctx context.Context, r *run) error {
	return c.ledger.Release(ctx, r.booking.TicketID, r.booking.Quantity)
}

func (c *Coordinator) recordPayment(ctx context.Context, r *run) error {
	customer := r.session.CustomerEmail
	if customer == "" {
		customer = r.booking.UserEmail
	}
	payment := &models.Payment{
		Amount:        utils.FromMinorUnits(r.session.AmountTotal, r.session.Currency).InexactFloat64(),
		Currency:      r.session.Currency,
		CustomerEmail: customer,
		VendorEmail:   r.booking.VendorEmail,
		TicketTitle:   r.booking.TicketTitle,
		TicketID:      r.booking.TicketID,
		BookingID:     r.booking.ID,
		TransactionID: r.transactionID,
		PaymentStatus: types.PAYMENT_PAID,
		PaidAt:        c.now(),
	}
	if err := c.store.CreatePayment(ctx, payment); err != nil {
		return err
	}
	r.payment = payment
	return nil
}
