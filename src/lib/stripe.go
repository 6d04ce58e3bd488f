package lib

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"triphub/src/types"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

type CheckoutInput struct {
	BookingID     uint
	TicketID      uint
	TicketTitle   string
	CustomerEmail string
	VendorEmail   string
	Currency      string
	UnitAmount    int64
	Quantity      int64
	SuccessURL    string
	CancelURL     string
}

// StripeGateway is the payment gateway backed by Stripe hosted checkout.
type StripeGateway struct {
	client *stripe.Client
}

func NewStripeGateway(c *stripe.Client) *StripeGateway {
	return &StripeGateway{client: c}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*types.CheckoutSession, error) {
	metadata := map[string]string{
		types.META_BOOKING_ID:     fmt.Sprint(in.BookingID),
		types.META_TICKET_ID:      fmt.Sprint(in.TicketID),
		types.META_TICKET_TITLE:   in.TicketTitle,
		types.META_CUSTOMER_EMAIL: in.CustomerEmail,
		types.META_VENDOR_EMAIL:   in.VendorEmail,
	}
	piParams := &stripe.CheckoutSessionCreatePaymentIntentDataParams{}
	for k, v := range metadata {
		piParams.AddMetadata(k, v)
	}
	params := &stripe.CheckoutSessionCreateParams{
		SuccessURL:        stripe.String(in.SuccessURL),
		CancelURL:         stripe.String(in.CancelURL),
		UIMode:            stripe.String("hosted"),
		Mode:              stripe.String("payment"),
		CustomerEmail:     stripe.String(in.CustomerEmail),
		PaymentIntentData: piParams,
		Metadata:          metadata,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(in.UnitAmount),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(in.TicketTitle),
					},
				},
				Quantity: stripe.Int64(in.Quantity),
			},
		},
	}
	session, err := g.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, stripeError("creating checkout session", err)
	}
	return toCheckoutSession(session), nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*types.CheckoutSession, error) {
	session, err := g.client.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		return nil, stripeError("retrieving checkout session "+sessionID, err)
	}
	return toCheckoutSession(session), nil
}

func stripeError(what string, err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	return fmt.Errorf("%s: %s: %w", what, err.Error(), types.ErrUpstream)
}

func toCheckoutSession(s *stripe.CheckoutSession) *types.CheckoutSession {
	out := &types.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
