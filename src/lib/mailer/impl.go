package mailer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"triphub/src/lib"
	"triphub/src/lib/aws"
	"triphub/src/types"
)

type Mailer interface {
	Send(ctx context.Context, input *lib.SendMailInput) error
}

type sesMailer struct{}

func (sesMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	return aws.SESSendMessage(ctx, input)
}

type smtpMailer struct{}

func (smtpMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	return lib.SendMail(ctx, input)
}

// ForEnv sends through SES in production and through SMTP everywhere else.
func ForEnv(env types.Environment) Mailer {
	if env == types.Production {
		return sesMailer{}
	}
	return smtpMailer{}
}

type Receipt struct {
	CustomerEmail string
	TicketTitle   string
	Amount        string
	Currency      string
	TransactionID string
	BookingID     uint
}

func ReceiptMessage(r Receipt) *lib.SendMailInput {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thanks for travelling with TripHub</h2>")
	fmt.Fprintf(&b, "<p>Your payment for <strong>%s</strong> went through.</p>", r.TicketTitle)
	fmt.Fprintf(&b, "<p>Amount: %s %s<br/>Booking: #%d<br/>Transaction: %s</p>", r.Amount, strings.ToUpper(r.Currency), r.BookingID, r.TransactionID)
	return &lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: "TripHub",
		To:       []string{r.CustomerEmail},
		Subject:  fmt.Sprintf("Receipt for %s", r.TicketTitle),
		Body:     b.String(),
		Html:     true,
	}
}
