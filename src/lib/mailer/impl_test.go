package mailer

import (
	"testing"
	"triphub/src/types"

	"github.com/stretchr/testify/assert"
)

func TestForEnv(t *testing.T) {
	assert.IsType(t, sesMailer{}, ForEnv(types.Production))
	assert.IsType(t, smtpMailer{}, ForEnv(types.Local))
	assert.IsType(t, smtpMailer{}, ForEnv(types.Test))
}

func TestReceiptMessage(t *testing.T) {
	msg := ReceiptMessage(Receipt{
		CustomerEmail: "rider@example.com",
		TicketTitle:   "Dhaka to Sylhet",
		Amount:        "45.50",
		Currency:      "usd",
		TransactionID: "pi_1",
		BookingID:     3,
	})
	assert.Equal(t, []string{"rider@example.com"}, msg.To)
	assert.Equal(t, "Receipt for Dhaka to Sylhet", msg.Subject)
	assert.Contains(t, msg.Body, "45.50 USD")
	assert.Contains(t, msg.Body, "#3")
	assert.True(t, msg.Html)
}
