package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage(&SendMailInput{
		From:     "noreply@triphub.example",
		FromName: "TripHub",
		To:       []string{"rider@example.com"},
		Subject:  "Your receipt",
		Body:     "<p>paid</p>",
		Html:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Your receipt"}, msg.GetGenHeader("Subject"))
	assert.Len(t, msg.GetToString(), 1)
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	_, err := BuildMessage(&SendMailInput{From: "noreply@triphub.example", To: []string{"not an address"}})
	assert.Error(t, err)
}
