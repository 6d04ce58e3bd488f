package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
	"triphub/src/models"
	"triphub/src/types"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey, _ = hex.DecodeString("6368616e676520746869732070617373776f726420746f206120736563726574")

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("bad: %w", types.ErrValidation), http.StatusBadRequest},
		{types.ErrInvalidQuantity, http.StatusBadRequest},
		{types.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("x: %w", types.ErrForbidden), http.StatusForbidden},
		{types.ErrVendorNotFound, http.StatusNotFound},
		{types.ErrAdvertiseLimit, http.StatusConflict},
		{types.ErrDuplicateVendor, http.StatusConflict},
		{types.ErrInventoryExhausted, http.StatusConflict},
		{fmt.Errorf("stripe: %w", types.ErrUpstream), http.StatusBadGateway},
		{types.ErrUpdateFailed, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestMinorUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("45.5").Equal(FromMinorUnits(4550, "usd")))
	assert.True(t, decimal.NewFromInt(4550).Equal(FromMinorUnits(4550, "JPY")))
	assert.Equal(t, int64(1999), ToMinorUnits(decimal.RequireFromString("19.99"), "usd"))
	assert.Equal(t, int64(2000), ToMinorUnits(decimal.RequireFromString("1999.6"), "jpy"))
	assert.Equal(t, "30.30", LineTotal(10.1, 3).StringFixed(2))
}

func TestEncryptRoundTrip(t *testing.T) {
	enc, err := EncryptMessage(testKey, "hello")
	require.NoError(t, err)
	dec, err := DecryptMessage(testKey, enc)
	require.NoError(t, err)
	assert.Equal(t, "hello", dec)

	_, err = DecryptMessage(testKey, "00")
	assert.Error(t, err)
}

func TestGenerateETicket(t *testing.T) {
	dir := t.TempDir()
	booking := &models.Booking{ID: 3, TicketID: 5, UserEmail: "rider@example.com", Quantity: 2}

	file, err := GenerateETicket(testKey, booking, dir)
	require.NoError(t, err)
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestVendorSlug(t *testing.T) {
	assert.Equal(t, "green-line-paribahan", VendorSlug("Green Line Paribahan"))
}

func TestFutureDate(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("futuredate", FutureDate))

	type body struct {
		Date string `validate:"futuredate"`
	}
	tomorrow := time.Now().UTC().Add(48 * time.Hour).Format(DATE_FORMAT)
	assert.NoError(t, v.Struct(body{Date: tomorrow}))
	assert.Error(t, v.Struct(body{Date: "2001-01-01"}))
	assert.Error(t, v.Struct(body{Date: "next week"}))
}

func TestETicketRoundTrip(t *testing.T) {
	booking := &models.Booking{ID: 3, TicketID: 5, UserEmail: "rider@example.com", Quantity: 2}

	code, err := ETicketCode(testKey, booking)
	require.NoError(t, err)
	ticket, err := ReadETicket(testKey, code)
	require.NoError(t, err)
	assert.Equal(t, ETicket{BookingID: 3, TicketID: 5, Email: "rider@example.com", Quantity: 2}, *ticket)
}

func TestReadETicketRejectsForeignCodes(t *testing.T) {
	otherKey := make([]byte, 32)
	code, err := ETicketCode(otherKey, &models.Booking{ID: 3})
	require.NoError(t, err)

	_, err = ReadETicket(testKey, code)
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = ReadETicket(testKey, "not-a-code")
	assert.ErrorIs(t, err, types.ErrValidation)

	notJSON, err := EncryptMessage(testKey, "hello")
	require.NoError(t, err)
	_, err = ReadETicket(testKey, notJSON)
	assert.ErrorIs(t, err, types.ErrValidation)
}
