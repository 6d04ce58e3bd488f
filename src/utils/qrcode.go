package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"triphub/src/models"
	"triphub/src/types"

	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode"
)

type ETicket struct {
	BookingID uint   `json:"bookingId"`
	TicketID  uint   `json:"ticketId"`
	Email     string `json:"email"`
	Quantity  int    `json:"quantity"`
}

// ETicketCode is the encrypted text carried by the e-ticket QR code of
// booking.
func ETicketCode(key []byte, booking *models.Booking) (string, error) {
	raw, err := json.Marshal(ETicket{
		BookingID: booking.ID,
		TicketID:  booking.TicketID,
		Email:     booking.UserEmail,
		Quantity:  booking.Quantity,
	})
	if err != nil {
		return "", err
	}
	encrypted, err := EncryptMessage(key, string(raw))
	if err != nil {
		return "", fmt.Errorf("encrypting e-ticket: %w", err)
	}
	return encrypted, nil
}

// GenerateETicket writes the QR code of an encrypted e-ticket for booking
// into dir and returns the file path.
func GenerateETicket(key []byte, booking *models.Booking, dir string) (string, error) {
	encrypted, err := ETicketCode(key, booking)
	if err != nil {
		return "", err
	}
	qrc, err := qrcode.New(encrypted)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filepath := path.Join(dir, fmt.Sprintf("%s.jpeg", uuid.New().String()))
	if err := qrc.Save(filepath); err != nil {
		return "", fmt.Errorf("could not save qrcode to file [%s]: %w", filepath, err)
	}
	return filepath, nil
}

// ReadETicket decrypts the text scanned from an e-ticket QR code.
func ReadETicket(key []byte, scanned string) (*ETicket, error) {
	plain, err := DecryptMessage(key, scanned)
	if err != nil {
		return nil, fmt.Errorf("unreadable e-ticket: %w", types.ErrValidation)
	}
	var t ETicket
	if err := json.Unmarshal([]byte(plain), &t); err != nil {
		return nil, fmt.Errorf("malformed e-ticket: %w", types.ErrValidation)
	}
	return &t, nil
}
