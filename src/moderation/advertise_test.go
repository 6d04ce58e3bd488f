package moderation

import (
	"context"
	"testing"
	"triphub/src/models"
	"triphub/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTickets(db *memDB, advertised int, total int) {
	for i := 1; i <= total; i++ {
		db.tickets[uint(i)] = models.Ticket{ID: uint(i), IsAdvertised: i <= advertised}
	}
}

func TestAdvertiseSeventhTicketFails(t *testing.T) {
	db := newMemDB()
	seedTickets(db, 6, 7)
	advertiser := NewAdvertiser(db)

	err := advertiser.SetAdvertised(context.Background(), 7, true)
	assert.ErrorIs(t, err, types.ErrAdvertiseLimit)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.False(t, db.tickets[7].IsAdvertised)
}

func TestAdvertiseBelowLimit(t *testing.T) {
	db := newMemDB()
	seedTickets(db, 5, 7)
	advertiser := NewAdvertiser(db)

	require.NoError(t, advertiser.SetAdvertised(context.Background(), 6, true))
	assert.True(t, db.tickets[6].IsAdvertised)
	assert.ErrorIs(t, advertiser.SetAdvertised(context.Background(), 7, true), types.ErrAdvertiseLimit)
}

func TestUnadvertiseAlwaysSucceeds(t *testing.T) {
	db := newMemDB()
	seedTickets(db, 6, 7)
	advertiser := NewAdvertiser(db)

	require.NoError(t, advertiser.SetAdvertised(context.Background(), 3, false))
	assert.False(t, db.tickets[3].IsAdvertised)
	require.NoError(t, advertiser.SetAdvertised(context.Background(), 7, true))
}

func TestAdvertiseUnknownTicket(t *testing.T) {
	advertiser := NewAdvertiser(newMemDB())

	assert.ErrorIs(t, advertiser.SetAdvertised(context.Background(), 1, true), types.ErrNotFound)
}

func TestFlaggedVendorFreesAdvertiseSlots(t *testing.T) {
	db := newMemDB()
	seedFraudster(db, 6)
	for id := uint(1); id <= 6; id++ {
		ticket := db.tickets[id]
		ticket.IsAdvertised = true
		db.tickets[id] = ticket
	}
	advertiser := NewAdvertiser(db)
	require.ErrorIs(t, advertiser.SetAdvertised(context.Background(), 100, true), types.ErrAdvertiseLimit)

	_, err := NewCascade(db, nil, nil).FlagFraud(context.Background(), fraudster)
	require.NoError(t, err)

	require.NoError(t, advertiser.SetAdvertised(context.Background(), 100, true))
	assert.True(t, db.tickets[100].IsAdvertised)
	for id := uint(1); id <= 6; id++ {
		assert.False(t, db.tickets[id].IsAdvertised, "ticket %d", id)
	}
}
