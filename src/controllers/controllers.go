package controllers

import (
	"context"
	"triphub/src/lib"
	"triphub/src/moderation"
	"triphub/src/settlement"
	"triphub/src/store"
	"triphub/src/types"

	awslib "triphub/src/lib/aws"
)

type Settler interface {
	Settle(ctx context.Context, sessionID string) (*settlement.Result, error)
}

type CheckoutCreator interface {
	CreateCheckoutSession(ctx context.Context, in lib.CheckoutInput) (*types.CheckoutSession, error)
}

type ImageUploader func(ctx context.Context, prefix string, contentType string) (*awslib.UploadURL, error)

// API holds everything the HTTP handlers call into.
type API struct {
	Store      *store.Store
	Settler    Settler
	Checkout   CheckoutCreator
	Approver   *moderation.Approver
	Cascade    *moderation.Cascade
	Advertiser *moderation.Advertiser
	Uploader   ImageUploader

	Currency string
	AppHost  string
	QRKey    []byte
	TempDir  string
}

// StoreTx adapts store transactions to the approval transaction.
func StoreTx(s *store.Store) moderation.TxRunner {
	return func(ctx context.Context, fn func(tx moderation.VendorTx) error) error {
		return s.Transaction(ctx, func(tx *store.Store) error {
			return fn(tx)
		})
	}
}
