package service

import "context"

// OrderRequest asks the gateway for an order handle. Amount is in the
// smallest currency unit (paise for INR).
type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
	Status      string
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// VerifySignature checks the widget's success callback against the
	// gateway secret.
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}
