package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrSignatureInvalid is returned when a payment confirmation proof does
// not match the expected gateway signature.
var ErrSignatureInvalid = errors.New("payment signature invalid")

// Order is a payment order registered with the external gateway.
type Order struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"` // minor units (paise)
	Currency string          `json:"currency"`
	Raw      json.RawMessage `json:"-"` // full provider payload, stored as payment metadata
}

// Gateway is the payment-gateway capability consumed by the payment
// service. It is constructed once per process and injected explicitly.
type Gateway interface {
	// CreateOrder registers a payment intent with the provider.
	// Amount is in minor currency units.
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error)

	// VerifySignature checks a client-submitted payment proof.
	// Returns ErrSignatureInvalid when the proof does not verify.
	VerifySignature(orderID, paymentID, signature string) error

	// KeyID returns the public key identifier checkout clients embed
	// when opening the payment widget.
	KeyID() string
}
