package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
	"github.com/swiftride/swiftride-api/internal/pkg/gateway"
)

// Ledger is the wallet capability the settlement engine needs.
// Implemented by *wallet.Service.
type Ledger interface {
	GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	LockByID(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*wallet.Wallet, error)
	UpdateBalances(ctx context.Context, tx *sqlx.Tx, w *wallet.Wallet) error
	Invalidate(ctx context.Context, driverID uuid.UUID)
}

type Service struct {
	repo    *Repository
	ledger  Ledger
	gateway gateway.Gateway
	feeRate decimal.Decimal
}

func NewService(repo *Repository, ledger Ledger, gw gateway.Gateway, feeRate decimal.Decimal) *Service {
	if feeRate.IsZero() {
		feeRate = DefaultFeeRate
	}
	return &Service{repo: repo, ledger: ledger, gateway: gw, feeRate: feeRate}
}

// CreateOrderRequest carries a client's intent to pay for a ride
type CreateOrderRequest struct {
	WalletID uuid.UUID
	RideID   uuid.UUID
	RiderID  uuid.UUID
	DriverID uuid.UUID
	Amount   decimal.Decimal
	Method   Method
}

// CreateOrderResponse is what the checkout client needs to proceed
type CreateOrderResponse struct {
	OrderID   string          `json:"order_id"`
	KeyID     string          `json:"key_id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	Status    Status          `json:"status"`
	Method    Method          `json:"payment_method"`
	Meta      json.RawMessage `json:"provider_metadata,omitempty"`
}

// CreateOrder registers a payment intent with the gateway and persists
// the PENDING payment order. Gateway failure leaves no row behind.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	amount := quantize(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	switch req.Method {
	case MethodCard, MethodUPI, MethodCash:
	default:
		return nil, ErrInvalidMethod
	}

	if _, err := s.ledger.GetByID(ctx, req.WalletID); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, amount.Shift(2).IntPart(), "INR")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	p := &Payment{
		ID:       uuid.New(),
		WalletID: req.WalletID,
		RideID:   req.RideID,
		RiderID:  req.RiderID,
		DriverID: req.DriverID,
		Amount:   amount,
		Method:   req.Method,
		Status:   StatusPending,
		Metadata: JSONRawMessage(order.Raw),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("payment_id", p.ID.String()).
		Str("order_id", order.ID).
		Str("amount", amount.String()).
		Str("method", string(req.Method)).
		Msg("payment order created")

	return &CreateOrderResponse{
		OrderID:   order.ID,
		KeyID:     s.gateway.KeyID(),
		PaymentID: p.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    p.Status,
		Method:    p.Method,
		Meta:      order.Raw,
	}, nil
}

// VerifyRequest is the gateway-issued proof a client submits after the
// rider confirms payment.
type VerifyRequest struct {
	PaymentID uuid.UUID
	OrderID   string
	GatewayID string // gateway's payment identifier
	Signature string
}

// Verify validates the payment proof, marks the payment SUCCESS and
// settles the wallet, all in one transaction. A failed signature check
// marks the payment FAILED (terminal) so no order stays PENDING forever.
// Re-verifying an already-SUCCESS payment is a no-op: settlement is
// exactly-once per payment.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusFailed {
		return nil, ErrInvalidProof
	}

	// The proof must reference the gateway order this payment was
	// created with. A signature over a foreign (order, payment) pair is
	// rejected without touching the payment, even when it verifies.
	if orderIDFromMetadata(p.Metadata) != req.OrderID {
		return nil, ErrInvalidProof
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.GatewayID, req.Signature); err != nil {
		if markErr := s.repo.MarkFailed(ctx, p.ID); markErr != nil {
			log.Error().Err(markErr).Str("payment_id", p.ID.String()).Msg("failed to mark payment failed")
		}
		log.Warn().
			Str("payment_id", p.ID.String()).
			Str("order_id", req.OrderID).
			Msg("payment signature rejected")
		if errors.Is(err, gateway.ErrSignatureInvalid) {
			return nil, ErrInvalidProof
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	tx, err := s.repo.BeginTxx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err = s.repo.GetByIDForUpdate(ctx, tx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	// re-check under the row lock
	if orderIDFromMetadata(p.Metadata) != req.OrderID {
		return nil, ErrInvalidProof
	}
	if p.IsSettled() {
		// concurrent or repeated verify; settlement already applied
		return p, tx.Commit()
	}

	metadata, err := mergeProof(p.Metadata, req)
	if err != nil {
		return nil, err
	}

	w, err := s.ledger.LockByID(ctx, tx, p.WalletID)
	if err != nil {
		return nil, err
	}

	result := settle(w, p.Amount, p.Method, s.feeRate)

	if err := s.ledger.UpdateBalances(ctx, tx, w); err != nil {
		return nil, err
	}
	if err := s.repo.MarkSuccess(ctx, tx, p.ID, metadata); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.ledger.Invalidate(ctx, w.DriverID)

	p.Status = StatusSuccess
	p.Metadata = metadata

	log.Info().
		Str("payment_id", p.ID.String()).
		Str("wallet_id", w.ID.String()).
		Str("amount", result.Amount.String()).
		Str("admin_fee", result.AdminFee.String()).
		Str("net", result.Net.String()).
		Str("method", string(p.Method)).
		Msg("payment settled")

	return p, nil
}

// ListSuccessful returns SUCCESS payments, optionally filtered by wallet
// or ride.
func (s *Service) ListSuccessful(ctx context.Context, walletID, rideID *uuid.UUID) ([]*Payment, error) {
	return s.repo.ListSuccessful(ctx, walletID, rideID)
}

// orderIDFromMetadata pulls the gateway order id out of the provider
// payload stored at order creation.
func orderIDFromMetadata(metadata JSONRawMessage) string {
	if len(metadata) == 0 {
		return ""
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(metadata, &payload); err != nil {
		return ""
	}
	return payload.ID
}

// mergeProof folds the confirmation proof fields into the stored gateway
// order payload.
func mergeProof(metadata JSONRawMessage, req VerifyRequest) (JSONRawMessage, error) {
	merged := map[string]interface{}{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &merged); err != nil {
			return nil, err
		}
	}
	merged["razorpay_order_id"] = req.OrderID
	merged["razorpay_payment_id"] = req.GatewayID
	merged["razorpay_signature"] = req.Signature

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return JSONRawMessage(out), nil
}
