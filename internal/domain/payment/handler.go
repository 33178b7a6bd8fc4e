package payment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftride/swiftride-api/internal/domain/wallet"
	"github.com/swiftride/swiftride-api/internal/pkg/response"
	"github.com/swiftride/swiftride-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createOrderRequest struct {
	WalletID string          `json:"wallet_id" validate:"required,uuid"`
	RideID   string          `json:"ride_id" validate:"required,uuid"`
	RiderID  string          `json:"rider_id" validate:"required,uuid"`
	DriverID string          `json:"driver_id" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Method   string          `json:"payment_method" validate:"required,payment_method"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	walletID, _ := uuid.Parse(req.WalletID)
	rideID, _ := uuid.Parse(req.RideID)
	riderID, _ := uuid.Parse(req.RiderID)
	driverID, _ := uuid.Parse(req.DriverID)

	resp, err := h.svc.CreateOrder(r.Context(), CreateOrderRequest{
		WalletID: walletID,
		RideID:   rideID,
		RiderID:  riderID,
		DriverID: driverID,
		Amount:   req.Amount,
		Method:   Method(req.Method),
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			response.NotFound(w, "wallet not found")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "amount must be greater than zero")
		case errors.Is(err, ErrInvalidMethod):
			response.BadRequest(w, "payment method must be one of CARD, UPI, CASH")
		case errors.Is(err, ErrGateway):
			response.BadGateway(w, "payment gateway unavailable")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

type verifyRequest struct {
	PaymentID string `json:"payment_id" validate:"required,uuid"`
	OrderID   string `json:"razorpay_order_id" validate:"required,min=10"`
	GatewayID string `json:"razorpay_payment_id" validate:"required,min=10"`
	Signature string `json:"razorpay_signature" validate:"required,min=10"`
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	paymentID, _ := uuid.Parse(req.PaymentID)

	p, err := h.svc.Verify(r.Context(), VerifyRequest{
		PaymentID: paymentID,
		OrderID:   req.OrderID,
		GatewayID: req.GatewayID,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, wallet.ErrNotFound):
			response.NotFound(w, "payment not found")
		case errors.Is(err, ErrInvalidProof):
			response.BadRequest(w, "payment verification failed")
		case errors.Is(err, ErrGateway):
			response.BadGateway(w, "payment gateway unavailable")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{"status": p.Status, "payment": p})
}

func (h *Handler) ListSuccessful(w http.ResponseWriter, r *http.Request) {
	var walletID, rideID *uuid.UUID

	if raw := r.URL.Query().Get("wallet_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid wallet_id")
			return
		}
		walletID = &id
	}
	if raw := r.URL.Query().Get("ride_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid ride_id")
			return
		}
		rideID = &id
	}

	payments, err := h.svc.ListSuccessful(r.Context(), walletID, rideID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, payments)
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/orders", h.CreateOrder)
	r.Post("/verify", h.Verify)
	r.Get("/successful", h.ListSuccessful)
	return r
}
