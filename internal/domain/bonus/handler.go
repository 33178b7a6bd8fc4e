package bonus

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
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type grantRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
	if err != nil {
		response.BadRequest(w, "invalid wallet id")
		return
	}

	var req grantRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	wal, err := h.service.Grant(r.Context(), walletID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			response.NotFound(w, "wallet not found")
		case errors.Is(err, wallet.ErrInactive):
			response.Conflict(w, "wallet is inactive")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "amount must be positive")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, wal)
}

func (h *Handler) GrantAll(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	granted, failed, err := h.service.GrantAll(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, "amount must be positive")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]int{"granted": granted, "failed": failed})
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/wallet/{walletID}", h.Grant)
	r.Post("/all", h.GrantAll)
	return r
}
