package withdrawal

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

type createRequest struct {
	WalletID          string          `json:"wallet_id" validate:"required,uuid"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	AccountHolderName string          `json:"account_holder_name" validate:"required,min=2,max=100"`
	BankName          string          `json:"bank_name" validate:"required,min=2,max=100"`
	IFSCCode          string          `json:"ifsc_code" validate:"required,ifsc"`
	AccountNumber     string          `json:"account_number" validate:"required,min=6,max=20"`
	ContactInfo       string          `json:"contact_info" validate:"omitempty,max=100"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,withdrawal_status"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	walletID, _ := uuid.Parse(req.WalletID)

	wd, err := h.service.Create(r.Context(), CreateRequest{
		WalletID:          walletID,
		Amount:            req.Amount,
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		IFSCCode:          req.IFSCCode,
		AccountNumber:     req.AccountNumber,
		ContactInfo:       req.ContactInfo,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, wd)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "withdrawalID"))
	if err != nil {
		response.BadRequest(w, "invalid withdrawal id")
		return
	}

	var req updateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	wd, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, wd)
}

func (h *Handler) ListByWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := uuid.Parse(r.URL.Query().Get("wallet_id"))
	if err != nil {
		response.BadRequest(w, "invalid wallet id")
		return
	}

	list, err := h.service.ListByWallet(r.Context(), walletID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, list)
}

func (h *Handler) ListRequested(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRequested(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, list)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "withdrawal not found")
	case errors.Is(err, wallet.ErrNotFound):
		response.NotFound(w, "wallet not found")
	case errors.Is(err, wallet.ErrInactive):
		response.Conflict(w, "wallet is inactive")
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, "amount must be positive")
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "unknown withdrawal status")
	case errors.Is(err, ErrInsufficientBalance):
		response.Error(w, http.StatusConflict, "INSUFFICIENT_BALANCE", "wallet balance is insufficient")
	case errors.Is(err, ErrRequestOutstanding):
		response.Conflict(w, "a withdrawal request is already outstanding")
	case errors.Is(err, ErrAlreadyFinal):
		response.Conflict(w, "withdrawal is already finalized")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListByWallet)
	r.Get("/requested", h.ListRequested)
	r.Patch("/{withdrawalID}/status", h.UpdateStatus)
	return r
}
