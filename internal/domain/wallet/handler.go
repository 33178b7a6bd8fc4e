package wallet

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftride/swiftride-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetByDriver(w http.ResponseWriter, r *http.Request) {
	driverID, err := uuid.Parse(chi.URLParam(r, "driverID"))
	if err != nil {
		response.BadRequest(w, "invalid driver id")
		return
	}

	wallet, err := h.svc.GetByDriver(r.Context(), driverID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "wallet not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, wallet)
}

func (h *Handler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	driverID, err := uuid.Parse(chi.URLParam(r, "driverID"))
	if err != nil {
		response.BadRequest(w, "invalid driver id")
		return
	}

	wallet, err := h.svc.GetOrCreate(r.Context(), driverID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, wallet)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
	if err != nil {
		response.BadRequest(w, "invalid wallet id")
		return
	}

	if err := h.svc.Deactivate(r.Context(), walletID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "wallet not found")
		case errors.Is(err, ErrAlreadyInactive):
			response.Conflict(w, "wallet already inactive")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "deactivated"})
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/driver/{driverID}", h.GetByDriver)
	r.Post("/driver/{driverID}", h.GetOrCreate)
	r.Post("/{walletID}/deactivate", h.Deactivate)
	return r
}
