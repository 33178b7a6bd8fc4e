package fare

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftride/swiftride-api/internal/pkg/response"
	"github.com/swiftride/swiftride-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type estimateRequest struct {
	Origin      []float64 `json:"origin" validate:"required,len=2"`
	Destination []float64 `json:"destination" validate:"required,len=2"`
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	origin := [2]float64{req.Origin[0], req.Origin[1]}
	destination := [2]float64{req.Destination[0], req.Destination[1]}

	est, err := h.service.Estimate(r.Context(), origin, destination)
	if err != nil {
		if errors.Is(err, ErrRouting) {
			response.BadGateway(w, "routing provider unavailable")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, est)
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/estimate", h.Estimate)
	return r
}
