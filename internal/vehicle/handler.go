// AngelaMos | 2026
// handler.go

package vehicle

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/cars", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListVehicles)
		r.Post("/", h.CreateVehicle)
		r.Get("/{id}", h.GetVehicle)
		r.Put("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/parts", h.AddPart)
		r.Get("/{id}/phases", h.ListPhases)
		r.Post("/{id}/phases", h.AddPhase)
		r.Get("/{id}/invoice", h.GetInvoice)
	})
}

// carID writes the 404 itself; a malformed id names no car this garage owns.
func carID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := core.PathID(r, "id")
	if err != nil {
		core.NotFound(w, "Car")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Car")
	case errors.Is(err, ErrCustomerNotFound):
		core.NotFound(w, "Customer")
	case errors.Is(err, ErrAmountTooLarge):
		core.ValidationFailed(w, []core.FieldError{{
			Field:   "price",
			Message: "would push the car total past 9999999999.99",
		}})
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListVehicles(r.Context(), middleware.GetGarageID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"cars": ToVehicleResponseList(cars)})
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req CreateVehicleRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	car, err := h.service.CreateVehicle(r.Context(), middleware.GetGarageID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]any{"car": ToVehicleResponse(car)})
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	car, parts, err := h.service.GetVehicleWithParts(
		r.Context(),
		middleware.GetGarageID(r.Context()),
		id,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"car":   ToVehicleResponse(car),
		"parts": ToPartResponseList(parts),
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	car, err := h.service.UpdateStatus(
		r.Context(),
		middleware.GetGarageID(r.Context()),
		id,
		req.Status,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"success": true,
		"car":     ToVehicleResponse(car),
	})
}

func (h *Handler) AddPart(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	var req AddPartRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	part, car, err := h.service.AddPart(
		r.Context(),
		middleware.GetGarageID(r.Context()),
		id,
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]any{
		"part": PartResponse(*part),
		"car":  ToVehicleResponse(car),
	})
}

func (h *Handler) ListPhases(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	phases, err := h.service.ListPhases(r.Context(), middleware.GetGarageID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"phases": ToPhaseResponseList(phases)})
}

func (h *Handler) AddPhase(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	var req AddPhaseRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	phase, err := h.service.AddPhase(r.Context(), middleware.GetGarageID(r.Context()), id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]any{"phase": PhaseResponse(*phase)})
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := carID(w, r)
	if !ok {
		return
	}

	invoice, err := h.service.BuildInvoice(r.Context(), middleware.GetGarageID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"invoice": ToInvoiceResponse(invoice)})
}
