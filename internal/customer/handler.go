// AngelaMos | 2026
// handler.go

package customer

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/middleware"
	"github.com/carterperez-dev/garage-saas/internal/vehicle"
)

// CarLister is the slice of the vehicle service this handler needs.
type CarLister interface {
	ListByCustomer(ctx context.Context, garageID, customerID int64) ([]vehicle.Vehicle, error)
}

type Handler struct {
	service   *Service
	cars      CarLister
	validator *validator.Validate
}

func NewHandler(service *Service, cars CarLister) *Handler {
	return &Handler{
		service:   service,
		cars:      cars,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/customers", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}/cars", h.ListCustomerCars)
	})
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCustomers(r.Context(), middleware.GetGarageID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"customers": ToSummaryResponseList(list)})
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), middleware.GetGarageID(r.Context()), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, map[string]any{"customer": ToCustomerResponse(c)})
}

// ListCustomerCars treats a customer of another garage like a missing one.
func (h *Handler) ListCustomerCars(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "id")
	if err != nil {
		core.NotFound(w, "Customer")
		return
	}

	garageID := middleware.GetGarageID(r.Context())
	if _, err := h.service.GetCustomer(r.Context(), garageID, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Customer")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	cars, err := h.cars.ListByCustomer(r.Context(), garageID, id)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"cars": vehicle.ToVehicleResponseList(cars)})
}
