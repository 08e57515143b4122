// AngelaMos | 2026
// handler.go

package garage

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

type SpecializationLister interface {
	ListSpecializations(ctx context.Context) ([]Specialization, error)
}

type Handler struct {
	specs SpecializationLister
}

func NewHandler(specs SpecializationLister) *Handler {
	return &Handler{specs: specs}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/garages/specializations", h.ListSpecializations)
}

func (h *Handler) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	specs, err := h.specs.ListSpecializations(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"specializations": ToSpecializationResponseList(specs),
	})
}
