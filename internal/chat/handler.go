// AngelaMos | 2026
// handler.go

package chat

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

// RegisterRoutes mounts the garage inbox behind authenticator and the
// public chatbot entry point behind limiter. limiter may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/conversations", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListConversations)
		r.Get("/{id}/messages", h.ListMessages)
		r.Post("/{id}/messages", h.SendMessage)
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/chatbot/message", h.ChatbotMessage)
	})
}

func conversationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := core.PathID(r, "id")
	if err != nil {
		core.NotFound(w, "Conversation")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Conversation")
	case errors.Is(err, ErrGarageNotFound):
		core.NotFound(w, "Garage")
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListConversations(r.Context(), middleware.GetGarageID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"conversations": ToConversationResponseList(list)})
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	msgs, err := h.service.ListMessages(r.Context(), middleware.GetGarageID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"messages": ToMessageResponseList(msgs)})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	msg, err := h.service.SendGarageMessage(
		r.Context(),
		middleware.GetGarageID(r.Context()),
		id,
		req.MessageText,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]any{"message": MessageResponse(*msg)})
}

func (h *Handler) ChatbotMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatbotRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.HandleInbound(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ChatbotResponse{
		Success:        true,
		Response:       result.Reply.Text,
		ConversationID: result.ConversationID,
		NeedsHuman:     result.Reply.NeedsHuman,
	})
}
