// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/garage"
)

// Client-facing messages kept identical to what deployed garage frontends
// already display.
const (
	msgUnknownAccount      = "المستخدم غير موجود"
	msgInvalidCredentials  = "كلمة المرور غير صحيحة"
	msgAccountInactive     = "الحساب غير مفعل، تواصل مع الإدارة."
	msgSubscriptionExpired = "انتهت فترة الاشتراك (30 يوم). يرجى التواصل للتجديد."
	msgEmailExists         = "البريد الإلكتروني مستخدم من قبل."
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

// RegisterRoutes mounts the public auth endpoints. limiter wraps both with
// the stricter credential bucket.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.NewAppError(
				err, msgEmailExists, http.StatusBadRequest, "DUPLICATE_EMAIL",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, RegisterResponse{
		Success: true,
		Garage:  garage.ToAccountResponse(account),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.JSONError(w, loginError(err))
		return
	}

	core.OK(w, LoginResponse{
		Success: true,
		Token:   result.Token,
		Garage:  garage.ToAccountResponse(result.Account),
	})
}

func loginError(err error) error {
	var expired *SubscriptionExpiredError
	switch {
	case errors.Is(err, ErrUnknownAccount):
		return core.NewAppError(
			err, msgUnknownAccount, http.StatusUnauthorized, "UNKNOWN_ACCOUNT",
		)
	case errors.Is(err, ErrInvalidCredentials):
		return core.NewAppError(
			err, msgInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS",
		)
	case errors.Is(err, ErrAccountInactive):
		return core.NewAppError(
			err, msgAccountInactive, http.StatusForbidden, "ACCOUNT_INACTIVE",
		)
	case errors.As(err, &expired):
		return core.NewAppError(
			err, msgSubscriptionExpired, http.StatusForbidden, "SUBSCRIPTION_EXPIRED",
		).With("expiredAt", expired.ExpiredAt)
	default:
		return err
	}
}
