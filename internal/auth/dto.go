// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/carterperez-dev/garage-saas/internal/garage"
)

type RegisterRequest struct {
	GarageName string `json:"garage_name" validate:"required,max=255"`
	OwnerName  string `json:"owner_name"  validate:"required,max=255"`
	Email      string `json:"email"       validate:"required,email,max=255"`
	Phone      string `json:"phone"       validate:"required,max=50"`
	Password   string `json:"password"    validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Success bool                   `json:"success"`
	Garage  garage.AccountResponse `json:"garage"`
}

type LoginResponse struct {
	Success bool                   `json:"success"`
	Token   string                 `json:"token"`
	Garage  garage.AccountResponse `json:"garage"`
}
