// AngelaMos | 2026
// dto.go

package garage

import (
	"time"
)

// AccountResponse never carries the password hash.
type AccountResponse struct {
	ID                 int64      `json:"garage_id"`
	GarageName         string     `json:"garage_name"`
	OwnerName          string     `json:"owner_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:                 a.ID,
		GarageName:         a.GarageName,
		OwnerName:          a.OwnerName,
		Email:              a.Email,
		Phone:              a.Phone,
		SubscriptionStatus: a.SubscriptionStatus,
		SubscriptionExpiry: a.SubscriptionExpiry,
	}
}

type SpecializationResponse struct {
	ID             int64     `json:"specialization_id"`
	GarageID       int64     `json:"garage_id"`
	Specialization string    `json:"specialization"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
	GarageName     *string   `json:"garage_name"`
}

func ToSpecializationResponseList(specs []Specialization) []SpecializationResponse {
	out := make([]SpecializationResponse, len(specs))
	for i, s := range specs {
		out[i] = SpecializationResponse(s)
	}
	return out
}
