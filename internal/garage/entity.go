// AngelaMos | 2026
// entity.go

package garage

import (
	"time"
)

const (
	StatusTrial   = "trial"
	StatusActive  = "active"
	StatusExpired = "expired"
)

const PlanBasic = "basic"

// Account is a garage tenant. FirstLoginAt stays nil until the first
// successful login starts the trial.
type Account struct {
	ID                 int64      `db:"garage_id"`
	GarageName         string     `db:"garage_name"`
	OwnerName          string     `db:"owner_name"`
	Email              string     `db:"email"`
	Phone              string     `db:"phone"`
	PasswordHash       string     `db:"password"`
	SubscriptionStatus string     `db:"subscription_status"`
	SubscriptionPlan   string     `db:"subscription_plan"`
	SubscriptionExpiry *time.Time `db:"subscription_expiry"`
	FirstLoginAt       *time.Time `db:"first_login_at"`
	IsActive           bool       `db:"is_active"`
	CreatedAt          time.Time  `db:"created_at"`
}

func (a *Account) HasLoggedIn() bool {
	return a.FirstLoginAt != nil
}

// IsExpired reports whether the subscription window closed before now.
// Accounts without an expiry never expire.
func (a *Account) IsExpired(now time.Time) bool {
	return a.SubscriptionExpiry != nil && now.After(*a.SubscriptionExpiry)
}

type Specialization struct {
	ID             int64     `db:"specialization_id"`
	GarageID       int64     `db:"garage_id"`
	Specialization string    `db:"specialization"`
	IsPrimary      bool      `db:"is_primary"`
	CreatedAt      time.Time `db:"created_at"`
	GarageName     *string   `db:"garage_name"`
}
