// AngelaMos | 2026
// entity.go

package customer

import (
	"time"
)

type Customer struct {
	ID            int64     `db:"customer_id"`
	GarageID      int64     `db:"garage_id"`
	CustomerName  string    `db:"customer_name"`
	Phone         string    `db:"phone"`
	Email         *string   `db:"email"`
	Address       *string   `db:"address"`
	CustomerNotes *string   `db:"customer_notes"`
	CreatedAt     time.Time `db:"created_at"`
}

// Summary is a customer with aggregates over the cars they brought in.
type Summary struct {
	Customer
	CarCount  int64      `db:"car_count"`
	LastVisit *time.Time `db:"last_visit"`
}
