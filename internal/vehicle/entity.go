// AngelaMos | 2026
// entity.go

package vehicle

import (
	"math"
	"time"
)

const (
	DefaultStatus      = "received"
	DefaultPhase       = "reception"
	DefaultPhaseStatus = "in_progress"
)

// Limits on money and quantity inputs. MaxAmount is the largest value a
// NUMERIC(12,2) cost column holds. The validation tags in dto.go repeat both
// as literals.
const (
	MaxAmount   = 9_999_999_999.99
	MaxQuantity = 100_000
)

// Vehicle is a car on the garage floor. TotalCost is always
// LaborCost + PartsTotal; only AddPart moves PartsTotal.
type Vehicle struct {
	ID               int64      `db:"car_id"`
	GarageID         int64      `db:"garage_id"`
	CustomerID       *int64     `db:"customer_id"`
	CarNumber        string     `db:"car_number"`
	ChassisNumber    *string    `db:"chassis_number"`
	CarModel         string     `db:"car_model"`
	CarColor         *string    `db:"car_color"`
	OwnerName        string     `db:"owner_name"`
	OwnerPhone       string     `db:"owner_phone"`
	InitialDiagnosis *string    `db:"initial_diagnosis"`
	Status           string     `db:"status"`
	CurrentPhase     *string    `db:"current_phase"`
	PartsTotal       float64    `db:"parts_total"`
	LaborCost        float64    `db:"labor_cost"`
	TotalCost        float64    `db:"total_cost"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

type Part struct {
	ID        int64     `db:"part_id"`
	CarID     int64     `db:"car_id"`
	PartName  string    `db:"part_name"`
	Price     float64   `db:"price"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

func (p *Part) LineTotal() float64 {
	return roundCents(p.Price * float64(p.Quantity))
}

type Phase struct {
	ID               int64     `db:"phase_id"`
	CarID            int64     `db:"car_id"`
	PhaseName        string    `db:"phase_name"`
	PhaseDescription *string   `db:"phase_description"`
	TechnicianNotes  *string   `db:"technician_notes"`
	Status           string    `db:"status"`
	StartDate        time.Time `db:"start_date"`
}

// InvoiceVehicle is a vehicle joined with the contact details of its
// customer, when one is linked.
type InvoiceVehicle struct {
	Vehicle
	CustomerName  *string `db:"customer_name"`
	CustomerPhone *string `db:"customer_phone"`
	CustomerEmail *string `db:"customer_email"`
}

type Invoice struct {
	Car      InvoiceVehicle
	Parts    []Part
	Phases   []Phase
	Subtotal float64
	Total    float64
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
