// AngelaMos | 2026
// dto.go

package vehicle

import (
	"time"
)

type CreateVehicleRequest struct {
	CarNumber        string  `json:"car_number"        validate:"required,max=50"`
	ChassisNumber    string  `json:"chassis_number"    validate:"max=100"`
	CarModel         string  `json:"car_model"         validate:"required,max=100"`
	CarColor         string  `json:"car_color"         validate:"max=50"`
	OwnerName        string  `json:"owner_name"        validate:"required,max=255"`
	OwnerPhone       string  `json:"owner_phone"       validate:"required,max=50"`
	InitialDiagnosis string  `json:"initial_diagnosis"`
	CustomerID       *int64  `json:"customer_id"       validate:"omitempty,gt=0"`
	LaborCost        float64 `json:"labor_cost"        validate:"gte=0,lte=9999999999.99"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=100"`
}

type AddPartRequest struct {
	Name     string  `json:"name"     validate:"required,max=255"`
	Price    float64 `json:"price"    validate:"gte=0,lte=9999999999.99"`
	Quantity int     `json:"quantity" validate:"required,gte=1,lte=100000"`
}

type AddPhaseRequest struct {
	PhaseName        string `json:"phase_name"        validate:"required,max=255"`
	PhaseDescription string `json:"phase_description"`
	TechnicianNotes  string `json:"technician_notes"`
}

type VehicleResponse struct {
	ID               int64      `json:"car_id"`
	GarageID         int64      `json:"garage_id"`
	CustomerID       *int64     `json:"customer_id"`
	CarNumber        string     `json:"car_number"`
	ChassisNumber    *string    `json:"chassis_number"`
	CarModel         string     `json:"car_model"`
	CarColor         *string    `json:"car_color"`
	OwnerName        string     `json:"owner_name"`
	OwnerPhone       string     `json:"owner_phone"`
	InitialDiagnosis *string    `json:"initial_diagnosis"`
	Status           string     `json:"status"`
	CurrentPhase     *string    `json:"current_phase"`
	PartsTotal       float64    `json:"parts_total"`
	LaborCost        float64    `json:"labor_cost"`
	TotalCost        float64    `json:"total_cost"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

func ToVehicleResponse(v *Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:               v.ID,
		GarageID:         v.GarageID,
		CustomerID:       v.CustomerID,
		CarNumber:        v.CarNumber,
		ChassisNumber:    v.ChassisNumber,
		CarModel:         v.CarModel,
		CarColor:         v.CarColor,
		OwnerName:        v.OwnerName,
		OwnerPhone:       v.OwnerPhone,
		InitialDiagnosis: v.InitialDiagnosis,
		Status:           v.Status,
		CurrentPhase:     v.CurrentPhase,
		PartsTotal:       v.PartsTotal,
		LaborCost:        v.LaborCost,
		TotalCost:        v.TotalCost,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func ToVehicleResponseList(vs []Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(vs))
	for i := range vs {
		out[i] = ToVehicleResponse(&vs[i])
	}
	return out
}

type PartResponse struct {
	ID        int64     `json:"part_id"`
	CarID     int64     `json:"car_id"`
	PartName  string    `json:"part_name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPartResponseList(parts []Part) []PartResponse {
	out := make([]PartResponse, len(parts))
	for i, p := range parts {
		out[i] = PartResponse(p)
	}
	return out
}

type PhaseResponse struct {
	ID               int64     `json:"phase_id"`
	CarID            int64     `json:"car_id"`
	PhaseName        string    `json:"phase_name"`
	PhaseDescription *string   `json:"phase_description"`
	TechnicianNotes  *string   `json:"technician_notes"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"start_date"`
}

func ToPhaseResponseList(phases []Phase) []PhaseResponse {
	out := make([]PhaseResponse, len(phases))
	for i, p := range phases {
		out[i] = PhaseResponse(p)
	}
	return out
}

type InvoiceCarResponse struct {
	VehicleResponse
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	CustomerEmail *string `json:"customer_email"`
}

type InvoiceResponse struct {
	Car      InvoiceCarResponse `json:"car"`
	Parts    []PartResponse     `json:"parts"`
	Phases   []PhaseResponse    `json:"phases"`
	Subtotal float64            `json:"subtotal"`
	Total    float64            `json:"total"`
}

func ToInvoiceResponse(inv *Invoice) InvoiceResponse {
	return InvoiceResponse{
		Car: InvoiceCarResponse{
			VehicleResponse: ToVehicleResponse(&inv.Car.Vehicle),
			CustomerName:    inv.Car.CustomerName,
			CustomerPhone:   inv.Car.CustomerPhone,
			CustomerEmail:   inv.Car.CustomerEmail,
		},
		Parts:    ToPartResponseList(inv.Parts),
		Phases:   ToPhaseResponseList(inv.Phases),
		Subtotal: inv.Subtotal,
		Total:    inv.Total,
	}
}
