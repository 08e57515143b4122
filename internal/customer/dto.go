// AngelaMos | 2026
// dto.go

package customer

import (
	"time"
)

type CreateCustomerRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=255"`
	Phone         string `json:"phone"          validate:"required,max=50"`
	Email         string `json:"email"          validate:"omitempty,email,max=255"`
	Address       string `json:"address"`
	CustomerNotes string `json:"customer_notes"`
}

type CustomerResponse struct {
	ID            int64     `json:"customer_id"`
	GarageID      int64     `json:"garage_id"`
	CustomerName  string    `json:"customer_name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	CustomerNotes *string   `json:"customer_notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse(*c)
}

type SummaryResponse struct {
	CustomerResponse
	CarCount  int64      `json:"car_count"`
	LastVisit *time.Time `json:"last_visit"`
}

func ToSummaryResponseList(list []Summary) []SummaryResponse {
	out := make([]SummaryResponse, len(list))
	for i := range list {
		out[i] = SummaryResponse{
			CustomerResponse: ToCustomerResponse(&list[i].Customer),
			CarCount:         list[i].CarCount,
			LastVisit:        list[i].LastVisit,
		}
	}
	return out
}
