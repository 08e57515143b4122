// AngelaMos | 2026
// service.go

package customer

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(
	ctx context.Context,
	garageID int64,
	req CreateCustomerRequest,
) (*Customer, error) {
	c := &Customer{
		GarageID:      garageID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         emptyToNil(strings.ToLower(strings.TrimSpace(req.Email))),
		Address:       emptyToNil(req.Address),
		CustomerNotes: emptyToNil(req.CustomerNotes),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListCustomers(ctx context.Context, garageID int64) ([]Summary, error) {
	return s.repo.ListByGarage(ctx, garageID)
}

func (s *Service) GetCustomer(
	ctx context.Context,
	garageID, customerID int64,
) (*Customer, error) {
	return s.repo.Get(ctx, garageID, customerID)
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
