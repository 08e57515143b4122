// AngelaMos | 2026
// service.go

package vehicle

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/monitoring"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVehicle(
	ctx context.Context,
	garageID int64,
	req CreateVehicleRequest,
) (*Vehicle, error) {
	phase := DefaultPhase
	v := &Vehicle{
		GarageID:         garageID,
		CustomerID:       req.CustomerID,
		CarNumber:        req.CarNumber,
		ChassisNumber:    emptyToNil(req.ChassisNumber),
		CarModel:         req.CarModel,
		CarColor:         emptyToNil(req.CarColor),
		OwnerName:        req.OwnerName,
		OwnerPhone:       req.OwnerPhone,
		InitialDiagnosis: emptyToNil(req.InitialDiagnosis),
		Status:           DefaultStatus,
		CurrentPhase:     &phase,
		LaborCost:        roundCents(req.LaborCost),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context, garageID int64) ([]Vehicle, error) {
	return s.repo.ListByGarage(ctx, garageID)
}

func (s *Service) ListByCustomer(
	ctx context.Context,
	garageID, customerID int64,
) ([]Vehicle, error) {
	return s.repo.ListByCustomer(ctx, garageID, customerID)
}

// GetVehicleWithParts returns the car and its parts in creation order.
func (s *Service) GetVehicleWithParts(
	ctx context.Context,
	garageID, carID int64,
) (*Vehicle, []Part, error) {
	v, err := s.repo.Get(ctx, garageID, carID)
	if err != nil {
		return nil, nil, err
	}

	parts, err := s.repo.ListParts(ctx, garageID, carID)
	if err != nil {
		return nil, nil, err
	}

	return v, parts, nil
}

// UpdateStatus overwrites the free-text status. There is no transition
// graph.
func (s *Service) UpdateStatus(
	ctx context.Context,
	garageID, carID int64,
	status string,
) (*Vehicle, error) {
	return s.repo.UpdateStatus(ctx, garageID, carID, status)
}

func (s *Service) AddPart(
	ctx context.Context,
	garageID, carID int64,
	req AddPartRequest,
) (*Part, *Vehicle, error) {
	ctx, span := core.StartSpan(ctx, "vehicle.AddPart",
		attribute.Int64("garage.id", garageID),
		attribute.Int64("car.id", carID),
	)
	defer span.End()

	part := &Part{
		CarID:    carID,
		PartName: req.Name,
		Price:    roundCents(req.Price),
		Quantity: req.Quantity,
	}

	if part.LineTotal() > MaxAmount {
		return nil, nil, ErrAmountTooLarge
	}

	v, err := s.repo.AddPart(ctx, garageID, part)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, nil, err
	}

	monitoring.PartsAdded.Inc()
	core.AddSpanEvent(ctx, "part.accrued",
		attribute.Float64("part.line_total", part.LineTotal()),
		attribute.Float64("car.parts_total", v.PartsTotal),
		attribute.Float64("car.total_cost", v.TotalCost),
	)

	return part, v, nil
}

func (s *Service) AddPhase(
	ctx context.Context,
	garageID, carID int64,
	req AddPhaseRequest,
) (*Phase, error) {
	phase := &Phase{
		CarID:            carID,
		PhaseName:        req.PhaseName,
		PhaseDescription: emptyToNil(req.PhaseDescription),
		TechnicianNotes:  emptyToNil(req.TechnicianNotes),
		Status:           DefaultPhaseStatus,
	}

	if err := s.repo.AddPhase(ctx, garageID, phase); err != nil {
		return nil, err
	}

	return phase, nil
}

func (s *Service) ListPhases(ctx context.Context, garageID, carID int64) ([]Phase, error) {
	if _, err := s.repo.Get(ctx, garageID, carID); err != nil {
		return nil, err
	}
	return s.repo.ListPhases(ctx, garageID, carID)
}

// BuildInvoice aggregates the car with all of its parts and phases. Subtotal
// is recomputed from the components while Total is the stored total_cost;
// the two agree whenever the cost invariant holds.
func (s *Service) BuildInvoice(
	ctx context.Context,
	garageID, carID int64,
) (*Invoice, error) {
	car, err := s.repo.GetForInvoice(ctx, garageID, carID)
	if err != nil {
		return nil, err
	}

	parts, err := s.repo.ListParts(ctx, garageID, carID)
	if err != nil {
		return nil, err
	}

	phases, err := s.repo.ListPhases(ctx, garageID, carID)
	if err != nil {
		return nil, err
	}

	invoice := &Invoice{
		Car:      *car,
		Parts:    parts,
		Phases:   phases,
		Subtotal: roundCents(car.PartsTotal + car.LaborCost),
		Total:    roundCents(car.TotalCost),
	}

	if invoice.Subtotal != invoice.Total {
		slog.ErrorContext(ctx, "invoice totals diverge",
			"garage_id", garageID,
			"car_id", carID,
			"subtotal", invoice.Subtotal,
			"total", invoice.Total,
		)
	}

	return invoice, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
