// AngelaMos | 2026
// fake_test.go

package vehicle

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

// memRepo mirrors the SQL repository: every lookup filters by garage and
// AddPart applies its increment while holding the lock, like the row lock
// the UPDATE takes.
type memRepo struct {
	mu        sync.Mutex
	cars      map[int64]*Vehicle
	parts     []Part
	phases    []Phase
	customers map[int64]int64
	nextCar   int64
	nextPart  int64
	nextPhase int64
	clock     time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		cars:      make(map[int64]*Vehicle),
		customers: make(map[int64]int64),
		clock:     time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) addCustomer(customerID, garageID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customerID] = garageID
}

func (m *memRepo) owned(garageID, carID int64) (*Vehicle, bool) {
	v, ok := m.cars[carID]
	if !ok || v.GarageID != garageID {
		return nil, false
	}
	return v, true
}

func (m *memRepo) Create(_ context.Context, v *Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v.CustomerID != nil {
		if owner, ok := m.customers[*v.CustomerID]; !ok || owner != v.GarageID {
			return fmt.Errorf("create car: %w", ErrCustomerNotFound)
		}
	}

	m.nextCar++
	v.ID = m.nextCar
	v.PartsTotal = 0
	v.TotalCost = v.LaborCost
	v.CreatedAt = m.tick()

	stored := *v
	m.cars[v.ID] = &stored
	return nil
}

func (m *memRepo) list(filter func(*Vehicle) bool) []Vehicle {
	out := []Vehicle{}
	for _, v := range m.cars {
		if filter(v) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRepo) ListByGarage(_ context.Context, garageID int64) ([]Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(v *Vehicle) bool { return v.GarageID == garageID }), nil
}

func (m *memRepo) ListByCustomer(
	_ context.Context,
	garageID, customerID int64,
) ([]Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(v *Vehicle) bool {
		return v.GarageID == garageID && v.CustomerID != nil && *v.CustomerID == customerID
	}), nil
}

func (m *memRepo) Get(_ context.Context, garageID, carID int64) (*Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.owned(garageID, carID)
	if !ok {
		return nil, fmt.Errorf("get car: %w", core.ErrNotFound)
	}
	c := *v
	return &c, nil
}

func (m *memRepo) GetForInvoice(
	ctx context.Context,
	garageID, carID int64,
) (*InvoiceVehicle, error) {
	v, err := m.Get(ctx, garageID, carID)
	if err != nil {
		return nil, err
	}
	return &InvoiceVehicle{Vehicle: *v}, nil
}

func (m *memRepo) UpdateStatus(
	_ context.Context,
	garageID, carID int64,
	status string,
) (*Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.owned(garageID, carID)
	if !ok {
		return nil, fmt.Errorf("update car status: %w", core.ErrNotFound)
	}
	now := m.tick()
	v.Status = status
	v.UpdatedAt = &now
	c := *v
	return &c, nil
}

func (m *memRepo) AddPart(_ context.Context, garageID int64, part *Part) (*Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.owned(garageID, part.CarID)
	if !ok {
		return nil, fmt.Errorf("add part: %w", core.ErrNotFound)
	}

	line := part.LineTotal()
	if v.TotalCost+line > MaxAmount {
		return nil, fmt.Errorf("add part: %w", ErrAmountTooLarge)
	}
	v.TotalCost = v.LaborCost + v.PartsTotal + line
	v.PartsTotal += line
	now := m.tick()
	v.UpdatedAt = &now

	m.nextPart++
	part.ID = m.nextPart
	part.CreatedAt = now
	m.parts = append(m.parts, *part)

	c := *v
	return &c, nil
}

func (m *memRepo) ListParts(_ context.Context, garageID, carID int64) ([]Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Part{}
	if _, ok := m.owned(garageID, carID); !ok {
		return out, nil
	}
	for _, p := range m.parts {
		if p.CarID == carID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) AddPhase(_ context.Context, garageID int64, phase *Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.owned(garageID, phase.CarID)
	if !ok {
		return fmt.Errorf("add phase: %w", core.ErrNotFound)
	}

	now := m.tick()
	name := phase.PhaseName
	v.CurrentPhase = &name
	v.UpdatedAt = &now

	m.nextPhase++
	phase.ID = m.nextPhase
	phase.StartDate = now
	m.phases = append(m.phases, *phase)
	return nil
}

func (m *memRepo) ListPhases(_ context.Context, garageID, carID int64) ([]Phase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Phase{}
	if _, ok := m.owned(garageID, carID); !ok {
		return out, nil
	}
	for _, p := range m.phases {
		if p.CarID == carID {
			out = append(out, p)
		}
	}
	return out, nil
}

// setTotals corrupts stored costs to simulate a missed recompute.
func (m *memRepo) setTotals(carID int64, parts, total float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[carID].PartsTotal = parts
	m.cars[carID].TotalCost = total
}
