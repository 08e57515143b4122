// AngelaMos | 2026
// service_test.go

package vehicle

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

const (
	garageA int64 = 1
	garageB int64 = 2
)

func newCar(t *testing.T, svc *Service, garageID int64, labor float64) *Vehicle {
	t.Helper()

	v, err := svc.CreateVehicle(context.Background(), garageID, CreateVehicleRequest{
		CarNumber:  "12-34567",
		CarModel:   "Toyota Corolla 2018",
		OwnerName:  "Khaled",
		OwnerPhone: "0791111111",
		LaborCost:  labor,
	})
	require.NoError(t, err)
	return v
}

func TestCreateVehicleDefaults(t *testing.T) {
	svc := NewService(newMemRepo())

	v := newCar(t, svc, garageA, 0)
	assert.Equal(t, DefaultStatus, v.Status)
	require.NotNil(t, v.CurrentPhase)
	assert.Equal(t, DefaultPhase, *v.CurrentPhase)
	assert.Zero(t, v.PartsTotal)
	assert.Nil(t, v.ChassisNumber)
}

func TestCreateVehicleRejectsForeignCustomer(t *testing.T) {
	repo := newMemRepo()
	repo.addCustomer(10, garageB)
	svc := NewService(repo)

	foreign := int64(10)
	_, err := svc.CreateVehicle(context.Background(), garageA, CreateVehicleRequest{
		CarNumber:  "1",
		CarModel:   "Kia",
		OwnerName:  "x",
		OwnerPhone: "y",
		CustomerID: &foreign,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestAddPartAccruesTotals(t *testing.T) {
	svc := NewService(newMemRepo())
	v := newCar(t, svc, garageA, 50)

	part, car, err := svc.AddPart(context.Background(), garageA, v.ID, AddPartRequest{
		Name:     "Brake pads",
		Price:    100,
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Brake pads", part.PartName)
	assert.InDelta(t, 200, car.PartsTotal, 1e-9)
	assert.InDelta(t, 250, car.TotalCost, 1e-9)

	invoice, err := svc.BuildInvoice(context.Background(), garageA, v.ID)
	require.NoError(t, err)
	assert.InDelta(t, 250, invoice.Subtotal, 1e-9)
	assert.InDelta(t, invoice.Total, invoice.Subtotal, 1e-9)
	assert.Len(t, invoice.Parts, 1)
}

func TestAddPartOrderIndependent(t *testing.T) {
	lines := []AddPartRequest{
		{Name: "Oil filter", Price: 12.5, Quantity: 3},
		{Name: "Spark plug", Price: 7.25, Quantity: 4},
	}

	totals := make([]float64, 0, 2)
	for _, order := range [][]int{{0, 1}, {1, 0}} {
		svc := NewService(newMemRepo())
		v := newCar(t, svc, garageA, 20)

		var car *Vehicle
		for _, i := range order {
			var err error
			_, car, err = svc.AddPart(context.Background(), garageA, v.ID, lines[i])
			require.NoError(t, err)
		}

		assert.InDelta(t, 12.5*3+7.25*4, car.PartsTotal, 1e-9)
		assert.InDelta(t, car.LaborCost+car.PartsTotal, car.TotalCost, 1e-9)
		totals = append(totals, car.TotalCost)
	}

	assert.InDelta(t, totals[0], totals[1], 1e-9)
}

func TestConcurrentAddPartLosesNothing(t *testing.T) {
	svc := NewService(newMemRepo())
	v := newCar(t, svc, garageA, 75)

	const workers = 50
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.AddPart(context.Background(), garageA, v.ID, AddPartRequest{
				Name:     "Bolt",
				Price:    10.5,
				Quantity: 2,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	car, parts, err := svc.GetVehicleWithParts(context.Background(), garageA, v.ID)
	require.NoError(t, err)
	assert.Len(t, parts, workers)
	assert.InDelta(t, 21.0*workers, car.PartsTotal, 1e-9)
	assert.InDelta(t, car.LaborCost+car.PartsTotal, car.TotalCost, 1e-9)
}

func TestTenantIsolation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	v := newCar(t, svc, garageA, 0)

	_, _, err := svc.GetVehicleWithParts(ctx, garageB, v.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, garageB, v.ID, "delivered")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, _, err = svc.AddPart(ctx, garageB, v.ID, AddPartRequest{Name: "x", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.AddPhase(ctx, garageB, v.ID, AddPhaseRequest{PhaseName: "paint"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.ListPhases(ctx, garageB, v.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.BuildInvoice(ctx, garageB, v.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	cars, err := svc.ListVehicles(ctx, garageB)
	require.NoError(t, err)
	assert.Empty(t, cars)

	own, _, err := svc.GetVehicleWithParts(ctx, garageA, v.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultStatus, own.Status)
	assert.Zero(t, own.PartsTotal)
}

func TestUpdateStatusIsFreeText(t *testing.T) {
	svc := NewService(newMemRepo())
	v := newCar(t, svc, garageA, 0)

	for _, status := range []string{"waiting_parts", "قيد الإصلاح", "received"} {
		car, err := svc.UpdateStatus(context.Background(), garageA, v.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, car.Status)
		assert.NotNil(t, car.UpdatedAt)
	}
}

func TestPhasesAppendInOrder(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	v := newCar(t, svc, garageA, 0)

	for _, name := range []string{"diagnosis", "repair", "painting"} {
		phase, err := svc.AddPhase(ctx, garageA, v.ID, AddPhaseRequest{PhaseName: name})
		require.NoError(t, err)
		assert.Equal(t, DefaultPhaseStatus, phase.Status)
		assert.False(t, phase.StartDate.IsZero())
	}

	phases, err := svc.ListPhases(ctx, garageA, v.ID)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	assert.Equal(t, "diagnosis", phases[0].PhaseName)
	assert.Equal(t, "painting", phases[2].PhaseName)
	assert.Less(t, phases[0].ID, phases[1].ID)

	car, _, err := svc.GetVehicleWithParts(ctx, garageA, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "painting", *car.CurrentPhase)
}

func TestInvoiceReportsStoredTotal(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	v := newCar(t, svc, garageA, 40)
	repo.setTotals(v.ID, 60, 90)

	invoice, err := svc.BuildInvoice(context.Background(), garageA, v.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 90, invoice.Total, 1e-9)
}

func TestListByCustomer(t *testing.T) {
	repo := newMemRepo()
	repo.addCustomer(5, garageA)
	svc := NewService(repo)
	ctx := context.Background()

	customerID := int64(5)
	_, err := svc.CreateVehicle(ctx, garageA, CreateVehicleRequest{
		CarNumber: "A", CarModel: "Hyundai", OwnerName: "o", OwnerPhone: "p",
		CustomerID: &customerID,
	})
	require.NoError(t, err)
	newCar(t, svc, garageA, 0)

	cars, err := svc.ListByCustomer(ctx, garageA, 5)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "A", cars[0].CarNumber)

	cars, err = svc.ListByCustomer(ctx, garageB, 5)
	require.NoError(t, err)
	assert.Empty(t, cars)
}
