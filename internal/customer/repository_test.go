// AngelaMos | 2026
// repository_test.go

package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/testdb"
)

func TestRepositoryScopedByGarage(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	garageA := testdb.CreateGarage(t, db, "a@garage.test")
	garageB := testdb.CreateGarage(t, db, "b@garage.test")

	layla := &Customer{GarageID: garageA, CustomerName: "Layla", Phone: "0781234567"}
	require.NoError(t, repo.Create(ctx, layla))
	hadi := &Customer{GarageID: garageA, CustomerName: "Hadi", Phone: "0787654321"}
	require.NoError(t, repo.Create(ctx, hadi))
	twin := &Customer{GarageID: garageB, CustomerName: "Layla B", Phone: "0781234567"}
	require.NoError(t, repo.Create(ctx, twin))

	_, err := db.Exec(`
		INSERT INTO cars (garage_id, customer_id, car_number, car_model, owner_name, owner_phone)
		VALUES ($1, $2, 'A-1', 'Kia', 'Layla', '0781234567'),
		       ($1, $2, 'A-2', 'Kia', 'Layla', '0781234567')`, garageA, layla.ID)
	require.NoError(t, err)

	list, err := repo.ListByGarage(ctx, garageA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, layla.ID, list[0].ID)
	assert.Equal(t, int64(2), list[0].CarCount)
	assert.NotNil(t, list[0].LastVisit)
	assert.Zero(t, list[1].CarCount)
	assert.Nil(t, list[1].LastVisit)

	found, err := repo.FindByPhone(ctx, garageB, "0781234567")
	require.NoError(t, err)
	assert.Equal(t, twin.ID, found.ID)

	_, err = repo.Get(ctx, garageB, layla.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := repo.Get(ctx, garageA, layla.ID)
	require.NoError(t, err)
	assert.Equal(t, "Layla", got.CustomerName)

	_, err = repo.FindByPhone(ctx, garageB, "0787654321")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
