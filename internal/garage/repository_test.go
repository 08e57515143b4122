// AngelaMos | 2026
// repository_test.go

package garage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/testdb"
)

func newAccount(email string) *Account {
	return &Account{
		GarageName:         "Al Noor Auto",
		OwnerName:          "Sami",
		Email:              email,
		Phone:              "0790000000",
		PasswordHash:       "hash",
		SubscriptionStatus: StatusTrial,
		SubscriptionPlan:   PlanBasic,
		IsActive:           true,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(testdb.Open(t))
	ctx := context.Background()

	account := newAccount("owner@alnoor.test")
	require.NoError(t, repo.Create(ctx, account))
	assert.Positive(t, account.ID)

	found, err := repo.FindByEmail(ctx, "owner@alnoor.test")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, StatusTrial, found.SubscriptionStatus)
	assert.Nil(t, found.FirstLoginAt)

	err = repo.Create(ctx, newAccount("owner@alnoor.test"))
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = repo.FindByEmail(ctx, "nobody@alnoor.test")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryFirstLoginHasOneWinner(t *testing.T) {
	repo := NewRepository(testdb.Open(t))
	ctx := context.Background()

	account := newAccount("race@alnoor.test")
	require.NoError(t, repo.Create(ctx, account))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	const logins = 20
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	expiries := make([]time.Time, logins)

	for i := range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := base.Add(time.Duration(i) * time.Minute)
			got, won, err := repo.RecordFirstLogin(ctx, account.ID, start, start.AddDate(0, 0, 30))
			if !assert.NoError(t, err) {
				return
			}
			if won {
				wins.Add(1)
			}
			expiries[i] = *got.SubscriptionExpiry
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SubscriptionExpiry)
	for _, e := range expiries {
		assert.True(t, stored.SubscriptionExpiry.Equal(e))
	}
}

func TestRepositoryExpiryAndReactivation(t *testing.T) {
	repo := NewRepository(testdb.Open(t))
	ctx := context.Background()

	account := newAccount("cycle@alnoor.test")
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.MarkExpired(ctx, account.ID))
	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, stored.SubscriptionStatus)

	require.NoError(t, repo.Reactivate(ctx, account.ID))
	stored, err = repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, stored.SubscriptionStatus)
}

func TestRepositoryUpdatePasswordUnknownGarage(t *testing.T) {
	repo := NewRepository(testdb.Open(t))
	err := repo.UpdatePassword(context.Background(), 9999, "hash")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
