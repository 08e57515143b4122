// AngelaMos | 2026
// fake_test.go

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/garage-saas/internal/config"
	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/garage"
)

// memAccounts models the credential store. RecordFirstLogin holds the lock
// across check and write, matching the single conditional UPDATE.
type memAccounts struct {
	mu       sync.Mutex
	byID     map[int64]*garage.Account
	nextID   int64
	wins     int
	expired  map[int64]bool
	rehashed map[int64]string
}

func newMemAccounts() *memAccounts {
	return &memAccounts{
		byID:     make(map[int64]*garage.Account),
		expired:  make(map[int64]bool),
		rehashed: make(map[int64]string),
	}
}

func clone(a *garage.Account) *garage.Account {
	c := *a
	return &c
}

func (m *memAccounts) FindByEmail(
	_ context.Context,
	email string,
) (*garage.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.byID {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, fmt.Errorf("find garage by email: %w", core.ErrNotFound)
}

func (m *memAccounts) Create(_ context.Context, account *garage.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.byID {
		if a.Email == account.Email {
			return fmt.Errorf("create garage: %w", core.ErrDuplicateKey)
		}
	}

	m.nextID++
	account.ID = m.nextID
	account.CreatedAt = time.Now()
	m.byID[account.ID] = clone(account)
	return nil
}

func (m *memAccounts) RecordFirstLogin(
	_ context.Context,
	id int64,
	start, expiry time.Time,
) (*garage.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, false, fmt.Errorf("record first login: %w", core.ErrNotFound)
	}

	if a.FirstLoginAt != nil {
		return clone(a), false, nil
	}

	a.FirstLoginAt = &start
	a.SubscriptionExpiry = &expiry
	a.SubscriptionStatus = garage.StatusTrial
	m.wins++
	return clone(a), true, nil
}

func (m *memAccounts) MarkExpired(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.byID[id]; ok {
		a.SubscriptionStatus = garage.StatusExpired
		m.expired[id] = true
	}
	return nil
}

func (m *memAccounts) Reactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.byID[id]; ok && a.SubscriptionStatus == garage.StatusExpired {
		a.SubscriptionStatus = garage.StatusActive
	}
	return nil
}

func (m *memAccounts) UpdatePassword(
	_ context.Context,
	id int64,
	passwordHash string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	a.PasswordHash = passwordHash
	m.rehashed[id] = passwordHash
	return nil
}

func (m *memAccounts) get(id int64) *garage.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.byID[id])
}

func (m *memAccounts) setActive(id int64, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].IsActive = active
}

const testSecret = "test-secret-at-least-32-characters-long"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   testSecret,
		TokenTTL: 24 * time.Hour,
		Issuer:   "garage-saas",
	}
}

func testSubscriptionConfig() config.SubscriptionConfig {
	return config.SubscriptionConfig{
		TrialPeriod: 30 * 24 * time.Hour,
		DefaultPlan: garage.PlanBasic,
	}
}
