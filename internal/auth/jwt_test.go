// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/garage"
)

func testAccount() *garage.Account {
	return &garage.Account{
		ID:         42,
		GarageName: "ورشة النور",
		Email:      "owner@alnoor.test",
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	token, expiresAt, err := m.IssueSessionToken(testAccount())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	identity, err := m.VerifySessionToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.GarageID)
	assert.Equal(t, "owner@alnoor.test", identity.Email)
	assert.Equal(t, "ورشة النور", identity.GarageName)
}

func TestSessionTokenExpiresAfterTTL(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	issued := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, _, err := m.IssueSessionToken(testAccount())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = m.VerifySessionToken(context.Background(), token)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = m.VerifySessionToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.NotErrorIs(t, err, core.ErrTokenInvalid)
}

func TestSessionTokenRejected(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = "another-secret-that-is-also-long-enough"
	other, err := NewTokenManager(otherCfg)
	require.NoError(t, err)

	foreignToken, _, err := other.IssueSessionToken(testAccount())
	require.NoError(t, err)

	issuerCfg := testJWTConfig()
	issuerCfg.Issuer = "someone-else"
	wrongIssuer, err := NewTokenManager(issuerCfg)
	require.NoError(t, err)

	wrongIssuerToken, _, err := wrongIssuer.IssueSessionToken(testAccount())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "three garbage segments", token: "aaa.bbb.ccc"},
		{name: "signed with another secret", token: foreignToken},
		{name: "wrong issuer", token: wrongIssuerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifySessionToken(context.Background(), tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrTokenInvalid)
			assert.NotErrorIs(t, err, core.ErrTokenExpired)
		})
	}
}

func TestKeyIDStableForSecret(t *testing.T) {
	a, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	b, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, a.KeyID(), b.KeyID())
	assert.Len(t, a.KeyID(), 8)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	_, err := NewTokenManager(cfg)
	assert.Error(t, err)
}
