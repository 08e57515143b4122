// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/garage-saas/internal/config"
	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/garage"
	"github.com/carterperez-dev/garage-saas/internal/middleware"
)

const (
	claimGarageID   = "garageId"
	claimEmail      = "email"
	claimGarageName = "garageName"
)

// TokenManager issues and verifies HS256 session tokens. Verification is
// purely cryptographic and never reads the database.
type TokenManager struct {
	key    jwk.Key
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	if setErr := key.Set(jwk.KeyIDKey, keyID(cfg.Secret)); setErr != nil {
		return nil, fmt.Errorf("set key id: %w", setErr)
	}

	return &TokenManager{
		key:    key,
		config: cfg,
		now:    time.Now,
	}, nil
}

// keyID is stable across replicas sharing a secret without revealing it.
func keyID(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}

func (m *TokenManager) KeyID() string {
	var kid string
	//nolint:errcheck // key ID always set during NewTokenManager
	_ = m.key.Get(jwk.KeyIDKey, &kid)
	return kid
}

func (m *TokenManager) IssueSessionToken(
	account *garage.Account,
) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.TokenTTL)

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Subject(strconv.FormatInt(account.ID, 10)).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim(claimGarageID, account.ID).
		Claim(claimEmail, account.Email).
		Claim(claimGarageName, account.GarageName).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (m *TokenManager) VerifySessionToken(
	_ context.Context,
	tokenString string,
) (*middleware.Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if errors.Is(err, jwt.TokenExpiredError()) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	garageID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || garageID <= 0 {
		return nil, fmt.Errorf(
			"verify token: bad subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	if err := token.Get(claimEmail, &email); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	var garageName string
	if err := token.Get(claimGarageName, &garageName); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing garageName claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.Identity{
		GarageID:   garageID,
		Email:      email,
		GarageName: garageName,
	}, nil
}
