// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/garage-saas/internal/config"
	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/garage"
	"github.com/carterperez-dev/garage-saas/internal/monitoring"
)

var (
	ErrUnknownAccount     = errors.New("unknown account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailExists        = errors.New("email already exists")
)

// SubscriptionExpiredError is returned for a correct password on an account
// whose subscription window has closed.
type SubscriptionExpiredError struct {
	ExpiredAt time.Time
}

func (e *SubscriptionExpiredError) Error() string {
	return "subscription expired at " + e.ExpiredAt.Format(time.RFC3339)
}

type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*garage.Account, error)
	Create(ctx context.Context, account *garage.Account) error
	RecordFirstLogin(
		ctx context.Context,
		id int64,
		start, expiry time.Time,
	) (*garage.Account, bool, error)
	MarkExpired(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type TokenIssuer interface {
	IssueSessionToken(account *garage.Account) (string, time.Time, error)
}

type Service struct {
	accounts    AccountStore
	tokens      TokenIssuer
	trialPeriod time.Duration
	defaultPlan string
	now         func() time.Time
}

func NewService(
	accounts AccountStore,
	tokens TokenIssuer,
	cfg config.SubscriptionConfig,
) *Service {
	plan := cfg.DefaultPlan
	if plan == "" {
		plan = garage.PlanBasic
	}

	return &Service{
		accounts:    accounts,
		tokens:      tokens,
		trialPeriod: cfg.TrialPeriod,
		defaultPlan: plan,
		now:         time.Now,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *garage.Account
}

// Login runs the subscription state machine. Deactivated accounts are
// rejected before the password is checked. A never-used account starts its
// trial here; an account past its expiry is refused even with the right
// password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ctx, span := core.StartSpan(ctx, "auth.Login")
	defer span.End()

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			recordLogin("unknown_account")
			return nil, ErrUnknownAccount
		}
		recordLogin("error")
		return nil, fmt.Errorf("find account: %w", err)
	}

	span.SetAttributes(attribute.Int64("garage.id", account.ID))

	if !account.IsActive {
		recordLogin("inactive")
		return nil, ErrAccountInactive
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&account.PasswordHash,
	)
	if err != nil {
		recordLogin("error")
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		recordLogin("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.accounts.UpdatePassword(ctx, account.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"garage_id", account.ID,
				"error", err,
			)
		}
	}

	now := s.now()

	if !account.HasLoggedIn() {
		account, err = s.activateTrial(ctx, account.ID, now)
		if err != nil {
			recordLogin("error")
			return nil, err
		}
	}

	if account.IsExpired(now) {
		if err := s.accounts.MarkExpired(ctx, account.ID); err != nil {
			slog.WarnContext(ctx, "mark subscription expired failed",
				"garage_id", account.ID,
				"error", err,
			)
		}
		recordLogin("expired")
		return nil, &SubscriptionExpiredError{ExpiredAt: *account.SubscriptionExpiry}
	}

	// A stored expired status outlives an extended expiry date.
	if account.SubscriptionStatus == garage.StatusExpired {
		if err := s.accounts.Reactivate(ctx, account.ID); err != nil {
			slog.WarnContext(ctx, "reactivate subscription failed",
				"garage_id", account.ID,
				"error", err,
			)
		} else {
			account.SubscriptionStatus = garage.StatusActive
		}
	}

	token, expiresAt, err := s.tokens.IssueSessionToken(account)
	if err != nil {
		recordLogin("error")
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	recordLogin("success")

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func (s *Service) activateTrial(
	ctx context.Context,
	id int64,
	now time.Time,
) (*garage.Account, error) {
	expiry := now.Add(s.trialPeriod)

	account, won, err := s.accounts.RecordFirstLogin(ctx, id, now, expiry)
	if err != nil {
		return nil, fmt.Errorf("activate trial: %w", err)
	}

	if won {
		monitoring.TrialActivations.Inc()
		core.AddSpanEvent(ctx, "trial.activated",
			attribute.Int64("garage.id", id),
			attribute.String("trial.expiry", expiry.Format(time.RFC3339)),
		)
		slog.InfoContext(ctx, "trial activated",
			"garage_id", id,
			"expires_at", expiry,
		)
	}

	return account, nil
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*garage.Account, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &garage.Account{
		GarageName:         req.GarageName,
		OwnerName:          req.OwnerName,
		Email:              req.Email,
		Phone:              req.Phone,
		PasswordHash:       passwordHash,
		SubscriptionStatus: garage.StatusTrial,
		SubscriptionPlan:   s.defaultPlan,
		IsActive:           true,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func recordLogin(outcome string) {
	monitoring.LoginAttempts.WithLabelValues(outcome).Inc()
}
