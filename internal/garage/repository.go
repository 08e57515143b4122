// AngelaMos | 2026
// repository.go

package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

// Repository is the credential store for garage accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	RecordFirstLogin(
		ctx context.Context,
		id int64,
		start, expiry time.Time,
	) (*Account, bool, error)
	MarkExpired(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ListSpecializations(ctx context.Context) ([]Specialization, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const accountColumns = `
	garage_id, garage_name, owner_name, email, phone, password,
	subscription_status, subscription_plan, subscription_expiry,
	first_login_at, is_active, created_at`

func (r *repository) FindByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM garages WHERE email = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find garage by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find garage by email: %w", err)
	}

	return &account, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM garages WHERE garage_id = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find garage: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find garage: %w", err)
	}

	return &account, nil
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO garages
			(garage_name, owner_name, email, phone, password,
			 subscription_status, subscription_plan, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING garage_id, created_at`

	row := r.db.QueryRowxContext(ctx, query,
		account.GarageName,
		account.OwnerName,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.SubscriptionStatus,
		account.SubscriptionPlan,
		account.IsActive,
	)
	if err := row.Scan(&account.ID, &account.CreatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create garage: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create garage: %w", err)
	}

	return nil
}

// RecordFirstLogin starts the trial only while first_login_at is unset, so
// exactly one of any number of concurrent first logins wins. The others get
// the winner's values back with won == false.
func (r *repository) RecordFirstLogin(
	ctx context.Context,
	id int64,
	start, expiry time.Time,
) (*Account, bool, error) {
	query := `
		UPDATE garages
		SET first_login_at = $2,
		    subscription_expiry = $3,
		    subscription_status = 'trial'
		WHERE garage_id = $1 AND first_login_at IS NULL
		RETURNING ` + accountColumns

	var account Account
	err := r.db.GetContext(ctx, &account, query, id, start, expiry)
	if err == nil {
		return &account, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("record first login: %w", err)
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("record first login: %w", err)
	}

	return current, false, nil
}

func (r *repository) MarkExpired(ctx context.Context, id int64) error {
	query := `
		UPDATE garages
		SET subscription_status = 'expired'
		WHERE garage_id = $1 AND subscription_status <> 'expired'`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark subscription expired: %w", err)
	}

	return nil
}

// Reactivate clears an expired status once the subscription window has been
// extended; accounts in any other state are left alone.
func (r *repository) Reactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE garages
		SET subscription_status = 'active'
		WHERE garage_id = $1 AND subscription_status = 'expired'`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("reactivate subscription: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `UPDATE garages SET password = $2 WHERE garage_id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListSpecializations(
	ctx context.Context,
) ([]Specialization, error) {
	query := `
		SELECT gs.specialization_id, gs.garage_id, gs.specialization,
		       gs.is_primary, gs.created_at, g.garage_name
		FROM garage_specializations gs
		LEFT JOIN garages g ON gs.garage_id = g.garage_id
		ORDER BY g.garage_name, gs.is_primary DESC`

	specs := []Specialization{}
	if err := r.db.SelectContext(ctx, &specs, query); err != nil {
		return nil, fmt.Errorf("list specializations: %w", err)
	}

	return specs, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
