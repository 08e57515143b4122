// AngelaMos | 2026
// repository.go

package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	ListByGarage(ctx context.Context, garageID int64) ([]Summary, error)
	Get(ctx context.Context, garageID, customerID int64) (*Customer, error)
	FindByPhone(ctx context.Context, garageID int64, phone string) (*Customer, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const customerColumns = `
	c.customer_id, c.garage_id, c.customer_name, c.phone, c.email,
	c.address, c.customer_notes, c.created_at`

func (r *repository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (
			garage_id, customer_name, phone, email, address, customer_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.GarageID,
		c.CustomerName,
		c.Phone,
		c.Email,
		c.Address,
		c.CustomerNotes,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

// ListByGarage orders customers by their most recent car intake, falling
// back to their own creation time.
func (r *repository) ListByGarage(
	ctx context.Context,
	garageID int64,
) ([]Summary, error) {
	query := `
		SELECT ` + customerColumns + `,
			COUNT(car.car_id) AS car_count,
			MAX(car.created_at) AS last_visit
		FROM customers c
		LEFT JOIN cars car
			ON car.customer_id = c.customer_id AND car.garage_id = c.garage_id
		WHERE c.garage_id = $1
		GROUP BY c.customer_id
		ORDER BY COALESCE(MAX(car.created_at), c.created_at) DESC`

	var out []Summary
	if err := r.db.SelectContext(ctx, &out, query, garageID); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if out == nil {
		out = []Summary{}
	}

	return out, nil
}

func (r *repository) Get(
	ctx context.Context,
	garageID, customerID int64,
) (*Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.customer_id = $1 AND c.garage_id = $2`

	var c Customer
	err := r.db.GetContext(ctx, &c, query, customerID, garageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

func (r *repository) FindByPhone(
	ctx context.Context,
	garageID int64,
	phone string,
) (*Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers c
		WHERE c.garage_id = $1 AND c.phone = $2
		ORDER BY c.customer_id
		LIMIT 1`

	var c Customer
	err := r.db.GetContext(ctx, &c, query, garageID, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find customer by phone: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by phone: %w", err)
	}

	return &c, nil
}
