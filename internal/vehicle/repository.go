// AngelaMos | 2026
// repository.go

package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrAmountTooLarge means a cost would not fit its NUMERIC(12,2) column.
	ErrAmountTooLarge = errors.New("amount too large")
)

// Repository scopes every statement by garage id. A car owned by another
// garage is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	ListByGarage(ctx context.Context, garageID int64) ([]Vehicle, error)
	ListByCustomer(ctx context.Context, garageID, customerID int64) ([]Vehicle, error)
	Get(ctx context.Context, garageID, carID int64) (*Vehicle, error)
	GetForInvoice(ctx context.Context, garageID, carID int64) (*InvoiceVehicle, error)
	UpdateStatus(ctx context.Context, garageID, carID int64, status string) (*Vehicle, error)
	AddPart(ctx context.Context, garageID int64, part *Part) (*Vehicle, error)
	ListParts(ctx context.Context, garageID, carID int64) ([]Part, error)
	AddPhase(ctx context.Context, garageID int64, phase *Phase) error
	ListPhases(ctx context.Context, garageID, carID int64) ([]Phase, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const vehicleColumns = `
	car_id, garage_id, customer_id, car_number, chassis_number, car_model,
	car_color, owner_name, owner_phone, initial_diagnosis, status,
	current_phase, parts_total, labor_cost, total_cost, created_at, updated_at`

const partColumns = `part_id, car_id, part_name, price, quantity, created_at`

const phaseColumns = `
	phase_id, car_id, phase_name, phase_description, technician_notes,
	status, start_date`

// Create refuses a customer_id that belongs to another garage in the same
// statement that inserts the car.
func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO cars
			(garage_id, customer_id, car_number, chassis_number, car_model,
			 car_color, owner_name, owner_phone, initial_diagnosis, status,
			 current_phase, parts_total, labor_cost, total_cost)
		SELECT $1::bigint, $2::bigint, $3::text, $4::text, $5::text, $6::text,
		       $7::text, $8::text, $9::text, $10::text, $11::text,
		       0, $12::numeric, $12::numeric
		WHERE $2::bigint IS NULL OR EXISTS (
			SELECT 1 FROM customers WHERE customer_id = $2 AND garage_id = $1
		)
		RETURNING ` + vehicleColumns

	err := r.db.GetContext(ctx, v, query,
		v.GarageID,
		v.CustomerID,
		v.CarNumber,
		v.ChassisNumber,
		v.CarModel,
		v.CarColor,
		v.OwnerName,
		v.OwnerPhone,
		v.InitialDiagnosis,
		v.Status,
		v.CurrentPhase,
		v.LaborCost,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("create car: %w", ErrCustomerNotFound)
	}
	if err != nil {
		return fmt.Errorf("create car: %w", err)
	}

	return nil
}

func (r *repository) ListByGarage(
	ctx context.Context,
	garageID int64,
) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `
		FROM cars
		WHERE garage_id = $1
		ORDER BY created_at DESC`

	cars := []Vehicle{}
	if err := r.db.SelectContext(ctx, &cars, query, garageID); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	return cars, nil
}

func (r *repository) ListByCustomer(
	ctx context.Context,
	garageID, customerID int64,
) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `
		FROM cars
		WHERE customer_id = $1 AND garage_id = $2
		ORDER BY created_at DESC`

	cars := []Vehicle{}
	if err := r.db.SelectContext(ctx, &cars, query, customerID, garageID); err != nil {
		return nil, fmt.Errorf("list customer cars: %w", err)
	}

	return cars, nil
}

func (r *repository) Get(
	ctx context.Context,
	garageID, carID int64,
) (*Vehicle, error) {
	query := `SELECT ` + vehicleColumns + `
		FROM cars
		WHERE car_id = $1 AND garage_id = $2`

	var v Vehicle
	err := r.db.GetContext(ctx, &v, query, carID, garageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get car: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}

	return &v, nil
}

func (r *repository) GetForInvoice(
	ctx context.Context,
	garageID, carID int64,
) (*InvoiceVehicle, error) {
	query := `
		SELECT c.car_id, c.garage_id, c.customer_id, c.car_number,
		       c.chassis_number, c.car_model, c.car_color, c.owner_name,
		       c.owner_phone, c.initial_diagnosis, c.status, c.current_phase,
		       c.parts_total, c.labor_cost, c.total_cost, c.created_at,
		       c.updated_at,
		       cust.customer_name,
		       cust.phone AS customer_phone,
		       cust.email AS customer_email
		FROM cars c
		LEFT JOIN customers cust
		       ON c.customer_id = cust.customer_id
		      AND cust.garage_id = c.garage_id
		WHERE c.car_id = $1 AND c.garage_id = $2`

	var v InvoiceVehicle
	err := r.db.GetContext(ctx, &v, query, carID, garageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invoice car: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice car: %w", err)
	}

	return &v, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	garageID, carID int64,
	status string,
) (*Vehicle, error) {
	query := `
		UPDATE cars
		SET status = $3, updated_at = NOW()
		WHERE car_id = $1 AND garage_id = $2
		RETURNING ` + vehicleColumns

	var v Vehicle
	err := r.db.GetContext(ctx, &v, query, carID, garageID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update car status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update car status: %w", err)
	}

	return &v, nil
}

// AddPart accrues the line total onto the car and inserts the part in one
// transaction. The UPDATE is the ownership check and takes the row lock, so
// concurrent additions to the same car serialize on it and none is lost.
// Within SET, parts_total still refers to the pre-update value.
func (r *repository) AddPart(
	ctx context.Context,
	garageID int64,
	part *Part,
) (*Vehicle, error) {
	accrue := `
		UPDATE cars
		SET parts_total = parts_total + $3,
		    total_cost  = labor_cost + parts_total + $3,
		    updated_at  = NOW()
		WHERE car_id = $1 AND garage_id = $2
		RETURNING ` + vehicleColumns

	insert := `
		INSERT INTO spare_parts (car_id, part_name, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + partColumns

	var v Vehicle
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &v, accrue, part.CarID, garageID, part.LineTotal())
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if isNumericOverflow(err) {
			return ErrAmountTooLarge
		}
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, part, insert,
			part.CarID,
			part.PartName,
			part.Price,
			part.Quantity,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("add part: %w", err)
	}

	return &v, nil
}

func (r *repository) ListParts(
	ctx context.Context,
	garageID, carID int64,
) ([]Part, error) {
	query := `
		SELECT sp.part_id, sp.car_id, sp.part_name, sp.price, sp.quantity,
		       sp.created_at
		FROM spare_parts sp
		JOIN cars c ON c.car_id = sp.car_id
		WHERE sp.car_id = $1 AND c.garage_id = $2
		ORDER BY sp.created_at ASC, sp.part_id ASC`

	parts := []Part{}
	if err := r.db.SelectContext(ctx, &parts, query, carID, garageID); err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}

	return parts, nil
}

// AddPhase appends the phase and moves the car's current_phase to it. The
// car update doubles as the ownership check.
func (r *repository) AddPhase(
	ctx context.Context,
	garageID int64,
	phase *Phase,
) error {
	query := `
		WITH car AS (
			UPDATE cars
			SET current_phase = $3, updated_at = NOW()
			WHERE car_id = $1 AND garage_id = $2
			RETURNING car_id
		)
		INSERT INTO repair_phases
			(car_id, phase_name, phase_description, technician_notes,
			 status, start_date)
		SELECT car_id, $3::text, $4::text, $5::text, $6::text, NOW() FROM car
		RETURNING ` + phaseColumns

	err := r.db.GetContext(ctx, phase, query,
		phase.CarID,
		garageID,
		phase.PhaseName,
		phase.PhaseDescription,
		phase.TechnicianNotes,
		phase.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("add phase: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("add phase: %w", err)
	}

	return nil
}

func (r *repository) ListPhases(
	ctx context.Context,
	garageID, carID int64,
) ([]Phase, error) {
	query := `
		SELECT rp.phase_id, rp.car_id, rp.phase_name, rp.phase_description,
		       rp.technician_notes, rp.status, rp.start_date
		FROM repair_phases rp
		JOIN cars c ON c.car_id = rp.car_id
		WHERE rp.car_id = $1 AND c.garage_id = $2
		ORDER BY rp.phase_id`

	phases := []Phase{}
	if err := r.db.SelectContext(ctx, &phases, query, carID, garageID); err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}

	return phases, nil
}

// isNumericOverflow matches numeric_value_out_of_range, raised when the
// accrued total no longer fits NUMERIC(12,2).
func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22003"
}
