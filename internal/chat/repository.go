// AngelaMos | 2026
// repository.go

package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/customer"
)

var ErrGarageNotFound = errors.New("garage not found")

const pgForeignKeyViolation = "23503"

// Repository scopes conversations by garage. A conversation of another
// garage is reported as core.ErrNotFound.
type Repository interface {
	ListConversations(ctx context.Context, garageID int64) ([]ConversationSummary, error)
	ListMessages(ctx context.Context, garageID, conversationID int64) ([]Message, error)
	AddGarageMessage(ctx context.Context, garageID, conversationID int64, text string) (*Message, error)
	FindCar(ctx context.Context, garageID, carID int64) (*CarContext, error)
	SaveExchange(ctx context.Context, ex Exchange) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const messageColumns = `
	message_id, conversation_id, sender_type, message_text,
	is_bot_escalated, created_at`

func (r *repository) ListConversations(
	ctx context.Context,
	garageID int64,
) ([]ConversationSummary, error) {
	query := `
		SELECT c.conversation_id, c.garage_id, c.customer_id, c.car_id,
			c.status, c.last_message, c.created_at,
			cust.customer_name,
			car.car_number,
			car.car_model,
			COUNT(m.message_id) AS message_count
		FROM conversations c
		LEFT JOIN customers cust
			ON cust.customer_id = c.customer_id AND cust.garage_id = c.garage_id
		LEFT JOIN cars car
			ON car.car_id = c.car_id AND car.garage_id = c.garage_id
		LEFT JOIN messages m ON m.conversation_id = c.conversation_id
		WHERE c.garage_id = $1
		GROUP BY c.conversation_id, cust.customer_name, car.car_number, car.car_model
		ORDER BY c.last_message DESC`

	var out []ConversationSummary
	if err := r.db.SelectContext(ctx, &out, query, garageID); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if out == nil {
		out = []ConversationSummary{}
	}

	return out, nil
}

func (r *repository) ListMessages(
	ctx context.Context,
	garageID, conversationID int64,
) ([]Message, error) {
	if err := ownsConversation(ctx, r.db, garageID, conversationID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, message_id ASC`

	var out []Message
	if err := r.db.SelectContext(ctx, &out, query, conversationID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if out == nil {
		out = []Message{}
	}

	return out, nil
}

// AddGarageMessage bumps last_message first; the UPDATE doubles as the
// ownership check.
func (r *repository) AddGarageMessage(
	ctx context.Context,
	garageID, conversationID int64,
	text string,
) (*Message, error) {
	var msg *Message

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := touchConversation(ctx, tx, garageID, conversationID); err != nil {
			return err
		}

		m, err := insertMessage(ctx, tx, conversationID, SenderGarage, text, false)
		if err != nil {
			return err
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add garage message: %w", err)
	}

	return msg, nil
}

func (r *repository) FindCar(
	ctx context.Context,
	garageID, carID int64,
) (*CarContext, error) {
	query := `
		SELECT car_id, status, current_phase, created_at, updated_at
		FROM cars
		WHERE car_id = $1 AND garage_id = $2`

	var car CarContext
	err := r.db.GetContext(ctx, &car, query, carID, garageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find car: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find car: %w", err)
	}

	return &car, nil
}

// SaveExchange stores the customer message and the bot reply in one
// transaction, opening a conversation when none is supplied. The customer
// is resolved by phone inside the garage only.
func (r *repository) SaveExchange(ctx context.Context, ex Exchange) (int64, error) {
	var conversationID int64

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if ex.ConversationID != nil {
			conversationID = *ex.ConversationID
			if err := touchConversation(ctx, tx, ex.GarageID, conversationID); err != nil {
				return err
			}
		} else {
			id, err := openConversation(ctx, tx, ex)
			if err != nil {
				return err
			}
			conversationID = id
		}

		if _, err := insertMessage(
			ctx, tx, conversationID, SenderCustomer, ex.CustomerText, false,
		); err != nil {
			return err
		}

		_, err := insertMessage(ctx, tx, conversationID, SenderBot, ex.BotText, ex.Escalated)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("save chat exchange: %w", err)
	}

	return conversationID, nil
}

func openConversation(ctx context.Context, tx *sqlx.Tx, ex Exchange) (int64, error) {
	var customerID *int64
	if ex.CustomerPhone != "" {
		c, err := customer.NewRepository(tx).FindByPhone(ctx, ex.GarageID, ex.CustomerPhone)
		switch {
		case err == nil:
			customerID = &c.ID
		case !errors.Is(err, core.ErrNotFound):
			return 0, err
		}
	}

	query := `
		INSERT INTO conversations (garage_id, customer_id, car_id, status, last_message)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING conversation_id`

	var id int64
	err := tx.QueryRowxContext(ctx, query,
		ex.GarageID,
		customerID,
		ex.CarID,
		ConversationActive,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return 0, ErrGarageNotFound
		}
		return 0, fmt.Errorf("open conversation: %w", err)
	}

	return id, nil
}

func touchConversation(
	ctx context.Context,
	db core.DBTX,
	garageID, conversationID int64,
) error {
	query := `
		UPDATE conversations
		SET last_message = NOW()
		WHERE conversation_id = $1 AND garage_id = $2
		RETURNING conversation_id`

	var id int64
	err := db.QueryRowxContext(ctx, query, conversationID, garageID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}

	return nil
}

func ownsConversation(
	ctx context.Context,
	db core.DBTX,
	garageID, conversationID int64,
) error {
	var exists bool
	err := db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM conversations
			WHERE conversation_id = $1 AND garage_id = $2
		)`, conversationID, garageID)
	if err != nil {
		return fmt.Errorf("check conversation owner: %w", err)
	}
	if !exists {
		return core.ErrNotFound
	}
	return nil
}

func insertMessage(
	ctx context.Context,
	db core.DBTX,
	conversationID int64,
	sender, text string,
	escalated bool,
) (*Message, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_type, message_text, is_bot_escalated)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + messageColumns

	var m Message
	if err := db.GetContext(ctx, &m, query, conversationID, sender, text, escalated); err != nil {
		return nil, fmt.Errorf("insert %s message: %w", sender, err)
	}

	return &m, nil
}
