// AngelaMos | 2026
// entity.go

package chat

import (
	"time"
)

const (
	SenderGarage   = "garage"
	SenderCustomer = "customer"
	SenderBot      = "bot"

	ConversationActive = "active"
)

type Conversation struct {
	ID          int64     `db:"conversation_id"`
	GarageID    int64     `db:"garage_id"`
	CustomerID  *int64    `db:"customer_id"`
	CarID       *int64    `db:"car_id"`
	Status      string    `db:"status"`
	LastMessage time.Time `db:"last_message"`
	CreatedAt   time.Time `db:"created_at"`
}

// ConversationSummary is a conversation joined with who and what it is
// about, for the garage inbox.
type ConversationSummary struct {
	Conversation
	CustomerName *string `db:"customer_name"`
	CarNumber    *string `db:"car_number"`
	CarModel     *string `db:"car_model"`
	MessageCount int64   `db:"message_count"`
}

type Message struct {
	ID             int64     `db:"message_id"`
	ConversationID int64     `db:"conversation_id"`
	SenderType     string    `db:"sender_type"`
	MessageText    string    `db:"message_text"`
	IsBotEscalated bool      `db:"is_bot_escalated"`
	CreatedAt      time.Time `db:"created_at"`
}

// Exchange is one inbound customer message and the bot reply to it,
// persisted together.
type Exchange struct {
	GarageID       int64
	ConversationID *int64
	CustomerPhone  string
	CarID          *int64
	CustomerText   string
	BotText        string
	Escalated      bool
}
