// AngelaMos | 2026
// dto.go

package chat

import (
	"time"
)

type SendMessageRequest struct {
	MessageText string `json:"message_text" validate:"required,max=4000"`
}

// ChatbotRequest is posted by public channels. An empty message still gets
// the default reply.
type ChatbotRequest struct {
	Message        string `json:"message"         validate:"max=4000"`
	CustomerPhone  string `json:"customer_phone"  validate:"max=50"`
	CarID          *int64 `json:"car_id"          validate:"omitempty,gt=0"`
	GarageID       int64  `json:"garage_id"       validate:"required,gt=0"`
	ConversationID *int64 `json:"conversation_id" validate:"omitempty,gt=0"`
}

type ChatbotResponse struct {
	Success        bool   `json:"success"`
	Response       string `json:"response"`
	ConversationID int64  `json:"conversation_id"`
	NeedsHuman     bool   `json:"needs_human"`
}

type ConversationResponse struct {
	ID           int64     `json:"conversation_id"`
	GarageID     int64     `json:"garage_id"`
	CustomerID   *int64    `json:"customer_id"`
	CarID        *int64    `json:"car_id"`
	Status       string    `json:"status"`
	LastMessage  time.Time `json:"last_message"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName *string   `json:"customer_name"`
	CarNumber    *string   `json:"car_number"`
	CarModel     *string   `json:"car_model"`
	MessageCount int64     `json:"message_count"`
}

func ToConversationResponseList(list []ConversationSummary) []ConversationResponse {
	out := make([]ConversationResponse, len(list))
	for i, c := range list {
		out[i] = ConversationResponse{
			ID:           c.ID,
			GarageID:     c.GarageID,
			CustomerID:   c.CustomerID,
			CarID:        c.CarID,
			Status:       c.Status,
			LastMessage:  c.LastMessage,
			CreatedAt:    c.CreatedAt,
			CustomerName: c.CustomerName,
			CarNumber:    c.CarNumber,
			CarModel:     c.CarModel,
			MessageCount: c.MessageCount,
		}
	}
	return out
}

type MessageResponse struct {
	ID             int64     `json:"message_id"`
	ConversationID int64     `json:"conversation_id"`
	SenderType     string    `json:"sender_type"`
	MessageText    string    `json:"message_text"`
	IsBotEscalated bool      `json:"is_bot_escalated"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageResponseList(msgs []Message) []MessageResponse {
	out := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = MessageResponse(m)
	}
	return out
}
