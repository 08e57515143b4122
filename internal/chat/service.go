// AngelaMos | 2026
// service.go

package chat

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/monitoring"
)

type Service struct {
	repo       Repository
	classifier *Classifier
}

func NewService(repo Repository, classifier *Classifier) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
	}
}

func (s *Service) ListConversations(
	ctx context.Context,
	garageID int64,
) ([]ConversationSummary, error) {
	return s.repo.ListConversations(ctx, garageID)
}

func (s *Service) ListMessages(
	ctx context.Context,
	garageID, conversationID int64,
) ([]Message, error) {
	return s.repo.ListMessages(ctx, garageID, conversationID)
}

func (s *Service) SendGarageMessage(
	ctx context.Context,
	garageID, conversationID int64,
	text string,
) (*Message, error) {
	return s.repo.AddGarageMessage(ctx, garageID, conversationID, text)
}

type InboundResult struct {
	ConversationID int64
	Reply          Reply
}

// HandleInbound answers a customer message. A car id that does not belong to
// the garage is dropped rather than rejected, so the reply carries no car
// details and the conversation is not linked to it.
func (s *Service) HandleInbound(
	ctx context.Context,
	req ChatbotRequest,
) (*InboundResult, error) {
	ctx, span := core.StartSpan(ctx, "chat.HandleInbound",
		attribute.Int64("garage.id", req.GarageID),
	)
	defer span.End()

	var car *CarContext
	carID := req.CarID
	if carID != nil {
		found, err := s.repo.FindCar(ctx, req.GarageID, *carID)
		switch {
		case err == nil:
			car = found
		case errors.Is(err, core.ErrNotFound):
			carID = nil
		default:
			core.SetSpanError(ctx, err)
			return nil, err
		}
	}

	reply := s.classifier.Classify(req.Message, car)

	conversationID, err := s.repo.SaveExchange(ctx, Exchange{
		GarageID:       req.GarageID,
		ConversationID: req.ConversationID,
		CustomerPhone:  req.CustomerPhone,
		CarID:          carID,
		CustomerText:   req.Message,
		BotText:        reply.Text,
		Escalated:      reply.NeedsHuman,
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	monitoring.ChatbotReplies.WithLabelValues(string(reply.Category)).Inc()
	core.AddSpanEvent(ctx, "chat.replied",
		attribute.String("chat.category", string(reply.Category)),
		attribute.Bool("chat.needs_human", reply.NeedsHuman),
	)

	if reply.NeedsHuman {
		slog.InfoContext(ctx, "chat escalated to garage",
			"garage_id", req.GarageID,
			"conversation_id", conversationID,
		)
	}

	return &InboundResult{
		ConversationID: conversationID,
		Reply:          reply,
	}, nil
}
