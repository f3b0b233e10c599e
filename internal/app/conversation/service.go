package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/dca-agent/internal/app/agentflow"
	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

type Service struct {
	chatLog    domain.ChatLog
	dispatcher *agentflow.Dispatcher
	notifiers  []domain.ChatNotifier
	now        func() time.Time
	newID      func() domain.MessageID
}

// NewService wires the chat log, the dispatcher and any number of notifiers
// (the broadcast hub, the Kafka relay). Nil notifiers are skipped.
func NewService(
	chatLog domain.ChatLog,
	dispatcher *agentflow.Dispatcher,
	notifiers ...domain.ChatNotifier,
) *Service {
	var active []domain.ChatNotifier
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}

	return &Service{
		chatLog:    chatLog,
		dispatcher: dispatcher,
		notifiers:  active,
		now:        time.Now,
		newID:      generateID,
	}
}

type RecordOutput struct {
	Intent       domain.Intent
	UserMessage  *domain.Message
	AgentMessage *domain.Message
}

// Record stores the user message and the agent reply as one pair, then
// notifies every live listener. Both transports go through here.
func (s *Service) Record(ctx context.Context, text string) (*RecordOutput, error) {
	log := observability.LoggerFromContext(ctx)

	userMsg := &domain.Message{
		ID:        s.newID(),
		Author:    domain.RoleUser,
		Text:      text,
		CreatedAt: s.now(),
	}

	intent, reply := s.dispatcher.Run(ctx, text)

	agentMsg := &domain.Message{
		ID:        s.newID(),
		Author:    domain.RoleAgent,
		Text:      reply.Text,
		CreatedAt: s.now(),
		Action:    reply.Action,
	}

	if err := s.chatLog.Append(userMsg, agentMsg); err != nil {
		log.Error("failed to append chat messages", "error", err)
		return nil, fmt.Errorf("append chat messages: %w", err)
	}

	log.Info("chat message recorded",
		"intent", intent,
		"user_message_id", userMsg.ID,
		"agent_message_id", agentMsg.ID,
	)

	update := domain.ChatUpdate{UserMessage: userMsg, AgentMessage: agentMsg}
	for _, n := range s.notifiers {
		n.NotifyChatUpdate(ctx, update)
	}

	return &RecordOutput{
		Intent:       intent,
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
	}, nil
}

// History returns every message recorded so far, oldest first.
func (s *Service) History(ctx context.Context) ([]*domain.Message, error) {
	msgs, err := s.chatLog.List()
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list chat history", "error", err)
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return msgs, nil
}

// generateID returns a time-ordered UUIDv7, falling back to v4.
func generateID() domain.MessageID {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.MessageID(uuid.NewString())
	}
	return domain.MessageID(id.String())
}
