package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

const publishTimeout = 5 * time.Second

// KafkaConfig holds Kafka connection configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// MessageWriter is the subset of *kafka.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChatRelay mirrors chat updates to a Kafka topic. Publishing is best-effort:
// failures are logged and never reach the chat caller.
type ChatRelay struct {
	writer MessageWriter
	now    func() time.Time
}

// NewChatRelay creates a relay backed by an async kafka.Writer, so a slow or
// unreachable broker never holds up a chat request.
func NewChatRelay(config KafkaConfig) *ChatRelay {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				observability.Logger().Warn("kafka delivery failed",
					"topic", config.Topic,
					"messages", len(messages),
					"error", err,
				)
			}
		},
	}
	return NewChatRelayWithWriter(writer)
}

// NewChatRelayWithWriter wraps an existing writer.
func NewChatRelayWithWriter(writer MessageWriter) *ChatRelay {
	return &ChatRelay{writer: writer, now: time.Now}
}

// EncodeChatUpdate builds the Kafka record for an update: the JSON envelope
// keyed by the user message id.
func EncodeChatUpdate(update domain.ChatUpdate, at time.Time) (kafka.Message, error) {
	data, err := json.Marshal(dto.FromChatUpdate(update))
	if err != nil {
		return kafka.Message{}, err
	}

	var key []byte
	if update.UserMessage != nil {
		key = []byte(update.UserMessage.ID)
	}

	return kafka.Message{
		Key:   key,
		Value: data,
		Time:  at,
	}, nil
}

// NotifyChatUpdate implements domain.ChatNotifier.
func (r *ChatRelay) NotifyChatUpdate(ctx context.Context, update domain.ChatUpdate) {
	log := observability.LoggerFromContext(ctx)

	msg, err := EncodeChatUpdate(update, r.now())
	if err != nil {
		log.Error("failed to encode chat update for kafka", "error", err)
		return
	}

	// The request context may end as soon as the reply is written.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := r.writer.WriteMessages(pubCtx, msg); err != nil {
		log.Warn("failed to publish chat update", "error", err)
	}
}

// Close closes the producer
func (r *ChatRelay) Close() error {
	return r.writer.Close()
}

var _ domain.ChatNotifier = (*ChatRelay)(nil)
