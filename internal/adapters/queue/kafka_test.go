package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/domain"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

var at = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testUpdate() domain.ChatUpdate {
	return domain.ChatUpdate{
		UserMessage:  &domain.Message{ID: "user-1", Author: domain.RoleUser, Text: "hi", CreatedAt: at},
		AgentMessage: &domain.Message{ID: "agent-1", Author: domain.RoleAgent, Text: "hey", CreatedAt: at},
	}
}

func TestEncodeChatUpdate(t *testing.T) {
	msg, err := EncodeChatUpdate(testUpdate(), at)
	require.NoError(t, err)

	assert.Equal(t, []byte("user-1"), msg.Key)
	assert.Equal(t, at, msg.Time)

	var env dto.ChatUpdateDTO
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, dto.TypeChatUpdate, env.Type)
	require.Len(t, env.Messages, 2)
	assert.Equal(t, "agent-1", env.Messages[1].ID)
}

func TestRelayPublishes(t *testing.T) {
	w := &fakeWriter{}
	relay := NewChatRelayWithWriter(w)

	// a canceled request context must not stop the publish
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	relay.NotifyChatUpdate(ctx, testUpdate())

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("user-1"), w.msgs[0].Key)

	require.NoError(t, relay.Close())
	assert.True(t, w.closed)
}

func TestRelaySwallowsWriteErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	relay := NewChatRelayWithWriter(w)

	assert.NotPanics(t, func() {
		relay.NotifyChatUpdate(context.Background(), testUpdate())
	})
	assert.Empty(t, w.msgs)
}

func TestNewChatRelayConfiguresWriter(t *testing.T) {
	relay := NewChatRelay(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "dca-chat-updates"})

	w, ok := relay.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "dca-chat-updates", w.Topic)
	assert.True(t, w.Async)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	require.NoError(t, relay.Close())
}
