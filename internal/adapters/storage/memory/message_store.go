package memory

import (
	"sync"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

// MessageStore is the process-lifetime chat log. Entries are never removed.
type MessageStore struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

// Append adds msgs under a single lock so a user/agent pair is never split
// or interleaved with another pair.
func (s *MessageStore) Append(msgs ...*domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msgs...)
	return nil
}

// List returns a snapshot of the log in insertion order.
func (s *MessageStore) List() ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}

var _ domain.ChatLog = (*MessageStore)(nil)
