package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

// Conn is one open real-time client.
type Conn interface {
	// Ready reports whether the transport can take a frame right now.
	Ready() bool
	Send(payload []byte) error
}

// Hub is the set of open connections. Fan-out is fire-and-forget: no
// queueing, no retry and no ordering guarantee across connections.
type Hub struct {
	mu    sync.RWMutex
	conns map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[Conn]struct{}),
	}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c] = struct{}{}
}

func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, c)
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

// Broadcast sends payload to every registered connection that is ready and
// returns how many sends succeeded. The set is copied first, so connections
// may register or unregister while a broadcast is running.
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if !c.Ready() {
			continue
		}
		if err := c.Send(payload); err != nil {
			observability.Logger().Debug("broadcast send failed", "error", err)
			continue
		}
		sent++
	}
	return sent
}

// NotifyChatUpdate implements domain.ChatNotifier.
func (h *Hub) NotifyChatUpdate(ctx context.Context, update domain.ChatUpdate) {
	payload, err := json.Marshal(dto.FromChatUpdate(update))
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to marshal chat update", "error", err)
		return
	}

	sent := h.Broadcast(payload)
	observability.LoggerFromContext(ctx).Debug("chat update broadcast", "delivered", sent)
}

var _ domain.ChatNotifier = (*Hub)(nil)
