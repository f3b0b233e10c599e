package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PabloGalante/dca-agent/internal/app/broadcast"
	"github.com/PabloGalante/dca-agent/internal/app/conversation"
	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

const (
	writeTimeout = 10 * time.Second
	maxFrameSize = 64 << 10
)

var errConnClosed = errors.New("websocket connection closed")

// ChatSubmitter is the conversation entry point used for inbound frames.
type ChatSubmitter interface {
	Record(ctx context.Context, text string) (*conversation.RecordOutput, error)
}

// Gateway accepts WebSocket clients, registers them with the hub and routes
// their frames to the chat service. Replies reach the sender through the
// hub broadcast, not as a direct answer.
type Gateway struct {
	hub      *broadcast.Hub
	chat     ChatSubmitter
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*wsConn]struct{}
}

// NewGateway creates a gateway. allowedOrigins containing "*" (or empty)
// accepts any origin.
func NewGateway(hub *broadcast.Hub, chat ChatSubmitter, allowedOrigins []string) *Gateway {
	g := &Gateway{
		hub:   hub,
		chat:  chat,
		conns: make(map[*wsConn]struct{}),
	}
	g.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	return g
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// ServeHTTP upgrades the request and runs the read loop until the client
// goes away.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade error", "error", err)
		return
	}
	conn.SetReadLimit(maxFrameSize)

	c := &wsConn{conn: conn}
	g.track(c)
	g.hub.Register(c)
	log.Info("websocket client connected", "clients", g.hub.Count())

	defer func() {
		g.hub.Unregister(c)
		g.untrack(c)
		c.close()
		log.Info("websocket client disconnected", "clients", g.hub.Count())
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read error", "error", err)
			}
			return
		}
		g.handleFrame(data)
	}
}

func (g *Gateway) handleFrame(data []byte) {
	ctx := observability.WithRequestID(context.Background(), uuid.NewString())
	log := observability.LoggerFromContext(ctx)

	var req dto.ChatRequestDTO
	if err := json.Unmarshal(data, &req); err != nil {
		log.Warn("dropping malformed websocket frame", "error", err)
		return
	}

	if _, err := g.chat.Record(ctx, req.Text()); err != nil {
		log.Error("websocket chat message failed", "error", err)
	}
}

// CloseAll sends a close frame to every open client and closes it. Used on
// shutdown; the read loops then unregister themselves.
func (g *Gateway) CloseAll() {
	g.mu.Lock()
	conns := make([]*wsConn, 0, len(g.conns))
	for c := range g.conns {
		conns = append(conns, c)
	}
	g.mu.Unlock()

	for _, c := range conns {
		c.closeWithMessage(websocket.CloseGoingAway, "server shutting down")
	}
}

func (g *Gateway) track(c *wsConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[c] = struct{}{}
}

func (g *Gateway) untrack(c *wsConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.conns, c)
}

// wsConn adapts a gorilla connection to broadcast.Conn. gorilla allows one
// concurrent writer, hence writeMu.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool
}

func (c *wsConn) Ready() bool {
	return !c.closed.Load()
}

func (c *wsConn) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed.Load() {
		return errConnClosed
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.closed.Store(true)
		_ = c.conn.Close()
		return err
	}
	return nil
}

func (c *wsConn) closeWithMessage(code int, text string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed.Swap(true) {
		return
	}
	msg := websocket.FormatCloseMessage(code, text)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (c *wsConn) close() {
	if c.closed.Swap(true) {
		return
	}
	_ = c.conn.Close()
}

var _ broadcast.Conn = (*wsConn)(nil)
