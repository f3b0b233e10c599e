package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/PabloGalante/dca-agent/internal/app/broadcast"
	"github.com/PabloGalante/dca-agent/internal/app/conversation"
	"github.com/PabloGalante/dca-agent/internal/app/dto"
	"github.com/PabloGalante/dca-agent/internal/app/strategy"
	"github.com/PabloGalante/dca-agent/internal/domain"
)

const maxBodyBytes = 1 << 20

// Options are the collaborators of the HTTP surface. Gateway may be nil when
// real-time chat is disabled.
type Options struct {
	Chat           *conversation.Service
	Strategies     *strategy.Service
	Hub            *broadcast.Hub
	Gateway        http.Handler
	AllowedOrigins []string
}

type Server struct {
	chat       *conversation.Service
	strategies *strategy.Service
	hub        *broadcast.Hub
	gateway    http.Handler
	now        func() time.Time
}

func NewServer(opts Options) http.Handler {
	s := &Server{
		chat:       opts.Chat,
		strategies: opts.Strategies,
		hub:        opts.Hub,
		gateway:    opts.Gateway,
		now:        time.Now,
	}
	mux := http.NewServeMux()

	// / → index, or WebSocket upgrade (the web client connects to the root)
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/ws", s.handleWebSocket)

	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/chat/history", s.handleChatHistory)
	mux.HandleFunc("/api/strategies", s.handleStrategies)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	mux.HandleFunc("/api/image/preview", s.handlePreviewImage)
	mux.HandleFunc("/api/image/splash", s.handleSplashImage)
	mux.HandleFunc("/.well-known/farcaster.json", s.handleManifest)

	mux.HandleFunc("/health", s.handleHealth)

	return chainMiddlewares(mux,
		withCORS(opts.AllowedOrigins),
		withLogging,
		withRequestID,
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatResponse struct {
	Messages []dto.MessageDTO `json:"messages"`
}

type chatHistoryResponse struct {
	Messages []dto.MessageDTO `json:"messages"`
	Total    int              `json:"total"`
}

type createStrategyRequest struct {
	Token    string  `json:"token"`
	Amount   float64 `json:"amount"`
	Interval int     `json:"interval"`
	Duration int     `json:"duration"`
}

type strategyResponse struct {
	ID            string  `json:"id"`
	Token         string  `json:"token"`
	Amount        float64 `json:"amount"`
	Interval      int     `json:"interval"`
	Duration      int     `json:"duration"`
	Created       int64   `json:"created"`
	Status        string  `json:"status"`
	Executions    int     `json:"executions"`
	TotalInvested float64 `json:"totalInvested"`
	NextExecution int64   `json:"nextExecution"`
}

type createStrategyResponse struct {
	Success  bool             `json:"success"`
	Strategy strategyResponse `json:"strategy"`
}

type strategyBookResponse struct {
	Active      []strategyResponse `json:"active"`
	Completed   []strategyResponse `json:"completed"`
	TotalVolume float64            `json:"totalVolume"`
}

type transactionsResponse struct {
	Transactions []dto.TransactionDTO `json:"transactions"`
	Total        int                  `json:"total"`
}

type healthResponse struct {
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
	ActiveStrategies  int       `json:"activeStrategies"`
	TotalTransactions int       `json:"totalTransactions"`
	ConnectedClients  int       `json:"connectedClients"`
}

type indexResponse struct {
	Name      string   `json:"name"`
	Endpoints []string `json:"endpoints"`
}

// ─────────────────────────────────────────────
// Routing & handlers
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		s.handleWebSocket(w, r)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Name: "DCA Agent",
		Endpoints: []string{
			"POST /api/chat",
			"GET /api/chat/history",
			"GET /api/strategies",
			"POST /api/strategies",
			"GET /api/transactions",
			"GET /ws",
			"GET /health",
		},
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.gateway == nil {
		http.NotFound(w, r)
		return
	}
	s.gateway.ServeHTTP(w, r)
}

// /api/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	// A missing body or a non-string message is answered like empty text.
	var req dto.ChatRequestDTO
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.chat.Record(r.Context(), req.Text())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Messages: dto.FromMessages([]*domain.Message{out.UserMessage, out.AgentMessage}),
	})
}

// /api/chat/history
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	msgs, err := s.chat.History(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatHistoryResponse{
		Messages: dto.FromMessages(msgs),
		Total:    len(msgs),
	})
}

// /api/strategies
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListStrategies(w, r)
	case http.MethodPost:
		s.handleCreateStrategy(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	book, err := s.strategies.Book(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, strategyBookResponse{
		Active:      toStrategiesResponse(book.Active),
		Completed:   toStrategiesResponse(book.Completed),
		TotalVolume: book.TotalVolume,
	})
}

func (s *Server) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	var req createStrategyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	st, err := s.strategies.Create(r.Context(), strategy.CreateInput{
		Token:    req.Token,
		Amount:   req.Amount,
		Interval: req.Interval,
		Duration: req.Duration,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStrategy) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createStrategyResponse{
		Success:  true,
		Strategy: toStrategyResponse(st),
	})
}

// /api/transactions
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	txs := s.strategies.Transactions()
	writeJSON(w, http.StatusOK, transactionsResponse{
		Transactions: dto.FromTransactions(txs),
		Total:        len(txs),
	})
}

// /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	book, err := s.strategies.Book(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	clients := 0
	if s.hub != nil {
		clients = s.hub.Count()
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "healthy",
		Timestamp:         s.now().UTC(),
		ActiveStrategies:  len(book.Active),
		TotalTransactions: len(s.strategies.Transactions()),
		ConnectedClients:  clients,
	})
}

// ─────────────────────────────────────────────
// Strategy Helpers
// ─────────────────────────────────────────────

func toStrategyResponse(st *domain.Strategy) strategyResponse {
	return strategyResponse{
		ID:            string(st.ID),
		Token:         st.Token,
		Amount:        st.AmountPerInterval,
		Interval:      st.IntervalMinutes,
		Duration:      st.DurationMinutes,
		Created:       st.CreatedAt.UnixMilli(),
		Status:        string(st.Status),
		Executions:    st.Executions,
		TotalInvested: st.TotalInvested,
		NextExecution: st.NextExecution.UnixMilli(),
	}
}

func toStrategiesResponse(list []*domain.Strategy) []strategyResponse {
	out := make([]strategyResponse, 0, len(list))
	for _, st := range list {
		out = append(out, toStrategyResponse(st))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
