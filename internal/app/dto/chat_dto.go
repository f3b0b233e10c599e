// Package dto holds the JSON wire format shared by the HTTP, WebSocket and
// Kafka surfaces.
package dto

import (
	"encoding/json"
	"time"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

const TypeChatUpdate = "chat_update"

// MessageDTO is a chat message as the web client renders it. "type" carries
// the author role.
type MessageDTO struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	Action    *ActionDTO `json:"action"`
}

type ActionDTO struct {
	Type         string           `json:"type"`
	Strategy     *SuggestionDTO   `json:"strategy,omitempty"`
	Transactions []TransactionDTO `json:"transactions,omitempty"`
}

type SuggestionDTO struct {
	Token          string  `json:"token"`
	Amount         float64 `json:"amount"`
	Interval       int     `json:"interval"`
	Duration       int     `json:"duration"`
	Dex            string  `json:"dex"`
	EstimatedTotal float64 `json:"estimatedTotal"`
}

type TransactionDTO struct {
	ID        string `json:"id"`
	Strategy  string `json:"strategy"`
	Type      string `json:"type"`
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	Price     string `json:"price"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"` // unix ms
	TxHash    string `json:"txHash"`
	Status    string `json:"status"`
}

// ChatUpdateDTO is the envelope pushed to every open connection.
type ChatUpdateDTO struct {
	Type     string       `json:"type"`
	Messages []MessageDTO `json:"messages"`
}

func FromMessage(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID:        string(m.ID),
		Type:      string(m.Author),
		Content:   m.Text,
		Timestamp: m.CreatedAt,
		Action:    FromAction(m.Action),
	}
}

func FromMessages(msgs []*domain.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromMessage(m))
	}
	return out
}

func FromAction(a *domain.Action) *ActionDTO {
	if a == nil {
		return nil
	}

	out := &ActionDTO{Type: string(a.Type)}
	switch a.Type {
	case domain.ActionSuggestStrategy:
		if a.Strategy != nil {
			out.Strategy = &SuggestionDTO{
				Token:          a.Strategy.Token,
				Amount:         a.Strategy.AmountPerInterval,
				Interval:       a.Strategy.IntervalMinutes,
				Duration:       a.Strategy.DurationMinutes,
				Dex:            a.Strategy.Venue,
				EstimatedTotal: a.Strategy.EstimatedTotal(),
			}
		}
	case domain.ActionShowTransactions:
		out.Transactions = FromTransactions(a.Transactions)
	}
	return out
}

func FromTransaction(tx domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        string(tx.ID),
		Strategy:  tx.StrategyLabel,
		Type:      string(tx.Side),
		Token:     tx.Token,
		Amount:    tx.Amount,
		Price:     tx.Price,
		Value:     tx.Value,
		Timestamp: tx.Timestamp.UnixMilli(),
		TxHash:    tx.Hash,
		Status:    tx.Status,
	}
}

func FromTransactions(txs []domain.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}

func FromChatUpdate(u domain.ChatUpdate) ChatUpdateDTO {
	return ChatUpdateDTO{
		Type:     TypeChatUpdate,
		Messages: FromMessages(u.Messages()),
	}
}

// ChatRequestDTO is the inbound chat payload, over HTTP or as a WebSocket
// frame. Message is kept raw so a non-string value degrades to empty text.
type ChatRequestDTO struct {
	Message json.RawMessage `json:"message"`
	Type    string          `json:"type,omitempty"`
}

// Text returns the message as a string, or "" when it is missing or not a
// JSON string.
func (r ChatRequestDTO) Text() string {
	if len(r.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Message, &s); err != nil {
		return ""
	}
	return s
}
