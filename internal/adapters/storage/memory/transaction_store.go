package memory

import (
	"time"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

// TransactionStore serves a fixed set of mock transactions.
type TransactionStore struct {
	txs []domain.Transaction
}

// NewTransactionStore returns a store holding txs as given.
func NewTransactionStore(txs []domain.Transaction) *TransactionStore {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	return &TransactionStore{txs: out}
}

// NewMockTransactionStore builds the demo fixture: two completed ETH buys,
// five and ten minutes before now.
func NewMockTransactionStore(now time.Time) *TransactionStore {
	return NewTransactionStore([]domain.Transaction{
		{
			ID:            "tx_001",
			StrategyLabel: "ETH-USDC-5MIN",
			Side:          domain.SideBuy,
			Token:         "ETH",
			Amount:        "0.01",
			Price:         "2340.50",
			Value:         "23.41",
			Timestamp:     now.Add(-5 * time.Minute),
			Hash:          "0xabc123...",
			Status:        "completed",
		},
		{
			ID:            "tx_002",
			StrategyLabel: "ETH-USDC-5MIN",
			Side:          domain.SideBuy,
			Token:         "ETH",
			Amount:        "0.01",
			Price:         "2335.75",
			Value:         "23.36",
			Timestamp:     now.Add(-10 * time.Minute),
			Hash:          "0xdef456...",
			Status:        "completed",
		},
	})
}

// ListTransactions returns a copy of the set in stored order.
func (s *TransactionStore) ListTransactions() []domain.Transaction {
	out := make([]domain.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

var _ domain.TransactionSource = (*TransactionStore)(nil)
