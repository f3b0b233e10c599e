package agentflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

func TestFormatTransactionList(t *testing.T) {
	txs := []domain.Transaction{{
		Side:      domain.SideBuy,
		Token:     "ARB",
		Amount:    "12.5",
		Price:     "0.80",
		Value:     "10.00",
		Timestamp: time.Date(2024, time.March, 1, 18, 4, 5, 0, time.UTC),
		Hash:      "0x1234567890abcdef",
	}}

	got := FormatTransactionList(txs, time.UTC)

	assert.Equal(t, "BUY 12.5 ARB at $0.80\nValue: $10.00 • 6:04:05 PM\nTx: 0x12345678...", got)
}

func TestFormatTransactionListEmpty(t *testing.T) {
	assert.Equal(t, "", FormatTransactionList(nil, time.UTC))
}

func TestTruncateHash(t *testing.T) {
	assert.Equal(t, "0xab", truncateHash("0xab"))
	assert.Equal(t, "0123456789", truncateHash("0123456789abc"))
}
