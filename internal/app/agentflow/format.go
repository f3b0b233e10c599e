package agentflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

const (
	hashPrefixLen = 10
	clockLayout   = "3:04:05 PM"
)

// FormatTransactionList renders one block per transaction, blocks separated
// by a blank line. Times are rendered in loc.
func FormatTransactionList(txs []domain.Transaction, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	blocks := make([]string, 0, len(txs))
	for _, tx := range txs {
		blocks = append(blocks, fmt.Sprintf(
			"%s %s %s at $%s\nValue: $%s • %s\nTx: %s...",
			tx.Side, tx.Amount, tx.Token, tx.Price,
			tx.Value, tx.Timestamp.In(loc).Format(clockLayout),
			truncateHash(tx.Hash),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func truncateHash(h string) string {
	if len(h) <= hashPrefixLen {
		return h
	}
	return h[:hashPrefixLen]
}
