package agentflow

import (
	"time"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

// Reply is the agent side of a chat exchange before it is stamped and stored.
type Reply struct {
	Text   string
	Action *domain.Action
}

// Responder builds canned replies. The reply depends on the intent only.
type Responder struct {
	transactions domain.TransactionSource
	loc          *time.Location
}

// NewResponder creates a Responder. loc is used to render transaction times;
// nil means time.Local.
func NewResponder(transactions domain.TransactionSource, loc *time.Location) *Responder {
	if loc == nil {
		loc = time.Local
	}
	return &Responder{
		transactions: transactions,
		loc:          loc,
	}
}

func (r *Responder) Build(intent domain.Intent) Reply {
	switch intent {
	case domain.IntentCreateStrategy:
		suggestion := DefaultSuggestion
		return Reply{
			Text: suggestStrategyText,
			Action: &domain.Action{
				Type:     domain.ActionSuggestStrategy,
				Strategy: &suggestion,
			},
		}

	case domain.IntentTransactionHistory:
		var txs []domain.Transaction
		if r.transactions != nil {
			txs = r.transactions.ListTransactions()
		}
		return Reply{
			Text: transactionsHeader + FormatTransactionList(txs, r.loc),
			Action: &domain.Action{
				Type:         domain.ActionShowTransactions,
				Transactions: txs,
			},
		}

	case domain.IntentStrategyStatus:
		return Reply{Text: strategyStatusText}
	case domain.IntentHelp:
		return Reply{Text: helpText}
	case domain.IntentGreeting:
		return Reply{Text: greetingText}
	default:
		return Reply{Text: clarifyText}
	}
}
