package domain

import "context"

// ChatLog is the append-only, insertion-ordered log of every message of the
// process lifetime.
type ChatLog interface {
	// Append stores all messages atomically, in the given order.
	Append(msgs ...*Message) error
	List() ([]*Message, error)
	Len() int
}

// StrategyStore keeps the strategies created through the API.
type StrategyStore interface {
	AddStrategy(s *Strategy) error
	ListStrategies() ([]*Strategy, error)
}

// TransactionSource exposes the static transaction reference set.
type TransactionSource interface {
	ListTransactions() []Transaction
}

// ChatNotifier receives every chat update once it is stored. Implementations
// are best-effort and must not block the caller for long.
type ChatNotifier interface {
	NotifyChatUpdate(ctx context.Context, update ChatUpdate)
}
