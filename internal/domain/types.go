package domain

import "time"

type MessageID string
type StrategyID string
type TransactionID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Intent is the classified purpose of an inbound chat message.
type Intent string

const (
	IntentCreateStrategy     Intent = "create_strategy"
	IntentTransactionHistory Intent = "transaction_history"
	IntentStrategyStatus     Intent = "strategy_status"
	IntentHelp               Intent = "help"
	IntentGreeting           Intent = "greeting"
	IntentUnknown            Intent = "unknown"
)

type Side string

const (
	SideBuy Side = "BUY"
)

type Timestamp = time.Time
