package domain

import "errors"

// ErrInvalidStrategy is returned when a strategy creation request is rejected.
var ErrInvalidStrategy = errors.New("invalid strategy")

type StrategyStatus string

const (
	StrategyActive    StrategyStatus = "active"
	StrategyCompleted StrategyStatus = "completed"
)

// Transaction is read-only mock reference data. Decimal fields are kept as
// display strings so they render exactly as stored.
type Transaction struct {
	ID            TransactionID
	StrategyLabel string
	Side          Side
	Token         string
	Amount        string
	Price         string
	Value         string
	Timestamp     Timestamp
	Hash          string
	Status        string
}

// Strategy is a DCA plan registered through the REST surface. No lifecycle
// transitions exist: it stays active forever.
type Strategy struct {
	ID                StrategyID
	Token             string
	AmountPerInterval float64
	IntervalMinutes   int
	DurationMinutes   int
	CreatedAt         Timestamp
	Status            StrategyStatus
	Executions        int
	TotalInvested     float64
	NextExecution     Timestamp
}

// StrategyBook groups strategies the way the UI lists them.
type StrategyBook struct {
	Active      []*Strategy
	Completed   []*Strategy
	TotalVolume float64
}
