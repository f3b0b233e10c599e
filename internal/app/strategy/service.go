package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

// Service holds the strategy book and the transaction reference set.
type Service struct {
	store        domain.StrategyStore
	transactions domain.TransactionSource
	now          func() time.Time
}

// NewService creates a strategy service from its stores.
func NewService(store domain.StrategyStore, transactions domain.TransactionSource) *Service {
	return &Service{
		store:        store,
		transactions: transactions,
		now:          time.Now,
	}
}

type CreateInput struct {
	Token    string
	Amount   float64
	Interval int // minutes
	Duration int // minutes
}

func (in CreateInput) validate() error {
	switch {
	case strings.TrimSpace(in.Token) == "":
		return fmt.Errorf("%w: token is required", domain.ErrInvalidStrategy)
	case in.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidStrategy)
	case in.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive", domain.ErrInvalidStrategy)
	case in.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", domain.ErrInvalidStrategy)
	}
	return nil
}

// Create registers a new active strategy. Nothing is ever executed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Strategy, error) {
	log := observability.LoggerFromContext(ctx).With(
		"token", in.Token,
		"interval", in.Interval,
	)

	if err := in.validate(); err != nil {
		log.Warn("rejected strategy", "error", err)
		return nil, err
	}

	now := s.now()
	strategy := &domain.Strategy{
		ID:                domain.StrategyID(fmt.Sprintf("%s-USDC-%dMIN", in.Token, in.Interval)),
		Token:             in.Token,
		AmountPerInterval: in.Amount,
		IntervalMinutes:   in.Interval,
		DurationMinutes:   in.Duration,
		CreatedAt:         now,
		Status:            domain.StrategyActive,
		NextExecution:     now.Add(time.Duration(in.Interval) * time.Minute),
	}

	if err := s.store.AddStrategy(strategy); err != nil {
		log.Error("failed to store strategy", "error", err)
		return nil, fmt.Errorf("store strategy: %w", err)
	}

	log.Info("strategy created", "strategy_id", strategy.ID)
	return strategy, nil
}

// Book returns the strategies grouped by status. No strategy ever completes,
// so Completed is always empty and TotalVolume zero.
func (s *Service) Book(ctx context.Context) (*domain.StrategyBook, error) {
	all, err := s.store.ListStrategies()
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list strategies", "error", err)
		return nil, fmt.Errorf("list strategies: %w", err)
	}

	book := &domain.StrategyBook{
		Active:    []*domain.Strategy{},
		Completed: []*domain.Strategy{},
	}
	for _, st := range all {
		if st.Status == domain.StrategyCompleted {
			book.Completed = append(book.Completed, st)
			continue
		}
		book.Active = append(book.Active, st)
	}
	return book, nil
}

// Transactions returns the static transaction set in stored order.
func (s *Service) Transactions() []domain.Transaction {
	if s.transactions == nil {
		return []domain.Transaction{}
	}
	return s.transactions.ListTransactions()
}
