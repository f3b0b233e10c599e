package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/dca-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/dca-agent/internal/domain"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc := NewService(memory.NewStrategyStore(), memory.NewMockTransactionStore(testNow))
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)

	st, err := svc.Create(context.Background(), CreateInput{
		Token:    "ETH",
		Amount:   25,
		Interval: 5,
		Duration: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyID("ETH-USDC-5MIN"), st.ID)
	assert.Equal(t, domain.StrategyActive, st.Status)
	assert.Equal(t, testNow, st.CreatedAt)
	assert.Equal(t, testNow.Add(5*time.Minute), st.NextExecution)
	assert.Zero(t, st.Executions)
	assert.Zero(t, st.TotalInvested)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	valid := CreateInput{Token: "ETH", Amount: 25, Interval: 5, Duration: 60}

	tests := []struct {
		name  string
		input func(in CreateInput) CreateInput
	}{
		{"missing token", func(in CreateInput) CreateInput { in.Token = " "; return in }},
		{"zero amount", func(in CreateInput) CreateInput { in.Amount = 0; return in }},
		{"negative interval", func(in CreateInput) CreateInput { in.Interval = -5; return in }},
		{"zero duration", func(in CreateInput) CreateInput { in.Duration = 0; return in }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input(valid))
			require.ErrorIs(t, err, domain.ErrInvalidStrategy)
		})
	}

	book, err := svc.Book(context.Background())
	require.NoError(t, err)
	assert.Empty(t, book.Active)
}

func TestBookGroupsByStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	book, err := svc.Book(ctx)
	require.NoError(t, err)
	assert.NotNil(t, book.Active)
	assert.NotNil(t, book.Completed)

	_, err = svc.Create(ctx, CreateInput{Token: "ARB", Amount: 10, Interval: 10, Duration: 120})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Token: "ETH", Amount: 25, Interval: 5, Duration: 60})
	require.NoError(t, err)

	book, err = svc.Book(ctx)
	require.NoError(t, err)
	require.Len(t, book.Active, 2)
	assert.Equal(t, domain.StrategyID("ARB-USDC-10MIN"), book.Active[0].ID)
	assert.Equal(t, domain.StrategyID("ETH-USDC-5MIN"), book.Active[1].ID)
	assert.Empty(t, book.Completed)
	assert.Zero(t, book.TotalVolume)
}

func TestTransactions(t *testing.T) {
	assert.Len(t, newTestService(t).Transactions(), 2)
	assert.Empty(t, NewService(memory.NewStrategyStore(), nil).Transactions())
}
