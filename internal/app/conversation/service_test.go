package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/dca-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/dca-agent/internal/app/agentflow"
	"github.com/PabloGalante/dca-agent/internal/domain"
)

type recordingNotifier struct {
	mu      sync.Mutex
	updates []domain.ChatUpdate
}

func (n *recordingNotifier) NotifyChatUpdate(_ context.Context, u domain.ChatUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, u)
}

type failingLog struct{}

func (failingLog) Append(...*domain.Message) error  { return errors.New("disk full") }
func (failingLog) List() ([]*domain.Message, error) { return nil, errors.New("disk full") }
func (failingLog) Len() int                         { return 0 }

func newTestService(t *testing.T, chatLog domain.ChatLog, notifiers ...domain.ChatNotifier) *Service {
	t.Helper()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	responder := agentflow.NewResponder(memory.NewMockTransactionStore(now), time.UTC)
	svc := NewService(chatLog, agentflow.NewDispatcher(responder), notifiers...)

	seq := 0
	svc.newID = func() domain.MessageID {
		seq++
		return domain.MessageID(fmt.Sprintf("msg-%d", seq))
	}
	svc.now = func() time.Time { return now }
	return svc
}

func TestRecordAppendsPairInOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	svc := newTestService(t, store)

	out, err := svc.Record(ctx, "Hello")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentGreeting, out.Intent)
	assert.Equal(t, domain.RoleUser, out.UserMessage.Author)
	assert.Equal(t, "Hello", out.UserMessage.Text)
	assert.Nil(t, out.UserMessage.Action)
	assert.Equal(t, domain.RoleAgent, out.AgentMessage.Author)
	assert.NotEmpty(t, out.AgentMessage.Text)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Same(t, out.UserMessage, history[0])
	assert.Same(t, out.AgentMessage, history[1])
}

func TestRecordGrowsLogByTwo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	svc := newTestService(t, store)

	for i, text := range []string{"hi", "show my transactions", "", "strategy status"} {
		_, err := svc.Record(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, 2*(i+1), store.Len())
	}

	history, err := svc.History(ctx)
	require.NoError(t, err)
	for i, m := range history {
		if i%2 == 0 {
			assert.Equal(t, domain.RoleUser, m.Author)
		} else {
			assert.Equal(t, domain.RoleAgent, m.Author)
		}
	}
}

func TestRecordAssignsDistinctIDs(t *testing.T) {
	svc := newTestService(t, memory.NewMessageStore())

	out, err := svc.Record(context.Background(), "help")
	require.NoError(t, err)

	assert.Equal(t, domain.MessageID("msg-1"), out.UserMessage.ID)
	assert.Equal(t, domain.MessageID("msg-2"), out.AgentMessage.ID)
}

func TestRecordEmptyTextGetsClarification(t *testing.T) {
	svc := newTestService(t, memory.NewMessageStore())

	out, err := svc.Record(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentUnknown, out.Intent)
	assert.Contains(t, out.AgentMessage.Text, "Could you tell me")
}

func TestRecordNotifiesEveryNotifier(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	svc := newTestService(t, memory.NewMessageStore(), first, nil, second)

	out, err := svc.Record(context.Background(), "dca please")
	require.NoError(t, err)

	for _, n := range []*recordingNotifier{first, second} {
		require.Len(t, n.updates, 1)
		assert.Same(t, out.UserMessage, n.updates[0].UserMessage)
		assert.Same(t, out.AgentMessage, n.updates[0].AgentMessage)
		require.NotNil(t, n.updates[0].AgentMessage.Action)
		assert.Equal(t, domain.ActionSuggestStrategy, n.updates[0].AgentMessage.Action.Type)
	}
}

func TestRecordAppendFailureSkipsNotify(t *testing.T) {
	n := &recordingNotifier{}
	svc := newTestService(t, failingLog{}, n)

	_, err := svc.Record(context.Background(), "hi")
	require.Error(t, err)
	assert.Empty(t, n.updates)

	_, err = svc.History(context.Background())
	require.Error(t, err)
}

func TestRecordConcurrentPairsStayAdjacent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	svc := NewService(store, agentflow.NewDispatcher(agentflow.NewResponder(nil, time.UTC)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Record(ctx, "hello")
		}()
	}
	wg.Wait()

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 40)
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, domain.RoleUser, history[i].Author)
		assert.Equal(t, domain.RoleAgent, history[i+1].Author)
	}
}
