package main

import (
	"time"

	memstore "github.com/PabloGalante/dca-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/dca-agent/internal/app/agentflow"
	"github.com/PabloGalante/dca-agent/internal/app/conversation"
	"github.com/PabloGalante/dca-agent/internal/app/strategy"
	"github.com/PabloGalante/dca-agent/internal/domain"
)

// services is the in-memory core shared by serve and ask.
type services struct {
	messages   *memstore.MessageStore
	dispatcher *agentflow.Dispatcher
	strategies *strategy.Service
}

func newServices(now time.Time) *services {
	transactions := memstore.NewMockTransactionStore(now)
	responder := agentflow.NewResponder(transactions, time.Local)

	return &services{
		messages:   memstore.NewMessageStore(),
		dispatcher: agentflow.NewDispatcher(responder),
		strategies: strategy.NewService(memstore.NewStrategyStore(), transactions),
	}
}

func (s *services) conversation(notifiers ...domain.ChatNotifier) *conversation.Service {
	return conversation.NewService(s.messages, s.dispatcher, notifiers...)
}
