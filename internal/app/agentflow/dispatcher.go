package agentflow

import (
	"context"

	"github.com/PabloGalante/dca-agent/internal/domain"
	"github.com/PabloGalante/dca-agent/internal/observability"
)

// Dispatcher runs classification and response building for one message.
type Dispatcher struct {
	responder *Responder
}

func NewDispatcher(responder *Responder) *Dispatcher {
	return &Dispatcher{responder: responder}
}

// Run classifies text and returns the matching canned reply.
func (d *Dispatcher) Run(ctx context.Context, text string) (domain.Intent, Reply) {
	intent := Classify(text)

	observability.LoggerFromContext(ctx).Debug("message classified",
		"intent", intent,
		"text_len", len(text),
	)

	return intent, d.responder.Build(intent)
}
