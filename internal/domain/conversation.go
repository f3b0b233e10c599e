package domain

import "math"

// Message is one entry of the chat log (user or agent). Immutable once stored.
type Message struct {
	ID        MessageID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Action is only ever set on agent messages
	Action *Action
}

type ActionType string

const (
	ActionSuggestStrategy  ActionType = "suggest_strategy"
	ActionShowTransactions ActionType = "show_transactions"
)

// Action is a tagged variant: exactly one of Strategy or Transactions is
// populated, according to Type.
type Action struct {
	Type         ActionType
	Strategy     *StrategySuggestion
	Transactions []Transaction
}

// StrategySuggestion is the DCA plan proposed by the agent.
type StrategySuggestion struct {
	Token             string
	AmountPerInterval float64
	IntervalMinutes   int
	DurationMinutes   int
	Venue             string
}

// Executions is how many purchases fit in the suggested duration.
func (s StrategySuggestion) Executions() float64 {
	if s.IntervalMinutes <= 0 {
		return 0
	}
	return float64(s.DurationMinutes) / float64(s.IntervalMinutes)
}

// EstimatedTotal is amount * (duration / interval), rounded to cents.
func (s StrategySuggestion) EstimatedTotal() float64 {
	return math.Round(s.AmountPerInterval*s.Executions()*100) / 100
}

// ChatUpdate is the pair produced by one chat submission.
type ChatUpdate struct {
	UserMessage  *Message
	AgentMessage *Message
}

// Messages returns the pair in log order.
func (u ChatUpdate) Messages() []*Message {
	return []*Message{u.UserMessage, u.AgentMessage}
}
