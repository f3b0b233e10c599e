package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategySuggestionEstimatedTotal(t *testing.T) {
	tests := []struct {
		name string
		s    StrategySuggestion
		want float64
	}{
		{"default", StrategySuggestion{AmountPerInterval: 25, IntervalMinutes: 5, DurationMinutes: 60}, 300},
		{"fractional executions", StrategySuggestion{AmountPerInterval: 10, IntervalMinutes: 7, DurationMinutes: 60}, 85.71},
		{"zero interval", StrategySuggestion{AmountPerInterval: 10, DurationMinutes: 60}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.EstimatedTotal())
		})
	}
}

func TestChatUpdateMessagesOrder(t *testing.T) {
	user := &Message{ID: "u", Author: RoleUser}
	agent := &Message{ID: "a", Author: RoleAgent}

	msgs := ChatUpdate{UserMessage: user, AgentMessage: agent}.Messages()

	assert.Equal(t, []*Message{user, agent}, msgs)
}
