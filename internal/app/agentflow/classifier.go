package agentflow

import (
	"strings"

	"github.com/PabloGalante/dca-agent/internal/domain"
)

// rule pairs a predicate over the lower-cased message with the intent it selects.
type rule struct {
	intent domain.Intent
	match  func(text string) bool
}

// Matching is substring based, not tokenized: "history" contains "hi" and
// "show" contains "how". The order of rules below decides those overlaps, so
// it must not be changed.
var rules = []rule{
	{
		intent: domain.IntentCreateStrategy,
		match: func(t string) bool {
			return containsAny(t, "dca", "dollar cost") ||
				(strings.Contains(t, "buy") && containsAny(t, "every", "interval"))
		},
	},
	{
		intent: domain.IntentTransactionHistory,
		match:  func(t string) bool { return containsAny(t, "transaction", "tx", "history") },
	},
	{
		intent: domain.IntentStrategyStatus,
		match:  func(t string) bool { return containsAny(t, "strategy", "status", "active") },
	},
	{
		intent: domain.IntentHelp,
		match:  func(t string) bool { return containsAny(t, "help", "how") },
	},
	{
		intent: domain.IntentGreeting,
		match:  func(t string) bool { return containsAny(t, "hello", "hi", "hey") },
	},
}

// Classify returns the intent of the first matching rule, or IntentUnknown.
// It never fails; empty text is Unknown.
func Classify(text string) domain.Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower) {
			return r.intent
		}
	}
	return domain.IntentUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
