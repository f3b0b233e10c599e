package agentflow

import "github.com/PabloGalante/dca-agent/internal/domain"

// DefaultSuggestion is what the agent proposes for every create-strategy
// message. The figures in the user's text are not parsed.
var DefaultSuggestion = domain.StrategySuggestion{
	Token:             "ETH",
	AmountPerInterval: 25,
	IntervalMinutes:   5,
	DurationMinutes:   60,
	Venue:             "Camelot",
}

const suggestStrategyText = "🤖 I'll help you set up a DCA strategy! I can see you want to automate your purchases. Let me create a strategy for you.\n\n" +
	"Based on your message, I suggest:\n" +
	"• Token: ETH\n" +
	"• Amount: $25 per interval\n" +
	"• Interval: 5 minutes\n" +
	"• Duration: 1 hour\n" +
	"• DEX: Camelot on Arbitrum\n\n" +
	"Should I create this strategy?"

const transactionsHeader = "📊 Here are your recent DCA transactions:\n\n"

// Describes one hardcoded example strategy; created strategies are not reflected.
const strategyStatusText = "📈 Active Strategies:\n\n" +
	"• ETH-USDC-5MIN: Running (2/12 executions)\n" +
	"• Next execution in: 3m 45s\n" +
	"• Total invested: $46.77\n" +
	"• Current value: $48.23 (+3.1%)\n\n" +
	"Would you like to modify or create a new strategy?"

const helpText = "🚀 DCA Agent Help:\n\n" +
	"• Say 'create DCA for ETH every 5 minutes' to start\n" +
	"• Ask 'show my transactions' for history\n" +
	"• Say 'strategy status' for active strategies\n" +
	"• Use 'stop strategy [name]' to pause\n\n" +
	"I can help you automate crypto purchases on Arbitrum using Camelot DEX!"

const greetingText = "👋 Hey there! I'm your DCA (Dollar Cost Averaging) agent. I help you automate crypto purchases on Arbitrum using Camelot DEX.\n\n" +
	"Just tell me what you'd like to buy and how often - for example: 'Buy $20 of ETH every 5 minutes for 1 hour'"

const clarifyText = "🤖 I understand you want to set up automated trading. Could you tell me:\n\n" +
	"1. Which token? (ETH, ARB, USDC, etc.)\n" +
	"2. How much per purchase?\n" +
	"3. How often? (every 5 minutes, 10 minutes, etc.)\n" +
	"4. For how long?\n\n" +
	"Example: 'Buy $25 of ETH every 5 minutes for 1 hour'"
