package oracle

import (
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/utils"
)

// decisionTrade and decisionResponse document the shape requested from the
// decision oracle. Decoding never uses them; responses go through the lenient
// backtest decoder.
type decisionTrade struct {
	Type       string  `json:"type" jsonschema:"enum=BUY,enum=SELL"`
	EntryIndex int     `json:"entryIndex" jsonschema:"description=Index from the provided list"`
	ExitIndex  int     `json:"exitIndex" jsonschema:"description=Index from the provided list. Must be greater than entryIndex"`
	EntryPrice float64 `json:"entryPrice"`
	ExitPrice  float64 `json:"exitPrice"`
	Profit     float64 `json:"profit" jsonschema:"description=Profit in pips. Positive for a win and negative for a loss"`
}

type decisionMetrics struct {
	WinRate      float64 `json:"winRate" jsonschema:"minimum=0,maximum=100"`
	NetProfit    float64 `json:"netProfit"`
	ProfitFactor float64 `json:"profitFactor"`
	MaxDrawdown  float64 `json:"maxDrawdown"`
}

type decisionResponse struct {
	Trades  []decisionTrade `json:"trades"`
	Metrics decisionMetrics `json:"metrics"`
}

// DecisionSchema returns the JSON schema of a decision oracle response.
func DecisionSchema() (string, error) {
	return utils.ToJSONSchema(decisionResponse{})
}

// BotSchema returns the JSON schema of a generated bot.
func BotSchema() (string, error) {
	return utils.ToJSONSchema(types.GeneratedBot{})
}

// DraftSchema returns the JSON schema of a chart analysis draft.
func DraftSchema() (string, error) {
	return utils.ToJSONSchema(types.StrategyDraft{})
}

// StrategySchema returns the JSON schema of a strategy configuration.
func StrategySchema() (string, error) {
	return utils.ToJSONSchema(types.StrategyConfig{})
}
