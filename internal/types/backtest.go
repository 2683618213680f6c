package types

import "time"

// EquityStartLabel is the time label of the first equity curve point.
const EquityStartLabel = "start"

type BacktestMetrics struct {
	TotalTrades   int     `json:"totalTrades" yaml:"total_trades"`
	WinningTrades int     `json:"winningTrades" yaml:"winning_trades"`
	LosingTrades  int     `json:"losingTrades" yaml:"losing_trades"`
	WinRate       float64 `json:"winRate" yaml:"win_rate"`
	NetProfit     float64 `json:"netProfit" yaml:"net_profit"`
	ProfitFactor  float64 `json:"profitFactor" yaml:"profit_factor"`
	MaxDrawdown   float64 `json:"maxDrawdown" yaml:"max_drawdown"`
}

type EquityPoint struct {
	Time    string  `json:"time" yaml:"time"`
	Balance float64 `json:"balance" yaml:"balance"`
}

// BacktestResult is read-only once returned by the assembler.
type BacktestResult struct {
	ID          string          `json:"id" yaml:"id"`
	Symbol      string          `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Strategy    string          `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"created_at"`
	Trades      []TradeEvent    `json:"trades" yaml:"trades"`
	Metrics     BacktestMetrics `json:"metrics" yaml:"metrics"`
	Data        CandleSeries    `json:"data" yaml:"data"`
	EquityCurve []EquityPoint   `json:"equityCurve" yaml:"equity_curve"`
	// Dropped counts proposals rejected for invalid indices or type.
	Dropped int `json:"dropped" yaml:"dropped"`
}
