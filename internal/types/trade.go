package types

import "github.com/moznion/go-optional"

type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// TradeProposal is a trade suggested by a decision oracle. Every field is
// untrusted and may be absent.
type TradeProposal struct {
	Type       optional.Option[TradeType]
	EntryIndex optional.Option[int]
	ExitIndex  optional.Option[int]
	EntryPrice optional.Option[float64]
	ExitPrice  optional.Option[float64]
	Profit     optional.Option[float64]
}

// MetricHints are the aggregate metrics claimed by a decision oracle.
type MetricHints struct {
	WinRate      optional.Option[float64]
	NetProfit    optional.Option[float64]
	ProfitFactor optional.Option[float64]
	MaxDrawdown  optional.Option[float64]
}

// OracleResponse is the decoded output of a decision oracle.
type OracleResponse struct {
	Trades  []TradeProposal
	Metrics MetricHints
}

// TradeEvent is an accepted, internally consistent trade.
// EntryIndex and ExitIndex are view-local indices.
type TradeEvent struct {
	ID         string    `json:"id" yaml:"id"`
	Type       TradeType `json:"type" yaml:"type"`
	EntryIndex int       `json:"entryIndex" yaml:"entry_index"`
	ExitIndex  int       `json:"exitIndex" yaml:"exit_index"`
	EntryPrice float64   `json:"entryPrice" yaml:"entry_price"`
	ExitPrice  float64   `json:"exitPrice" yaml:"exit_price"`
	Profit     float64   `json:"profit" yaml:"profit"`
	EntryTime  string    `json:"entryTime" yaml:"entry_time"`
	ExitTime   string    `json:"exitTime" yaml:"exit_time"`
	// Reconciled is set when the proposed profit sign contradicted the prices.
	Reconciled bool `json:"reconciled,omitempty" yaml:"reconciled,omitempty"`
}
