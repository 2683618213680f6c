package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

type Platform string

const (
	PlatformMT4 Platform = "MT4"
	PlatformMT5 Platform = "MT5"
)

// Language returns the source language generated for the platform.
func (p Platform) Language() string {
	if p == PlatformMT5 {
		return "MQL5"
	}

	return "MQL4"
}

type Timeframe string

const (
	TimeframeM1  Timeframe = "M1"
	TimeframeM5  Timeframe = "M5"
	TimeframeM15 Timeframe = "M15"
	TimeframeM30 Timeframe = "M30"
	TimeframeH1  Timeframe = "H1"
	TimeframeH4  Timeframe = "H4"
	TimeframeD1  Timeframe = "D1"
)

// StrategyConfig is a user strategy: what to trade, how to size it and the
// natural-language logic handed to the oracles.
type StrategyConfig struct {
	Name        string            `json:"name" yaml:"name" jsonschema:"title=Name" validate:"required"`
	Category    string            `json:"category" yaml:"category" jsonschema:"title=Category,description=Trading style such as Scalping or Swing"`
	Platform    Platform          `json:"platform" yaml:"platform" jsonschema:"title=Platform,enum=MT4,enum=MT5" validate:"oneof=MT4 MT5"`
	Symbol      string            `json:"symbol" yaml:"symbol" jsonschema:"title=Symbol" validate:"required"`
	Timeframe   Timeframe         `json:"timeframe" yaml:"timeframe" jsonschema:"title=Timeframe,enum=M1,enum=M5,enum=M15,enum=M30,enum=H1,enum=H4,enum=D1" validate:"oneof=M1 M5 M15 M30 H1 H4 D1"`
	LotSize     float64           `json:"lotSize" yaml:"lot_size" jsonschema:"title=Lot Size" validate:"gt=0"`
	StopLoss    float64           `json:"stopLoss" yaml:"stop_loss" jsonschema:"title=Stop Loss,description=Stop loss in pips" validate:"gte=0"`
	TakeProfit  float64           `json:"takeProfit" yaml:"take_profit" jsonschema:"title=Take Profit,description=Take profit in pips" validate:"gte=0"`
	Description string            `json:"description" yaml:"description" jsonschema:"title=Description,description=Strategy logic in natural language"`
	Signal      string            `json:"signal,omitempty" yaml:"signal,omitempty" jsonschema:"title=Direction Bias"`
	Indicators  IndicatorSettings `json:"indicators" yaml:"indicators"`
}

// Validate checks required fields and the embedded indicator settings.
func (c StrategyConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStrategy, "invalid strategy config", err)
	}

	return nil
}

// Risk returns the risk parameters of the strategy.
func (c StrategyConfig) Risk() RiskParams {
	return RiskParams{StopLoss: c.StopLoss, TakeProfit: c.TakeProfit}
}

// RiskParams are stop loss and take profit in pips. They label prompts and
// drive the rule-based evaluator; indicator math never reads them.
type RiskParams struct {
	StopLoss   float64 `json:"stopLoss" yaml:"stop_loss"`
	TakeProfit float64 `json:"takeProfit" yaml:"take_profit"`
}

// GeneratedBot is platform source code produced by a code generator.
type GeneratedBot struct {
	Code        string `json:"code" jsonschema:"description=The full source code of the Expert Advisor"`
	Explanation string `json:"explanation" jsonschema:"description=A brief summary of how the bot works and any setup instructions"`
}

// StrategyDraft is the partial strategy inferred from a chart image.
type StrategyDraft struct {
	Category    string            `json:"category"`
	StopLoss    float64           `json:"stopLoss" jsonschema:"description=Stop loss in pips"`
	TakeProfit  float64           `json:"takeProfit" jsonschema:"description=Take profit in pips"`
	Description string            `json:"description" jsonschema:"description=Detailed strategy logic description"`
	Indicators  IndicatorSettings `json:"indicators"`
}

// Apply copies the non-zero draft fields onto cfg.
func (d StrategyDraft) Apply(cfg StrategyConfig) StrategyConfig {
	if d.Category != "" {
		cfg.Category = d.Category
	}

	if d.StopLoss > 0 {
		cfg.StopLoss = d.StopLoss
	}

	if d.TakeProfit > 0 {
		cfg.TakeProfit = d.TakeProfit
	}

	if d.Description != "" {
		cfg.Description = d.Description
	}

	if d.Indicators.Validate() == nil {
		cfg.Indicators = d.Indicators
	}

	return cfg
}

// Ticker is a 24h price snapshot from the ticker feed.
type Ticker struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
}
