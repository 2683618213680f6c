package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

type IndicatorType string

const (
	IndicatorTypeSMA  IndicatorType = "sma"
	IndicatorTypeEMA  IndicatorType = "ema"
	IndicatorTypeRSI  IndicatorType = "rsi"
	IndicatorTypeMACD IndicatorType = "macd"
)

// MAType selects the moving average used for the MA column.
type MAType string

const (
	MATypeSMA MAType = "SMA"
	MATypeEMA MAType = "EMA"
)

// IndicatorSettings configures one backtest run. RSIOverbought and RSIOversold
// only label prompts and drive the rule-based evaluator; they never enter the math.
type IndicatorSettings struct {
	RSIPeriod     int     `json:"rsiPeriod" yaml:"rsi_period" jsonschema:"title=RSI Period,default=14" validate:"gt=0"`
	RSIOverbought float64 `json:"rsiOverbought" yaml:"rsi_overbought" jsonschema:"title=RSI Overbought,default=70" validate:"gte=0,lte=100"`
	RSIOversold   float64 `json:"rsiOversold" yaml:"rsi_oversold" jsonschema:"title=RSI Oversold,default=30" validate:"gte=0,lte=100"`
	MAPeriod      int     `json:"maPeriod" yaml:"ma_period" jsonschema:"title=MA Period,default=20" validate:"gt=0"`
	MAType        MAType  `json:"maType" yaml:"ma_type" jsonschema:"title=MA Type,enum=SMA,enum=EMA" validate:"oneof=SMA EMA"`
	MACDFast      int     `json:"macdFast" yaml:"macd_fast" jsonschema:"title=MACD Fast,default=12" validate:"gt=0"`
	MACDSlow      int     `json:"macdSlow" yaml:"macd_slow" jsonschema:"title=MACD Slow,default=26" validate:"gt=0"`
	MACDSignal    int     `json:"macdSignal" yaml:"macd_signal" jsonschema:"title=MACD Signal,default=9" validate:"gt=0"`
}

// DefaultIndicatorSettings returns RSI 14 (70/30), EMA 20 and MACD 12/26/9.
func DefaultIndicatorSettings() IndicatorSettings {
	return IndicatorSettings{
		RSIPeriod:     14,
		RSIOverbought: 70,
		RSIOversold:   30,
		MAPeriod:      20,
		MAType:        MATypeEMA,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
	}
}

// Validate checks that every period is positive and the MA type is known.
// macdSlow > macdFast is a convention and is not enforced.
func (s IndicatorSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSettings, "invalid indicator settings", err)
	}

	return nil
}
