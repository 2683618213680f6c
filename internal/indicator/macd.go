package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// MACDResult holds the three MACD lines, each aligned with the source series.
type MACDResult struct {
	MACD      Values `json:"macd"`
	Signal    Values `json:"signal"`
	Histogram Values `json:"histogram"`
}

// MACD computes fast EMA minus slow EMA wherever both are defined. The signal
// line is the EMA of the defined suffix of the MACD line, left-padded back into
// the original index space, so its first defined index trails the MACD line's
// by signal-1.
func MACD(series types.CandleSeries, fast, slow, signal int) MACDResult {
	closes := series.Closes()
	fastEMA := EMAValues(closes, fast)
	slowEMA := EMAValues(closes, slow)

	macdLine := undefined(len(series))
	for i := range macdLine {
		if fastEMA[i].IsSome() && slowEMA[i].IsSome() {
			macdLine[i] = optional.Some(fastEMA[i].Unwrap() - slowEMA[i].Unwrap())
		}
	}

	result := MACDResult{
		MACD:      macdLine,
		Signal:    undefined(len(series)),
		Histogram: undefined(len(series)),
	}

	first := macdLine.FirstDefined()
	if first == -1 {
		return result
	}

	suffix := make([]float64, 0, len(macdLine)-first)
	for _, v := range macdLine[first:] {
		suffix = append(suffix, v.Unwrap())
	}

	signalSuffix := EMAValues(suffix, signal)
	copy(result.Signal[first:], signalSuffix)

	for i := first; i < len(series); i++ {
		if result.Signal[i].IsSome() {
			result.Histogram[i] = optional.Some(macdLine[i].Unwrap() - result.Signal[i].Unwrap())
		}
	}

	return result
}

// MACDIndicator is the name-addressed MACD.
type MACDIndicator struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a MACD indicator with the 12/26/9 defaults.
func NewMACD() Indicator {
	return &MACDIndicator{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

func (m *MACDIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config expects fastPeriod, slowPeriod and signalPeriod.
func (m *MACDIndicator) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

func (m *MACDIndicator) Compute(series types.CandleSeries) Output {
	result := MACD(series, m.fastPeriod, m.slowPeriod, m.signalPeriod)

	return Output{
		"macd":      result.MACD,
		"signal":    result.Signal,
		"histogram": result.Histogram,
	}
}
