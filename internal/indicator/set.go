package indicator

import "github.com/rxtech-lab/argo-strategy-lab/internal/types"

// Set is every indicator a backtest run needs, computed over the full series.
type Set struct {
	RSI  Values     `json:"rsi"`
	MA   Values     `json:"ma"`
	MACD MACDResult `json:"macd"`
}

// ComputeSet evaluates RSI, the configured moving average and MACD. The series
// is only read.
func ComputeSet(series types.CandleSeries, settings types.IndicatorSettings) Set {
	return Set{
		RSI:  RSI(series, settings.RSIPeriod),
		MA:   MovingAverage(series, settings.MAPeriod, settings.MAType),
		MACD: MACD(series, settings.MACDFast, settings.MACDSlow, settings.MACDSignal),
	}
}
