package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// RSI returns Wilder's relative strength index of closes.
//
// Indices <= period are undefined. The averages are seeded with the simple
// means of gains and losses over steps 1..period and, from index period+1 on,
// smoothed with avg = (avg*(period-1) + current) / period. A zero average loss
// gives 100.
func RSI(series types.CandleSeries, period int) Values {
	out := undefined(len(series))
	if period <= 0 || len(series) <= period {
		return out
	}

	avgGain, avgLoss := 0.0, 0.0

	for i := 1; i <= period; i++ {
		gain, loss := step(series[i-1].Close, series[i].Close)
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(series); i++ {
		gain, loss := step(series[i-1].Close, series[i].Close)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = optional.Some(rsiFrom(avgGain, avgLoss))
	}

	return out
}

func step(prev, current float64) (gain, loss float64) {
	diff := current - prev
	if diff > 0 {
		return diff, 0
	}

	return 0, -diff
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	return 100 - 100/(1+avgGain/avgLoss)
}

// RSIIndicator is the name-addressed RSI.
type RSIIndicator struct {
	period int
}

// NewRSI creates an RSI indicator with a default period of 14.
func NewRSI() Indicator {
	return &RSIIndicator{
		period: 14,
	}
}

func (r *RSIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config expects one parameter: period (int).
func (r *RSIIndicator) Config(params ...any) error {
	if len(params) < 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

func (r *RSIIndicator) Compute(series types.CandleSeries) Output {
	return Output{"rsi": RSI(series, r.period)}
}
