package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// EMA returns the exponential moving average of closes.
func EMA(series types.CandleSeries, period int) Values {
	return EMAValues(series.Closes(), period)
}

// EMAValues returns the exponential moving average of values.
//
// The value at period-1 is seeded with the SMA of the first period values;
// after that ema[i] = (value[i] - ema[i-1]) * k + ema[i-1] with k = 2/(period+1).
// Seeding with the first value instead would give different numbers.
func EMAValues(values []float64, period int) Values {
	out := undefined(len(values))
	if period <= 0 || period > len(values) {
		return out
	}

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}

	prev := seed / float64(period)
	out[period-1] = optional.Some(prev)

	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = optional.Some(prev)
	}

	return out
}

// EMAIndicator is the name-addressed exponential moving average.
type EMAIndicator struct {
	period int
}

// NewEMA creates an EMA indicator with a default period of 20.
func NewEMA() Indicator {
	return &EMAIndicator{
		period: 20,
	}
}

func (e *EMAIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config expects one parameter: period (int).
func (e *EMAIndicator) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

func (e *EMAIndicator) Compute(series types.CandleSeries) Output {
	return Output{"ema": EMA(series, e.period)}
}
