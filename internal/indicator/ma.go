package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// SMA returns the simple moving average of closes. Index i < period-1 is
// undefined; every defined value is a direct re-sum of its trailing window.
func SMA(series types.CandleSeries, period int) Values {
	out := undefined(len(series))
	if period <= 0 || period > len(series) {
		return out
	}

	for i := period - 1; i < len(series); i++ {
		sum := 0.0
		for _, c := range series[i-period+1 : i+1] {
			sum += c.Close
		}

		out[i] = optional.Some(sum / float64(period))
	}

	return out
}

// MovingAverage dispatches to SMA or EMA.
func MovingAverage(series types.CandleSeries, period int, maType types.MAType) Values {
	if maType == types.MATypeSMA {
		return SMA(series, period)
	}

	return EMA(series, period)
}

// MA is the name-addressed simple moving average.
type MA struct {
	period int
}

// NewMA creates an SMA indicator with a default period of 20.
func NewMA() Indicator {
	return &MA{
		period: 20,
	}
}

func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config expects one parameter: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

func (m *MA) Compute(series types.CandleSeries) Output {
	return Output{"sma": SMA(series, m.period)}
}
