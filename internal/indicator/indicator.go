// Package indicator computes technical indicators over whole candle series.
//
// Every output has the same length as its input and position i of an output
// corresponds to position i of the series. A position whose lookback window is
// not yet available is undefined (optional.None), which is a legitimate value
// and never an error.
package indicator

import (
	"encoding/json"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

// Values is an indicator output aligned with its source series.
type Values []optional.Option[float64]

// Output holds the named lines produced by one indicator, e.g. "macd" and "signal".
type Output map[string]Values

// Indicator is a configurable, name-addressed indicator.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters
	Config(params ...any) error
	// Compute evaluates the indicator over the whole series
	Compute(series types.CandleSeries) Output
}

func undefined(n int) Values {
	out := make(Values, n)
	for i := range out {
		out[i] = optional.None[float64]()
	}

	return out
}

// At returns the value at i, or None when i is out of range.
func (v Values) At(i int) optional.Option[float64] {
	if i < 0 || i >= len(v) {
		return optional.None[float64]()
	}

	return v[i]
}

// FirstDefined returns the first defined index, or -1.
func (v Values) FirstDefined() int {
	for i, value := range v {
		if value.IsSome() {
			return i
		}
	}

	return -1
}

// Pointers converts the values to nil-for-undefined pointers.
func (v Values) Pointers() []*float64 {
	out := make([]*float64, len(v))

	for i, value := range v {
		if value.IsSome() {
			f := value.Unwrap()
			out[i] = &f
		}
	}

	return out
}

// MarshalJSON encodes undefined values as null.
func (v Values) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Pointers())
}
