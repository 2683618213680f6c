package oracle

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
)

type bar struct {
	high, low, close float64
	rsi, ma          float64
}

// viewFromBars builds a view with hand-picked indicator values. NaN marks an
// undefined value.
func viewFromBars(bars []bar) *view.View {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	series := make(types.CandleSeries, len(bars))
	set := indicator.Set{
		RSI: make(indicator.Values, len(bars)),
		MA:  make(indicator.Values, len(bars)),
		MACD: indicator.MACDResult{
			MACD:      make(indicator.Values, len(bars)),
			Signal:    make(indicator.Values, len(bars)),
			Histogram: make(indicator.Values, len(bars)),
		},
	}

	for i, b := range bars {
		series[i] = types.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  b.close,
			High:  b.high,
			Low:   b.low,
			Close: b.close,
		}
		set.RSI[i] = some(b.rsi)
		set.MA[i] = some(b.ma)
		set.MACD.MACD[i] = optional.None[float64]()
		set.MACD.Signal[i] = optional.None[float64]()
		set.MACD.Histogram[i] = optional.None[float64]()
	}

	v, err := view.BuildFromSet(series, set, types.DefaultIndicatorSettings(), len(bars))
	if err != nil {
		panic(err)
	}

	return v
}

func some(value float64) optional.Option[float64] {
	if math.IsNaN(value) {
		return optional.None[float64]()
	}

	return optional.Some(value)
}

func flat(price, rsi, ma float64) bar {
	return bar{high: price + 0.0002, low: price - 0.0002, close: price, rsi: rsi, ma: ma}
}
