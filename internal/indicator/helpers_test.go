package indicator

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

func seriesFromCloses(closes ...float64) types.CandleSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.CandleSeries, len(closes))

	for i, c := range closes {
		series[i] = types.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c + 0.5,
			Low:   c - 0.5,
			Close: c,
		}
	}

	return series
}

func risingCloses(n int, from float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = from + float64(i)
	}

	return closes
}

func wavyCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/3) + 0.1*float64(i)
	}

	return closes
}
