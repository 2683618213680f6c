package types

import "time"

// Candle is one OHLCV sample for a fixed time bucket.
type Candle struct {
	Time   time.Time `json:"time" yaml:"time"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume float64   `json:"volume,omitempty" yaml:"volume,omitempty"`
}

// Label is the display form of the candle time used in views and equity curves.
func (c Candle) Label() string {
	return c.Time.UTC().Format(time.RFC3339)
}

// CandleSeries is ordered oldest first. Index 0 is the oldest candle.
type CandleSeries []Candle

// Closes returns the close prices in series order.
func (s CandleSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, c := range s {
		closes[i] = c.Close
	}

	return closes
}

// Tail returns a copy of the most recent n candles (all of them when n >= len).
func (s CandleSeries) Tail(n int) CandleSeries {
	if n < 0 {
		n = 0
	}

	start := max(len(s)-n, 0)
	out := make(CandleSeries, len(s)-start)
	copy(out, s[start:])

	return out
}

// Clone returns a copy that shares no backing array with s.
func (s CandleSeries) Clone() CandleSeries {
	out := make(CandleSeries, len(s))
	copy(out, s)

	return out
}
