// Package series validates and normalizes raw candle data before any
// indicator reads it. Nothing here mutates its input.
package series

import (
	"math"
	"slices"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// Report describes what Normalize changed.
type Report struct {
	Input      int  `json:"input"`
	Output     int  `json:"output"`
	Dropped    int  `json:"dropped"`
	Repaired   int  `json:"repaired"`
	Duplicates int  `json:"duplicates"`
	Reordered  bool `json:"reordered"`
}

// Clean reports whether Normalize returned the input unchanged.
func (r Report) Clean() bool {
	return r.Dropped == 0 && r.Repaired == 0 && r.Duplicates == 0 && !r.Reordered
}

// Normalize returns a copy of raw that satisfies the series invariants:
//   - candles with a non-finite or non-positive price, or a negative volume, are dropped
//   - open/close outside [low, high] widen high/low to cover them (close is never changed)
//   - candles are stably sorted by time
//   - for duplicate timestamps the first candle wins
func Normalize(raw types.CandleSeries) (types.CandleSeries, Report) {
	report := Report{Input: len(raw)}
	out := make(types.CandleSeries, 0, len(raw))

	for _, c := range raw {
		if !pricesUsable(c) {
			report.Dropped++

			continue
		}

		if repaired, changed := widen(c); changed {
			c = repaired
			report.Repaired++
		}

		out = append(out, c)
	}

	if !slices.IsSortedFunc(out, compareTime) {
		report.Reordered = true
		slices.SortStableFunc(out, compareTime)
	}

	deduped := out[:0]
	for i, c := range out {
		if i > 0 && c.Time.Equal(deduped[len(deduped)-1].Time) {
			report.Duplicates++

			continue
		}

		deduped = append(deduped, c)
	}

	report.Output = len(deduped)

	return deduped, report
}

// Validate checks the series invariants without repairing anything.
func Validate(s types.CandleSeries) error {
	for i, c := range s {
		if !pricesUsable(c) {
			return errors.Newf(errors.ErrCodeInvalidCandleSeries, "candle %d has unusable prices", i)
		}

		if c.Low > c.Open || c.Low > c.Close || c.High < c.Open || c.High < c.Close {
			return errors.Newf(errors.ErrCodeInvalidCandleSeries, "candle %d violates low <= open,close <= high", i)
		}

		if i > 0 && !c.Time.After(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidCandleSeries, "candle %d is not strictly after candle %d", i, i-1)
		}
	}

	return nil
}

func pricesUsable(c types.Candle) bool {
	for _, p := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return false
		}
	}

	return !math.IsNaN(c.Volume) && !math.IsInf(c.Volume, 0) && c.Volume >= 0
}

func widen(c types.Candle) (types.Candle, bool) {
	high := max(c.High, c.Open, c.Close)
	low := min(c.Low, c.Open, c.Close)

	if high == c.High && low == c.Low {
		return c, false
	}

	c.High = high
	c.Low = low

	return c, true
}

func compareTime(a, b types.Candle) int {
	return a.Time.Compare(b.Time)
}
