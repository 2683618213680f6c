// Package view projects a candle series and its indicator values into a
// bounded, re-indexed window that can be embedded in a decision prompt.
package view

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// DefaultWindow is the number of recent candles handed to a decision oracle.
	DefaultWindow = 60

	pricePlaces = 5
	rsiPlaces   = 2
)

// View is the most recent window of a series. Every index it exposes is
// view-local: 0 is the oldest candle of the window.
type View struct {
	candles  types.CandleSeries
	offset   int
	settings types.IndicatorSettings

	rsi       indicator.Values
	ma        indicator.Values
	macd      indicator.Values
	signal    indicator.Values
	histogram indicator.Values
}

// Row is one candle of the view with its indicator values.
type Row struct {
	Index     int      `json:"index"`
	Time      string   `json:"time"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     float64  `json:"close"`
	RSI       *float64 `json:"rsi"`
	MA        *float64 `json:"ma"`
	MACD      *float64 `json:"macd"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// Build computes the indicators over the full series and projects the most
// recent min(window, len(series)) candles.
func Build(series types.CandleSeries, settings types.IndicatorSettings, window int) (*View, error) {
	return BuildFromSet(series, indicator.ComputeSet(series, settings), settings, window)
}

// BuildFromSet projects a window using indicator values already computed over
// the full series. The set must be aligned with series.
func BuildFromSet(series types.CandleSeries, set indicator.Set, settings types.IndicatorSettings, window int) (*View, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "window must be positive, got %d", window)
	}

	n := len(series)
	if len(set.RSI) != n || len(set.MA) != n || len(set.MACD.MACD) != n ||
		len(set.MACD.Signal) != n || len(set.MACD.Histogram) != n {
		return nil, errors.New(errors.ErrCodeInvalidCandleSeries, "indicator values are not aligned with the candle series")
	}

	offset := max(n-window, 0)

	return &View{
		candles:   series.Tail(n - offset),
		offset:    offset,
		settings:  settings,
		rsi:       slice(set.RSI, offset),
		ma:        slice(set.MA, offset),
		macd:      slice(set.MACD.MACD, offset),
		signal:    slice(set.MACD.Signal, offset),
		histogram: slice(set.MACD.Histogram, offset),
	}, nil
}

func slice(values indicator.Values, offset int) indicator.Values {
	out := make(indicator.Values, len(values)-offset)
	copy(out, values[offset:])

	return out
}

// Len is the number of candles in the view.
func (v *View) Len() int {
	return len(v.candles)
}

// Offset is the index in the full series of view row 0.
func (v *View) Offset() int {
	return v.offset
}

func (v *View) Settings() types.IndicatorSettings {
	return v.settings
}

// Candles returns a copy of the windowed candles.
func (v *View) Candles() types.CandleSeries {
	return v.candles.Clone()
}

// Candle returns the candle at a view-local index.
func (v *View) Candle(i int) (types.Candle, bool) {
	if i < 0 || i >= len(v.candles) {
		return types.Candle{}, false
	}

	return v.candles[i], true
}

func (v *View) RSI(i int) optional.Option[float64] {
	return v.rsi.At(i)
}

func (v *View) MA(i int) optional.Option[float64] {
	return v.ma.At(i)
}

// MACD returns the macd line and signal at i.
func (v *View) MACD(i int) (optional.Option[float64], optional.Option[float64]) {
	return v.macd.At(i), v.signal.At(i)
}

// Rows returns the structured form of the view.
func (v *View) Rows() []Row {
	rows := make([]Row, len(v.candles))
	rsi, ma := v.rsi.Pointers(), v.ma.Pointers()
	macd, signal, histogram := v.macd.Pointers(), v.signal.Pointers(), v.histogram.Pointers()

	for i, c := range v.candles {
		rows[i] = Row{
			Index:     i,
			Time:      c.Label(),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			RSI:       rsi[i],
			MA:        ma[i],
			MACD:      macd[i],
			Signal:    signal[i],
			Histogram: histogram[i],
		}
	}

	return rows
}

func (v *View) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Offset   int                     `json:"offset"`
		Settings types.IndicatorSettings `json:"settings"`
		Rows     []Row                   `json:"rows"`
	}{
		Offset:   v.offset,
		Settings: v.settings,
		Rows:     v.Rows(),
	})
}

// Text renders one line per candle:
//
//	Idx:0 T:2024-01-01T00:00:00Z Close:1.1 High:1.2 Low:1 RSI:55.12 MA:1.1 MACD:0.001 Sig:0.0008
//
// Values are rounded here only; the underlying arrays keep full precision.
func (v *View) Text() string {
	var b strings.Builder

	for i, c := range v.candles {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString("Idx:")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" T:")
		b.WriteString(c.Label())
		b.WriteString(" Close:")
		b.WriteString(round(c.Close, pricePlaces))
		b.WriteString(" High:")
		b.WriteString(round(c.High, pricePlaces))
		b.WriteString(" Low:")
		b.WriteString(round(c.Low, pricePlaces))
		b.WriteString(" RSI:")
		b.WriteString(roundOr(v.rsi[i], rsiPlaces))
		b.WriteString(" MA:")
		b.WriteString(roundOr(v.ma[i], pricePlaces))

		if v.macd[i].IsSome() && v.signal[i].IsSome() {
			b.WriteString(" MACD:")
			b.WriteString(round(v.macd[i].Unwrap(), pricePlaces))
			b.WriteString(" Sig:")
			b.WriteString(round(v.signal[i].Unwrap(), pricePlaces))
		} else {
			b.WriteString(" MACD:N/A")
		}
	}

	return b.String()
}

func round(value float64, places int32) string {
	return decimal.NewFromFloat(value).Round(places).String()
}

func roundOr(value optional.Option[float64], places int32) string {
	if value.IsNone() {
		return "N/A"
	}

	return round(value.Unwrap(), places)
}
