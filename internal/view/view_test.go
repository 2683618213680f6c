package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ViewTestSuite struct {
	suite.Suite
	series   types.CandleSeries
	settings types.IndicatorSettings
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewTestSuite))
}

func (suite *ViewTestSuite) SetupTest() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.series = make(types.CandleSeries, 100)

	for i := range suite.series {
		price := 1.1 + float64(i%7)*0.001 + float64(i)*0.0001
		suite.series[i] = types.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  price,
			High:  price + 0.0005,
			Low:   price - 0.0005,
			Close: price,
		}
	}

	suite.settings = types.DefaultIndicatorSettings()
}

func (suite *ViewTestSuite) TestWindowSelectsMostRecentCandles() {
	v, err := Build(suite.series, suite.settings, 60)
	suite.Require().NoError(err)

	suite.Equal(60, v.Len())
	suite.Equal(40, v.Offset())

	first, ok := v.Candle(0)
	suite.True(ok)
	suite.Equal(suite.series[40], first)

	last, ok := v.Candle(59)
	suite.True(ok)
	suite.Equal(suite.series[99], last)

	_, ok = v.Candle(60)
	suite.False(ok)
	_, ok = v.Candle(-1)
	suite.False(ok)
}

func (suite *ViewTestSuite) TestIndicatorsUseFullHistory() {
	v, err := Build(suite.series, suite.settings, 10)
	suite.Require().NoError(err)

	full := indicator.ComputeSet(suite.series, suite.settings)
	for i := 0; i < v.Len(); i++ {
		suite.Equal(full.RSI[90+i], v.RSI(i))
		suite.Equal(full.MA[90+i], v.MA(i))

		macd, signal := v.MACD(i)
		suite.Equal(full.MACD.MACD[90+i], macd)
		suite.Equal(full.MACD.Signal[90+i], signal)
	}

	// a 10 candle window still has values because lookback comes from the full series
	suite.True(v.RSI(0).IsSome())
	macd, signal := v.MACD(0)
	suite.True(macd.IsSome())
	suite.True(signal.IsSome())
}

func (suite *ViewTestSuite) TestWindowLargerThanSeries() {
	short := suite.series[:25]
	v, err := Build(short, suite.settings, 60)
	suite.Require().NoError(err)

	suite.Equal(25, v.Len())
	suite.Equal(0, v.Offset())
	suite.Equal(short, v.Candles())
}

func (suite *ViewTestSuite) TestInvalidWindow() {
	_, err := Build(suite.series, suite.settings, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *ViewTestSuite) TestMisalignedSet() {
	set := indicator.ComputeSet(suite.series[:50], suite.settings)

	_, err := BuildFromSet(suite.series, set, suite.settings, 20)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidCandleSeries))
}

func (suite *ViewTestSuite) TestEmptySeries() {
	v, err := Build(nil, suite.settings, 60)
	suite.Require().NoError(err)

	suite.Equal(0, v.Len())
	suite.Equal("", v.Text())
	suite.Empty(v.Rows())
}

func (suite *ViewTestSuite) TestCandlesIsACopy() {
	v, err := Build(suite.series, suite.settings, 5)
	suite.Require().NoError(err)

	candles := v.Candles()
	candles[0].Close = 999

	first, _ := v.Candle(0)
	suite.NotEqual(999.0, first.Close)
	suite.NotEqual(999.0, suite.series[95].Close)
}

func (suite *ViewTestSuite) TestTextFormat() {
	v, err := Build(suite.series, suite.settings, 60)
	suite.Require().NoError(err)

	lines := strings.Split(v.Text(), "\n")
	suite.Len(lines, 60)
	suite.True(strings.HasPrefix(lines[0], "Idx:0 T:2024-03-02T16:00:00Z Close:"))
	suite.True(strings.HasPrefix(lines[59], "Idx:59 "))

	for _, line := range lines {
		suite.Contains(line, " RSI:")
		suite.Contains(line, " MA:")
		suite.Contains(line, " MACD:")
	}
}

func (suite *ViewTestSuite) TestTextMarksUndefinedValues() {
	v, err := Build(suite.series[:10], suite.settings, 60)
	suite.Require().NoError(err)

	lines := strings.Split(v.Text(), "\n")
	suite.Equal(
		"Idx:0 T:2024-03-01T00:00:00Z Close:1.1 High:1.1005 Low:1.0995 RSI:N/A MA:N/A MACD:N/A",
		lines[0],
	)
}

func (suite *ViewTestSuite) TestTextRounding() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := types.CandleSeries{}
	for i := 0; i < 4; i++ {
		series = append(series, types.Candle{
			Time:  start.Add(time.Duration(i) * time.Minute),
			Open:  1.123456789,
			High:  1.123456789 + float64(i),
			Low:   1.123456789,
			Close: 1.123456789 + float64(i),
		})
	}

	settings := suite.settings
	settings.RSIPeriod = 2
	settings.MAPeriod = 3
	settings.MAType = types.MATypeSMA

	v, err := Build(series, settings, 4)
	suite.Require().NoError(err)

	lines := strings.Split(v.Text(), "\n")
	suite.Equal(
		"Idx:3 T:2024-01-01T00:03:00Z Close:4.12346 High:4.12346 Low:1.12346 RSI:100 MA:3.12346 MACD:N/A",
		lines[3],
	)
}

func (suite *ViewTestSuite) TestJSONForm() {
	v, err := Build(suite.series[:30], suite.settings, 5)
	suite.Require().NoError(err)

	data, err := json.Marshal(v)
	suite.Require().NoError(err)

	var decoded struct {
		Offset int   `json:"offset"`
		Rows   []Row `json:"rows"`
	}
	suite.Require().NoError(json.Unmarshal(data, &decoded))

	suite.Equal(25, decoded.Offset)
	suite.Len(decoded.Rows, 5)
	suite.Equal(0, decoded.Rows[0].Index)
	suite.NotNil(decoded.Rows[0].RSI)
	suite.NotNil(decoded.Rows[0].MACD)
	suite.Nil(decoded.Rows[0].Signal)
}
