package backtest

import (
	"testing"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DecodeTestSuite struct {
	suite.Suite
}

func TestDecodeSuite(t *testing.T) {
	suite.Run(t, new(DecodeTestSuite))
}

func (suite *DecodeTestSuite) TestWellFormed() {
	response, err := DecodeOracleResponse([]byte(`{
		"trades": [
			{"type": "BUY", "entryIndex": 2, "exitIndex": 5, "entryPrice": 100, "exitPrice": 110, "profit": 10}
		],
		"metrics": {"winRate": 100, "netProfit": 10, "profitFactor": 2.5, "maxDrawdown": 1.2}
	}`))
	suite.Require().NoError(err)

	suite.Require().Len(response.Trades, 1)
	trade := response.Trades[0]
	suite.Equal(types.TradeTypeBuy, trade.Type.Unwrap())
	suite.Equal(2, trade.EntryIndex.Unwrap())
	suite.Equal(5, trade.ExitIndex.Unwrap())
	suite.Equal(100.0, trade.EntryPrice.Unwrap())
	suite.Equal(110.0, trade.ExitPrice.Unwrap())
	suite.Equal(10.0, trade.Profit.Unwrap())

	suite.Equal(100.0, response.Metrics.WinRate.Unwrap())
	suite.Equal(2.5, response.Metrics.ProfitFactor.Unwrap())
	suite.Equal(1.2, response.Metrics.MaxDrawdown.Unwrap())
}

func (suite *DecodeTestSuite) TestSurroundingTextIsIgnored() {
	response, err := DecodeOracleResponse([]byte("```json\n{\"trades\": [{\"type\": \"sell\", \"entryIndex\": 1, \"exitIndex\": 3}]}\n```"))
	suite.Require().NoError(err)

	suite.Require().Len(response.Trades, 1)
	suite.Equal(types.TradeTypeSell, response.Trades[0].Type.Unwrap())
	suite.True(response.Trades[0].Profit.IsNone())
}

func (suite *DecodeTestSuite) TestMalformedFieldsBecomeNone() {
	response, err := DecodeOracleResponse([]byte(`{
		"trades": [
			{"type": "HOLD", "entryIndex": "3", "exitIndex": 4.5, "entryPrice": "1.2345", "exitPrice": null, "profit": "lots"},
			"not an object",
			{"type": "short", "entryIndex": -1, "exitIndex": 9}
		],
		"metrics": {"winRate": "55%", "netProfit": "abc", "profitFactor": true}
	}`))
	suite.Require().NoError(err)
	suite.Require().Len(response.Trades, 3)

	first := response.Trades[0]
	suite.True(first.Type.IsNone())
	suite.Equal(3, first.EntryIndex.Unwrap())
	suite.True(first.ExitIndex.IsNone())
	suite.Equal(1.2345, first.EntryPrice.Unwrap())
	suite.True(first.ExitPrice.IsNone())
	suite.True(first.Profit.IsNone())

	second := response.Trades[1]
	suite.True(second.Type.IsNone())
	suite.True(second.EntryIndex.IsNone())

	third := response.Trades[2]
	suite.Equal(types.TradeTypeSell, third.Type.Unwrap())
	suite.True(third.EntryIndex.IsNone())
	suite.Equal(9, third.ExitIndex.Unwrap())

	suite.Equal(55.0, response.Metrics.WinRate.Unwrap())
	suite.True(response.Metrics.NetProfit.IsNone())
	suite.True(response.Metrics.ProfitFactor.IsNone())
	suite.True(response.Metrics.MaxDrawdown.IsNone())
}

func (suite *DecodeTestSuite) TestMissingSections() {
	response, err := DecodeOracleResponse([]byte(`{"trades": "none"}`))
	suite.Require().NoError(err)

	suite.NotNil(response.Trades)
	suite.Empty(response.Trades)
	suite.True(response.Metrics.WinRate.IsNone())
}

func (suite *DecodeTestSuite) TestNotJSON() {
	for _, input := range []string{"", "the model refused", "{broken"} {
		_, err := DecodeOracleResponse([]byte(input))
		suite.Error(err, input)
		suite.True(errors.HasCode(err, errors.ErrCodeBacktestDecode), input)
	}
}
