package backtest

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
	"github.com/stretchr/testify/suite"
)

type AssemblerTestSuite struct {
	suite.Suite
	view      *view.View
	assembler *Assembler
}

func TestAssemblerSuite(t *testing.T) {
	suite.Run(t, new(AssemblerTestSuite))
}

func (suite *AssemblerTestSuite) SetupTest() {
	suite.view = suite.buildView(10)
	suite.assembler = NewAssembler(DefaultAssemblerConfig(), logger.NewNopLogger())
}

func (suite *AssemblerTestSuite) buildView(n int) *view.View {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.CandleSeries, n)

	for i := range series {
		price := 100 + float64(i)
		series[i] = types.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  price,
			High:  price + 1,
			Low:   price - 1,
			Close: price,
		}
	}

	v, err := view.Build(series, types.DefaultIndicatorSettings(), n)
	suite.Require().NoError(err)

	return v
}

func proposal(tradeType types.TradeType, entry, exit int, entryPrice, exitPrice, profit float64) types.TradeProposal {
	return types.TradeProposal{
		Type:       optional.Some(tradeType),
		EntryIndex: optional.Some(entry),
		ExitIndex:  optional.Some(exit),
		EntryPrice: optional.Some(entryPrice),
		ExitPrice:  optional.Some(exitPrice),
		Profit:     optional.Some(profit),
	}
}

func (suite *AssemblerTestSuite) TestSingleTrade() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{proposal(types.TradeTypeBuy, 2, 5, 100, 110, 10)},
	})

	suite.Equal(1, result.Metrics.TotalTrades)
	suite.Equal(10.0, result.Metrics.NetProfit)
	suite.Equal(100.0, result.Metrics.WinRate)
	suite.Equal(MaxProfitFactor, result.Metrics.ProfitFactor)
	suite.Equal(0.0, result.Metrics.MaxDrawdown)

	suite.Require().Len(result.EquityCurve, 2)
	suite.Equal(types.EquityPoint{Time: types.EquityStartLabel, Balance: 10000}, result.EquityCurve[0])
	suite.Equal(types.EquityPoint{Time: "2024-01-01T05:00:00Z", Balance: 10100}, result.EquityCurve[1])

	suite.Require().Len(result.Trades, 1)
	trade := result.Trades[0]
	suite.Equal("trade-0", trade.ID)
	suite.Equal("2024-01-01T02:00:00Z", trade.EntryTime)
	suite.Equal("2024-01-01T05:00:00Z", trade.ExitTime)
	suite.False(trade.Reconciled)

	suite.NotEmpty(result.ID)
	suite.Len(result.Data, 10)
}

func (suite *AssemblerTestSuite) TestEmptyProposals() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{})

	suite.Equal(0, result.Metrics.TotalTrades)
	suite.Empty(result.Trades)
	suite.NotNil(result.Trades)
	suite.Equal([]types.EquityPoint{{Time: types.EquityStartLabel, Balance: DefaultStartingBalance}}, result.EquityCurve)
	suite.Equal(0.0, result.Metrics.ProfitFactor)
	suite.Equal(0.0, result.Metrics.WinRate)
}

func (suite *AssemblerTestSuite) TestInvalidProposalsAreDropped() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{
			proposal(types.TradeTypeBuy, 5, 5, 100, 101, 1),   // exit == entry
			proposal(types.TradeTypeBuy, 6, 3, 100, 101, 1),   // exit before entry
			proposal(types.TradeTypeBuy, 8, 10, 100, 101, 1),  // exit outside view
			proposal(types.TradeTypeSell, -1, 2, 100, 99, 1),  // negative entry
			proposal(types.TradeTypeSell, 0, 9, 109, 100, 9),  // valid
			{EntryIndex: optional.Some(1), ExitIndex: optional.Some(2)}, // no type
			{Type: optional.Some(types.TradeTypeBuy), ExitIndex: optional.Some(2)},
		},
	})

	suite.Equal(6, result.Dropped)
	suite.Equal(1, result.Metrics.TotalTrades)
	suite.Require().Len(result.Trades, 1)
	suite.Equal("trade-0", result.Trades[0].ID)

	for _, trade := range result.Trades {
		suite.Less(trade.EntryIndex, trade.ExitIndex)
		suite.GreaterOrEqual(trade.EntryIndex, 0)
		suite.Less(trade.ExitIndex, suite.view.Len())
	}
}

func (suite *AssemblerTestSuite) TestTotalTradesIgnoresHints() {
	assembler := NewAssembler(AssemblerConfig{MetricsPolicy: MetricsPolicyHinted}, nil)

	result := assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{
			proposal(types.TradeTypeBuy, 1, 2, 101, 102, 10),
			proposal(types.TradeTypeBuy, 3, 20, 103, 104, 10),
		},
		Metrics: types.MetricHints{
			WinRate:      optional.Some(80.0),
			NetProfit:    optional.Some(55.0),
			ProfitFactor: optional.Some(3.5),
		},
	})

	suite.Equal(1, result.Metrics.TotalTrades)
	suite.Equal(80.0, result.Metrics.WinRate)
	suite.Equal(55.0, result.Metrics.NetProfit)
	suite.Equal(3.5, result.Metrics.ProfitFactor)
	// missing hint falls back to the derived value
	suite.Equal(0.0, result.Metrics.MaxDrawdown)
}

func (suite *AssemblerTestSuite) TestDerivedPolicyIgnoresHints() {
	assembler := NewAssembler(AssemblerConfig{MetricsPolicy: MetricsPolicyDerived}, nil)

	result := assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{proposal(types.TradeTypeBuy, 2, 5, 100, 110, 10)},
		Metrics: types.MetricHints{
			NetProfit: optional.Some(-400.0),
			WinRate:   optional.Some(0.0),
		},
	})

	suite.Equal(10.0, result.Metrics.NetProfit)
	suite.Equal(100.0, result.Metrics.WinRate)
}

func (suite *AssemblerTestSuite) TestHintsAreClamped() {
	assembler := NewAssembler(AssemblerConfig{MetricsPolicy: MetricsPolicyHinted}, nil)

	result := assembler.Assemble(suite.view, types.OracleResponse{
		Metrics: types.MetricHints{
			WinRate:      optional.Some(140.0),
			ProfitFactor: optional.Some(1e9),
			MaxDrawdown:  optional.Some(-12.5),
		},
	})

	suite.Equal(100.0, result.Metrics.WinRate)
	suite.Equal(MaxProfitFactor, result.Metrics.ProfitFactor)
	suite.Equal(12.5, result.Metrics.MaxDrawdown)
}

func (suite *AssemblerTestSuite) TestProfitSignIsReconciled() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{
			proposal(types.TradeTypeBuy, 1, 4, 100, 90, 15),   // loss reported as win
			proposal(types.TradeTypeSell, 2, 6, 100, 90, -8),  // win reported as loss
			proposal(types.TradeTypeSell, 3, 7, 100, 100, 4),  // flat trade
			proposal(types.TradeTypeSell, 4, 8, 100, 110, -6), // consistent loss
		},
	})

	suite.Require().Len(result.Trades, 4)
	suite.Equal(-15.0, result.Trades[0].Profit)
	suite.True(result.Trades[0].Reconciled)
	suite.Equal(8.0, result.Trades[1].Profit)
	suite.True(result.Trades[1].Reconciled)
	suite.Equal(0.0, result.Trades[2].Profit)
	suite.True(result.Trades[2].Reconciled)
	suite.Equal(-6.0, result.Trades[3].Profit)
	suite.False(result.Trades[3].Reconciled)

	suite.Equal(1, result.Metrics.WinningTrades)
	suite.Equal(2, result.Metrics.LosingTrades)
	suite.Equal(-13.0, result.Metrics.NetProfit)
	suite.InDelta(8.0/21.0, result.Metrics.ProfitFactor, 1e-12)
}

func (suite *AssemblerTestSuite) TestMissingPricesUseCandles() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{{
			Type:       optional.Some(types.TradeTypeSell),
			EntryIndex: optional.Some(6),
			ExitIndex:  optional.Some(8),
			EntryPrice: optional.Some(-1.0),
		}},
	})

	suite.Require().Len(result.Trades, 1)
	trade := result.Trades[0]
	suite.Equal(106.0, trade.EntryPrice)
	suite.Equal(108.0, trade.ExitPrice)
	suite.Equal(0.0, trade.Profit)
	suite.False(trade.Reconciled)
}

func (suite *AssemblerTestSuite) TestMissingProfitDefaultsToZero() {
	withoutProfit := proposal(types.TradeTypeBuy, 3, 5, 103, 105, 0)
	withoutProfit.Profit = optional.None[float64]()

	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{
			proposal(types.TradeTypeBuy, 1, 3, 101, 103, 20),
			withoutProfit,
		},
	})

	suite.Require().Len(result.Trades, 2)
	suite.Equal(20.0, result.Trades[0].Profit)
	suite.Equal(0.0, result.Trades[1].Profit)
	suite.False(result.Trades[1].Reconciled)

	suite.Equal(20.0, result.Metrics.NetProfit)
	suite.Equal(1, result.Metrics.WinningTrades)
	suite.Equal(0, result.Metrics.LosingTrades)
	suite.Equal([]types.EquityPoint{
		{Time: types.EquityStartLabel, Balance: 10000},
		{Time: "2024-01-01T03:00:00Z", Balance: 10200},
		{Time: "2024-01-01T05:00:00Z", Balance: 10200},
	}, result.EquityCurve)
}

func (suite *AssemblerTestSuite) TestEquityCurveFollowsExitOrder() {
	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{
			proposal(types.TradeTypeBuy, 5, 9, 105, 109, 4),
			proposal(types.TradeTypeBuy, 0, 3, 100, 103, 3),
			proposal(types.TradeTypeSell, 1, 3, 101, 103, -2),
		},
	})

	suite.Equal([]string{"trade-0", "trade-1", "trade-2"}, []string{result.Trades[0].ID, result.Trades[1].ID, result.Trades[2].ID})
	suite.Equal([]types.EquityPoint{
		{Time: types.EquityStartLabel, Balance: 10000},
		{Time: "2024-01-01T03:00:00Z", Balance: 10030},
		{Time: "2024-01-01T03:00:00Z", Balance: 10010},
		{Time: "2024-01-01T09:00:00Z", Balance: 10050},
	}, result.EquityCurve)

	for i := 1; i < len(result.EquityCurve)-1; i++ {
		suite.LessOrEqual(result.EquityCurve[i].Time, result.EquityCurve[i+1].Time)
	}

	suite.InDelta(20.0/10030.0*100, result.Metrics.MaxDrawdown, 1e-12)
}

func (suite *AssemblerTestSuite) TestCustomBalanceAndMultiplier() {
	assembler := NewAssembler(AssemblerConfig{StartingBalance: 500, ProfitMultiplier: 1}, nil)

	result := assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{proposal(types.TradeTypeBuy, 2, 5, 100, 110, 10)},
	})

	suite.Equal(500.0, result.EquityCurve[0].Balance)
	suite.Equal(510.0, result.EquityCurve[1].Balance)
	suite.Equal(MetricsPolicyHinted, assembler.Config().MetricsPolicy)
}

func (suite *AssemblerTestSuite) TestDefaultPolicyKeepsHints() {
	suite.Equal(MetricsPolicyHinted, DefaultAssemblerConfig().MetricsPolicy)

	result := suite.assembler.Assemble(suite.view, types.OracleResponse{
		Trades: []types.TradeProposal{proposal(types.TradeTypeBuy, 2, 5, 100, 110, 10)},
		Metrics: types.MetricHints{
			NetProfit: optional.Some(12.5),
		},
	})

	suite.Equal(1, result.Metrics.TotalTrades)
	suite.Equal(12.5, result.Metrics.NetProfit)
	suite.Equal(100.0, result.Metrics.WinRate)
}

func (suite *AssemblerTestSuite) TestProfitFactor() {
	suite.Equal(0.0, ProfitFactor(0, 0))
	suite.Equal(MaxProfitFactor, ProfitFactor(10, 0))
	suite.Equal(2.0, ProfitFactor(10, -5))
	suite.Equal(0.0, ProfitFactor(0, 5))
	suite.Equal(MaxProfitFactor, ProfitFactor(1e6, 1))
}

func (suite *AssemblerTestSuite) TestMaxDrawdown() {
	suite.Equal(0.0, MaxDrawdown(nil))
	suite.Equal(50.0, MaxDrawdown([]types.EquityPoint{
		{Balance: 100}, {Balance: 200}, {Balance: 150}, {Balance: 100}, {Balance: 300},
	}))
}
