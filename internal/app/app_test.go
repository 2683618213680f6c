package app

import (
	"context"
	"testing"

	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/config"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (suite *AppTestSuite) TestDefaultServices() {
	a, err := New(context.Background(), config.DefaultConfig(), nil)
	suite.Require().NoError(err)
	defer a.Close()

	suite.Equal(marketdata.ProviderSynthetic, a.Provider.Name())
	suite.IsType(&oracle.RuleBased{}, a.Oracle)
	suite.Nil(a.Generator)
	suite.Nil(a.Analyzer)
	suite.NotNil(a.Store)
	suite.NotNil(a.Runner)
	suite.Len(a.Registry.ListIndicators(), 4)
}

func (suite *AppTestSuite) TestGeminiServicesWithKey() {
	cfg := config.DefaultConfig()
	cfg.Oracle.Gemini.APIKey = "test-key"

	a, err := New(context.Background(), cfg, nil)
	suite.Require().NoError(err)
	defer a.Close()

	suite.NotNil(a.Generator)
	suite.NotNil(a.Analyzer)
	// The rule-based oracle still runs backtests unless gemini is selected.
	suite.IsType(&oracle.RuleBased{}, a.Oracle)
}

func (suite *AppTestSuite) TestGeminiOracleWithoutKey() {
	cfg := config.DefaultConfig()
	cfg.Oracle.Type = oracle.OracleGemini

	_, err := New(context.Background(), cfg, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *AppTestSuite) TestOfflineBacktestEndToEnd() {
	a, err := New(context.Background(), config.DefaultConfig(), nil)
	suite.Require().NoError(err)
	defer a.Close()

	strategy := types.StrategyConfig{
		Name:        "Offline",
		Platform:    types.PlatformMT4,
		Symbol:      "EURUSD",
		Timeframe:   types.TimeframeH1,
		LotSize:     0.1,
		StopLoss:    20,
		TakeProfit:  40,
		Description: "RSI reversal with EMA filter",
		Indicators:  types.DefaultIndicatorSettings(),
	}

	result, err := a.Runner.Run(context.Background(), strategy, backtest.RunCallbacks{})
	suite.Require().NoError(err)
	suite.Len(result.Data, a.Config.Backtest.Window)
	suite.Equal(result.Metrics.TotalTrades, len(result.Trades))
	suite.Len(result.EquityCurve, len(result.Trades)+1)
	suite.Equal(0, result.Dropped)
}
