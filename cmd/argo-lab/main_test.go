package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/config"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/store"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli/v3"
)

type CLITestSuite struct {
	suite.Suite
	tempDir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()

	// Keep every command offline and in memory.
	for _, key := range []string{config.EnvGeminiAPIKey, config.EnvPolygonAPIKey, config.EnvRedisAddr, config.EnvStoreBackend, config.EnvLogLevel} {
		suite.T().Setenv(key, "")
	}
}

// runStrategyFlags parses args against the strategy flags and returns the built strategy.
func (suite *CLITestSuite) runStrategyFlags(args ...string) (types.StrategyConfig, error) {
	var (
		strategy types.StrategyConfig
		buildErr error
	)

	cmd := &cli.Command{
		Name:  "test",
		Flags: strategyFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			strategy, buildErr = strategyFromCommand(cmd)

			return nil
		},
	}

	suite.Require().NoError(cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return strategy, buildErr
}

func (suite *CLITestSuite) TestStrategyFromFlags() {
	strategy, err := suite.runStrategyFlags("--symbol", "gbpusd", "--timeframe", "m15", "--stop-loss", "15", "--name", "Scalper")
	suite.Require().NoError(err)

	suite.Equal("GBPUSD", strategy.Symbol)
	suite.Equal(types.TimeframeM15, strategy.Timeframe)
	suite.Equal(15.0, strategy.StopLoss)
	suite.Equal(40.0, strategy.TakeProfit)
	suite.Equal("Scalper", strategy.Name)
	suite.Equal(types.DefaultIndicatorSettings(), strategy.Indicators)
}

func (suite *CLITestSuite) TestStrategyFromFlagsInvalid() {
	_, err := suite.runStrategyFlags("--timeframe", "W1")
	suite.Error(err)
}

func (suite *CLITestSuite) TestStrategyFileYAMLWithOverride() {
	path := filepath.Join(suite.tempDir, "strategy.yaml")
	content := `name: RSI Reversal
platform: MT4
symbol: USDJPY
timeframe: H4
lot_size: 0.5
stop_loss: 30
take_profit: 60
description: Buy oversold dips above the moving average
indicators:
  rsi_period: 7
  rsi_overbought: 80
  rsi_oversold: 20
  ma_period: 50
  ma_type: EMA
  macd_fast: 12
  macd_slow: 26
  macd_signal: 9
`
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	strategy, err := suite.runStrategyFlags("--strategy", path, "--take-profit", "90")
	suite.Require().NoError(err)

	suite.Equal("RSI Reversal", strategy.Name)
	suite.Equal(types.PlatformMT4, strategy.Platform)
	suite.Equal("USDJPY", strategy.Symbol)
	suite.Equal(0.5, strategy.LotSize)
	suite.Equal(30.0, strategy.StopLoss)
	suite.Equal(90.0, strategy.TakeProfit)
	suite.Equal(7, strategy.Indicators.RSIPeriod)
	suite.Equal(types.MATypeEMA, strategy.Indicators.MAType)
}

func (suite *CLITestSuite) TestStrategyFileMissing() {
	_, err := readStrategyFile(filepath.Join(suite.tempDir, "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func (suite *CLITestSuite) TestWriteSchemaFiles() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(writeSchemaFiles(dir))

	schema, err := os.ReadFile(filepath.Join(dir, strategySchemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schema), "takeProfit")

	sample, err := readStrategyFile(filepath.Join(dir, strategySampleName))
	suite.Require().NoError(err)
	suite.NoError(sample.Validate())
	suite.Equal(defaultStrategy(), sample)

	// An existing sample is left alone.
	samplePath := filepath.Join(dir, strategySampleName)
	suite.Require().NoError(os.WriteFile(samplePath, []byte("{}"), 0o644))
	suite.Require().NoError(writeSchemaFiles(dir))

	data, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("{}", string(data))
}

func (suite *CLITestSuite) TestParseOutputFormat() {
	format, err := parseOutputFormat("JSON")
	suite.NoError(err)
	suite.Equal(OutputJSON, format)

	format, err = parseOutputFormat("")
	suite.NoError(err)
	suite.Equal(OutputText, format)

	_, err = parseOutputFormat("xml")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *CLITestSuite) TestParseParams() {
	params := parseParams([]string{"14", "2.5", "fast"})
	suite.Equal([]any{14.0, 2.5, "fast"}, params)
}

func (suite *CLITestSuite) TestBotFileName() {
	strategy := defaultStrategy()
	strategy.Name = "RSI Reversal/v2"
	suite.Equal("RSI_Reversal_v2.mq5", botFileName(strategy))

	strategy.Platform = types.PlatformMT4
	strategy.Name = "  "
	suite.Equal("bot.mq4", botFileName(strategy))
}

func (suite *CLITestSuite) TestImageMIMEType() {
	suite.Equal("image/png", imageMIMEType("chart.PNG", nil))
	suite.Equal("image/jpeg", imageMIMEType("chart.jpeg", nil))
	suite.Equal("image/gif", imageMIMEType("chart", []byte("GIF89a")))
}

func (suite *CLITestSuite) TestRenderReport() {
	result := &types.BacktestResult{
		ID:       "run-1",
		Symbol:   "EURUSD",
		Strategy: "RSI Reversal",
		Trades: []types.TradeEvent{
			{ID: "t1", Type: types.TradeTypeBuy, EntryPrice: 1.1, ExitPrice: 1.102, Profit: 20, EntryTime: "2024-01-01 00:00", ExitTime: "2024-01-01 05:00"},
		},
		Metrics: types.BacktestMetrics{TotalTrades: 1, WinningTrades: 1, WinRate: 100, NetProfit: 200, ProfitFactor: 999.99},
		Dropped: 2,
	}

	report := RenderReport(result)

	suite.Contains(report, "Backtest RSI Reversal")
	suite.Contains(report, "1 (1 won, 0 lost)")
	suite.Contains(report, "100.00%")
	suite.Contains(report, "+200.00")
	suite.Contains(report, "2 proposed trades were dropped")
	suite.Contains(report, "2024-01-01 05:00")
}

func (suite *CLITestSuite) TestRenderIndicatorTail() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := types.CandleSeries{
		{Time: start, Open: 1, High: 1, Low: 1, Close: 1},
		{Time: start.Add(time.Hour), Open: 1, High: 2, Low: 1, Close: 2},
		{Time: start.Add(2 * time.Hour), Open: 2, High: 2, Low: 1.5, Close: 1.5},
	}
	output := indicator.Output{
		"value": indicator.Values{optional.None[float64](), optional.Some(1.5), optional.Some(1.75)},
	}

	rendered := RenderIndicator(types.IndicatorTypeSMA, data, output, 2)

	suite.Contains(rendered, "value")
	suite.Contains(rendered, "1.75000")
	suite.Contains(rendered, "▼")
	suite.NotContains(rendered, data[0].Label())
}

func (suite *CLITestSuite) TestRenderStrategies() {
	suite.Contains(RenderStrategies(nil), "No strategies saved")

	rendered := RenderStrategies([]store.StoredStrategy{{ID: "abc", Config: defaultStrategy(), UpdatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}})
	suite.Contains(rendered, "abc")
	suite.Contains(rendered, "EURUSD")
	suite.Contains(rendered, "2024-03-01 12:00")
}

func (suite *CLITestSuite) TestBacktestCommandOffline() {
	err := newCommand().Run(context.Background(), []string{"argo-lab", "backtest", "--quiet", "--output", "json", "--symbol", "EURUSD"})
	suite.NoError(err)
}

func (suite *CLITestSuite) TestGenerateRequiresGeminiKey() {
	err := newCommand().Run(context.Background(), []string{"argo-lab", "generate", "--out", filepath.Join(suite.tempDir, "bot.mq5")})
	suite.ErrorIs(err, errOracleUnavailable)
}

func (suite *CLITestSuite) TestIndicatorsCommandUnknownIndicator() {
	err := newCommand().Run(context.Background(), []string{"argo-lab", "indicators", "--name", "nope"})
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *CLITestSuite) TestDownloadThenBacktestFromParquet() {
	out := filepath.Join(suite.tempDir, "candles.parquet")

	err := newCommand().Run(context.Background(), []string{"argo-lab", "download", "--symbols", "eurusd,usdjpy", "--limit", "120", "--out", out})
	suite.Require().NoError(err)

	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("market_data:\n  provider: parquet\n  data_path: "+out+"\n"), 0o644))

	err = newCommand().Run(context.Background(), []string{"argo-lab", "--config", configPath, "backtest", "--quiet", "--output", "yaml", "--symbol", "USDJPY"})
	suite.NoError(err)
}
