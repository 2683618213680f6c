// Package app wires the configured collaborators into one set of services
// shared by the CLI and the HTTP server.
package app

import (
	"context"
	"io"

	"github.com/rxtech-lab/argo-strategy-lab/internal/backtest"
	"github.com/rxtech-lab/argo-strategy-lab/internal/config"
	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/metrics"
	"github.com/rxtech-lab/argo-strategy-lab/internal/oracle"
	"github.com/rxtech-lab/argo-strategy-lab/internal/store"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"go.uber.org/zap"
)

type App struct {
	Config   config.Config
	Logger   *logger.Logger
	Metrics  *metrics.Collector
	Registry indicator.IndicatorRegistry
	Provider marketdata.Provider
	Tickers  marketdata.TickerFeed
	Oracle   backtest.DecisionOracle
	// Generator and Analyzer are nil when no Gemini API key is configured.
	Generator oracle.CodeGenerator
	Analyzer  oracle.ChartAnalyzer
	Store     store.StrategyStore
	Runner    *backtest.Runner
}

// New builds every service described by cfg.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	provider, err := marketdata.NewProvider(cfg.MarketData.Provider, cfg.MarketData.ProviderConfig)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics.NewCollector(),
		Registry: indicator.NewDefaultRegistry(),
		Provider: provider,
	}

	tickers := marketdata.NewBinanceTickerFeed(log)
	if cfg.MarketData.BinanceURL != "" {
		tickers.SetBaseURL(cfg.MarketData.BinanceURL)
	}

	a.Tickers = tickers

	if cfg.Oracle.Gemini.APIKey != "" {
		gemini, err := oracle.NewGemini(ctx, cfg.Oracle.Gemini, log)
		if err != nil {
			return nil, err
		}

		a.Generator = gemini
		a.Analyzer = gemini

		if cfg.Oracle.Type == oracle.OracleGemini {
			a.Oracle = gemini
		}
	}

	switch cfg.Oracle.Type {
	case oracle.OracleRule, "":
		a.Oracle = oracle.NewRuleBased(cfg.Oracle.Rule, log)
	case oracle.OracleGemini:
		if a.Oracle == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "the gemini oracle requires an API key")
		}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown oracle type: %s", cfg.Oracle.Type)
	}

	a.Store, err = store.New(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	runnerConfig := cfg.Backtest.RunnerConfig
	if runnerConfig.Limit <= 0 {
		runnerConfig.Limit = cfg.MarketData.Limit
	}

	a.Runner = backtest.NewRunner(
		provider,
		a.Oracle,
		backtest.NewAssembler(cfg.Backtest.Assembler, log),
		runnerConfig,
		a.Metrics,
		log,
	)

	log.Debug("Services initialized",
		zap.String("provider", string(provider.Name())),
		zap.String("oracle", string(cfg.Oracle.Type)),
		zap.String("store", string(cfg.Store.Backend)),
		zap.Bool("gemini", a.Generator != nil),
	)

	return a, nil
}

// Close releases the strategy store and any provider holding a connection.
func (a *App) Close() error {
	var err error

	if closer, ok := a.Provider.(io.Closer); ok {
		err = closer.Close()
	}

	if a.Store != nil {
		if storeErr := a.Store.Close(); storeErr != nil {
			err = storeErr
		}
	}

	return err
}
