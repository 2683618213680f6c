package backtest

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-strategy-lab/internal/indicator"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/metrics"
	"github.com/rxtech-lab/argo-strategy-lab/internal/series"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
	"go.uber.org/zap"
)

// DecisionOracle proposes trades for a strategy over an indicator view.
// Indices in the response are view-local.
type DecisionOracle interface {
	ProposeTrades(ctx context.Context, v *view.View, strategy string, risk types.RiskParams) (types.OracleResponse, error)
}

// Stage names one step of a backtest run.
type Stage string

const (
	StageFetch      Stage = "fetch"
	StageNormalize  Stage = "normalize"
	StageIndicators Stage = "indicators"
	StageView       Stage = "view"
	StageOracle     Stage = "oracle"
	StageAssemble   Stage = "assemble"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageFetch, StageNormalize, StageIndicators, StageView, StageOracle, StageAssemble}

// OnStageStartCallback is called before a stage runs. Returning an error aborts the run.
type OnStageStartCallback func(stage Stage) error

// OnStageEndCallback is called after a stage succeeds.
type OnStageEndCallback func(stage Stage, elapsed time.Duration)

// RunCallbacks holds optional lifecycle callbacks. Nil means no callback is invoked.
type RunCallbacks struct {
	OnStageStart *OnStageStartCallback
	OnStageEnd   *OnStageEndCallback
}

type RunnerConfig struct {
	// Window is the number of recent candles shown to the oracle.
	Window int `yaml:"window" json:"window" validate:"gt=0"`
	// Limit is the number of candles fetched from the provider.
	Limit int `yaml:"limit" json:"limit" validate:"gte=0"`
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Window: view.DefaultWindow,
		Limit:  marketdata.DefaultLimit,
	}
}

// Runner executes fetch → normalize → indicators → view → oracle → assemble.
// Runs share only the stateless collaborators and may execute concurrently.
type Runner struct {
	provider  marketdata.Provider
	oracle    DecisionOracle
	assembler *Assembler
	config    RunnerConfig
	collector *metrics.Collector
	logger    *logger.Logger
}

func NewRunner(
	provider marketdata.Provider,
	oracle DecisionOracle,
	assembler *Assembler,
	config RunnerConfig,
	collector *metrics.Collector,
	log *logger.Logger,
) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if assembler == nil {
		assembler = NewAssembler(DefaultAssemblerConfig(), log)
	}

	if config.Window <= 0 {
		config.Window = view.DefaultWindow
	}

	return &Runner{
		provider:  provider,
		oracle:    oracle,
		assembler: assembler,
		config:    config,
		collector: collector,
		logger:    log,
	}
}

// Run backtests one strategy. Any stage failure aborts the run with a single
// error and no partial result.
func (r *Runner) Run(ctx context.Context, strategy types.StrategyConfig, callbacks RunCallbacks) (result *types.BacktestResult, err error) {
	defer func() {
		if err != nil {
			r.collector.ObserveRun("error")
			r.logger.Error("Backtest failed", zap.String("strategy", strategy.Name), zap.Error(err))

			return
		}

		r.collector.ObserveRun("success")
	}()

	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	if r.provider == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoProvider, "no market data provider configured")
	}

	if r.oracle == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoOracle, "no decision oracle configured")
	}

	var (
		raw      types.CandleSeries
		clean    types.CandleSeries
		set      indicator.Set
		v        *view.View
		response types.OracleResponse
	)

	err = r.stage(ctx, StageFetch, callbacks, func() error {
		raw, err = r.provider.Candles(ctx, strategy.Symbol, strategy.Timeframe, r.config.Limit)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeBacktestMarketData, err, "failed to fetch candles for %s", strategy.Symbol)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageNormalize, callbacks, func() error {
		var report series.Report
		clean, report = series.Normalize(raw)

		if !report.Clean() {
			r.collector.ObserveRepairs(report.Dropped + report.Repaired + report.Duplicates)
			r.logger.Warn("Normalized candle series",
				zap.String("symbol", strategy.Symbol),
				zap.Int("dropped", report.Dropped),
				zap.Int("repaired", report.Repaired),
				zap.Int("duplicates", report.Duplicates),
				zap.Bool("reordered", report.Reordered),
			)
		}

		if len(clean) == 0 {
			return errors.Newf(errors.ErrCodeNoDataFound, "no usable candles for %s", strategy.Symbol)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageIndicators, callbacks, func() error {
		set = indicator.ComputeSet(clean, strategy.Indicators)

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageView, callbacks, func() error {
		v, err = view.BuildFromSet(clean, set, strategy.Indicators, r.config.Window)

		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageOracle, callbacks, func() error {
		response, err = r.oracle.ProposeTrades(ctx, v, strategy.Description, strategy.Risk())
		if err != nil {
			r.collector.ObserveOracleError(errors.GetCode(err).String())

			return errors.Wrap(errors.ErrCodeBacktestOracle, "decision oracle failed", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageAssemble, callbacks, func() error {
		result = r.assembler.Assemble(v, response)
		result.Symbol = strategy.Symbol
		result.Strategy = strategy.Name

		reconciled := 0
		for _, trade := range result.Trades {
			if trade.Reconciled {
				reconciled++
			}
		}

		r.collector.ObserveAssembly(len(response.Trades), result.Dropped, reconciled)

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Backtest completed",
		zap.String("strategy", strategy.Name),
		zap.String("symbol", strategy.Symbol),
		zap.Int("trades", result.Metrics.TotalTrades),
		zap.Int("dropped", result.Dropped),
		zap.Float64("netProfit", result.Metrics.NetProfit),
	)

	return result, nil
}

func (r *Runner) stage(ctx context.Context, stage Stage, callbacks RunCallbacks, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if callbacks.OnStageStart != nil {
		if err := (*callbacks.OnStageStart)(stage); err != nil {
			return err
		}
	}

	start := time.Now()

	if err := fn(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	r.collector.ObserveStage(string(stage), elapsed)

	if callbacks.OnStageEnd != nil {
		(*callbacks.OnStageEnd)(stage, elapsed)
	}

	return nil
}
