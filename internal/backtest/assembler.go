package backtest

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultStartingBalance is the nominal balance of the first equity point.
	DefaultStartingBalance = 10000.0
	// DefaultProfitMultiplier converts one unit of trade profit (usually a pip)
	// into balance units on the equity curve.
	DefaultProfitMultiplier = 10.0
	// MaxProfitFactor caps the profit factor, including the no-loss case.
	MaxProfitFactor = 999.99
)

// MetricsPolicy selects where aggregate metrics come from.
type MetricsPolicy string

const (
	// MetricsPolicyDerived recomputes every metric from the accepted trades.
	MetricsPolicyDerived MetricsPolicy = "derived"
	// MetricsPolicyHinted keeps the oracle's numeric hints for winRate,
	// netProfit, profitFactor and maxDrawdown and derives the rest.
	MetricsPolicyHinted MetricsPolicy = "hinted"
)

type AssemblerConfig struct {
	StartingBalance  float64       `yaml:"starting_balance" json:"startingBalance" validate:"gt=0"`
	ProfitMultiplier float64       `yaml:"profit_multiplier" json:"profitMultiplier" validate:"gt=0"`
	MetricsPolicy    MetricsPolicy `yaml:"metrics_policy" json:"metricsPolicy" validate:"omitempty,oneof=derived hinted"`
}

func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		StartingBalance:  DefaultStartingBalance,
		ProfitMultiplier: DefaultProfitMultiplier,
		MetricsPolicy:    MetricsPolicyHinted,
	}
}

// Assembler turns untrusted trade proposals into a self-consistent result.
// It holds no per-run state and may be shared between goroutines.
type Assembler struct {
	config AssemblerConfig
	logger *logger.Logger
	now    func() time.Time
}

func NewAssembler(config AssemblerConfig, log *logger.Logger) *Assembler {
	if config.StartingBalance <= 0 {
		config.StartingBalance = DefaultStartingBalance
	}

	if config.ProfitMultiplier <= 0 {
		config.ProfitMultiplier = DefaultProfitMultiplier
	}

	if config.MetricsPolicy == "" {
		config.MetricsPolicy = MetricsPolicyHinted
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Assembler{
		config: config,
		logger: log,
		now:    time.Now,
	}
}

func (a *Assembler) Config() AssemblerConfig {
	return a.config
}

// Assemble never fails: malformed proposals are dropped and an empty proposal
// list yields an empty backtest with a single equity point.
func (a *Assembler) Assemble(v *view.View, response types.OracleResponse) *types.BacktestResult {
	trades := make([]types.TradeEvent, 0, len(response.Trades))
	dropped := 0

	for i, proposal := range response.Trades {
		event, reason := a.accept(v, proposal)
		if reason != "" {
			dropped++

			a.logger.Debug("Dropped trade proposal",
				zap.Int("proposal", i),
				zap.String("reason", reason),
			)

			continue
		}

		event.ID = fmt.Sprintf("trade-%d", len(trades))

		if event.Reconciled {
			a.logger.Warn("Reconciled trade profit with its prices",
				zap.String("trade", event.ID),
				zap.String("type", string(event.Type)),
				zap.Float64("entryPrice", event.EntryPrice),
				zap.Float64("exitPrice", event.ExitPrice),
				zap.Float64("profit", event.Profit),
			)
		}

		trades = append(trades, event)
	}

	curve := a.equityCurve(trades)
	metrics := deriveMetrics(trades, curve)

	if a.config.MetricsPolicy == MetricsPolicyHinted {
		metrics = applyHints(metrics, response.Metrics)
	}

	return &types.BacktestResult{
		ID:          uuid.New().String(),
		CreatedAt:   a.now(),
		Trades:      trades,
		Metrics:     metrics,
		Data:        v.Candles(),
		EquityCurve: curve,
		Dropped:     dropped,
	}
}

// accept validates one proposal. A non-empty reason means the proposal is dropped.
func (a *Assembler) accept(v *view.View, proposal types.TradeProposal) (types.TradeEvent, string) {
	if proposal.Type.IsNone() {
		return types.TradeEvent{}, "missing or unknown type"
	}

	if proposal.EntryIndex.IsNone() || proposal.ExitIndex.IsNone() {
		return types.TradeEvent{}, "missing index"
	}

	entryIndex := proposal.EntryIndex.Unwrap()
	exitIndex := proposal.ExitIndex.Unwrap()

	if entryIndex < 0 || exitIndex >= v.Len() {
		return types.TradeEvent{}, "index outside the view"
	}

	if exitIndex <= entryIndex {
		return types.TradeEvent{}, "exit does not follow entry"
	}

	entryCandle, _ := v.Candle(entryIndex)
	exitCandle, _ := v.Candle(exitIndex)

	event := types.TradeEvent{
		Type:       proposal.Type.Unwrap(),
		EntryIndex: entryIndex,
		ExitIndex:  exitIndex,
		EntryPrice: price(proposal.EntryPrice.TakeOr(0), entryCandle.Close),
		ExitPrice:  price(proposal.ExitPrice.TakeOr(0), exitCandle.Close),
		EntryTime:  entryCandle.Label(),
		ExitTime:   exitCandle.Label(),
	}

	event.Profit, event.Reconciled = reconcileProfit(event.Type, event.EntryPrice, event.ExitPrice, proposal.Profit.TakeOr(0))

	return event, ""
}

// price falls back to the candle close when the proposed price is unusable.
func price(proposed, fallback float64) float64 {
	if proposed > 0 && !math.IsInf(proposed, 0) {
		return proposed
	}

	return fallback
}

// reconcileProfit makes the profit sign agree with the direction implied by
// type and prices. The magnitude is kept because its unit belongs to the
// oracle. A missing profit arrives as 0 and stays 0.
func reconcileProfit(tradeType types.TradeType, entryPrice, exitPrice, profit float64) (float64, bool) {
	move := exitPrice - entryPrice
	if tradeType == types.TradeTypeSell {
		move = -move
	}

	switch {
	case move == 0:
		return 0, profit != 0
	case move > 0 && profit < 0, move < 0 && profit > 0:
		return -profit, true
	default:
		return profit, false
	}
}

// equityCurve starts at the nominal balance and adds each trade's scaled
// profit in exit order. Trades sharing an exit index keep their input order.
func (a *Assembler) equityCurve(trades []types.TradeEvent) []types.EquityPoint {
	ordered := make([]types.TradeEvent, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitIndex < ordered[j].ExitIndex
	})

	balance := decimal.NewFromFloat(a.config.StartingBalance)
	multiplier := decimal.NewFromFloat(a.config.ProfitMultiplier)

	curve := make([]types.EquityPoint, 0, len(trades)+1)
	curve = append(curve, types.EquityPoint{Time: types.EquityStartLabel, Balance: balance.InexactFloat64()})

	for _, trade := range ordered {
		balance = balance.Add(decimal.NewFromFloat(trade.Profit).Mul(multiplier))
		curve = append(curve, types.EquityPoint{Time: trade.ExitTime, Balance: balance.InexactFloat64()})
	}

	return curve
}
