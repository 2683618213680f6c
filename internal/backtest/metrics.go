package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/shopspring/decimal"
)

func deriveMetrics(trades []types.TradeEvent, curve []types.EquityPoint) types.BacktestMetrics {
	metrics := types.BacktestMetrics{
		TotalTrades: len(trades),
	}

	grossProfit := decimal.Zero
	grossLoss := decimal.Zero

	for _, trade := range trades {
		profit := decimal.NewFromFloat(trade.Profit)

		switch {
		case trade.Profit > 0:
			metrics.WinningTrades++
			grossProfit = grossProfit.Add(profit)
		case trade.Profit < 0:
			metrics.LosingTrades++
			grossLoss = grossLoss.Add(profit.Abs())
		}
	}

	if metrics.TotalTrades > 0 {
		metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades) * 100
	}

	metrics.NetProfit = grossProfit.Sub(grossLoss).InexactFloat64()
	metrics.ProfitFactor = ProfitFactor(grossProfit.InexactFloat64(), grossLoss.InexactFloat64())
	metrics.MaxDrawdown = MaxDrawdown(curve)

	return metrics
}

// ProfitFactor is gross profit over gross loss magnitude, capped at
// MaxProfitFactor. With no losses it is 0 when there is no profit either and
// MaxProfitFactor otherwise.
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	grossLoss = math.Abs(grossLoss)

	if grossLoss == 0 {
		if grossProfit > 0 {
			return MaxProfitFactor
		}

		return 0
	}

	return math.Min(grossProfit/grossLoss, MaxProfitFactor)
}

// MaxDrawdown is the largest peak-to-trough decline of the curve as a
// percentage of the peak.
func MaxDrawdown(curve []types.EquityPoint) float64 {
	peak := math.Inf(-1)
	drawdown := 0.0

	for _, point := range curve {
		if point.Balance > peak {
			peak = point.Balance
		}

		if peak <= 0 {
			continue
		}

		drawdown = math.Max(drawdown, (peak-point.Balance)/peak*100)
	}

	return drawdown
}

// applyHints overrides the derivable metrics with the oracle's finite hints.
// Trade counts always stay derived.
func applyHints(metrics types.BacktestMetrics, hints types.MetricHints) types.BacktestMetrics {
	if hints.WinRate.IsSome() {
		metrics.WinRate = clamp(hints.WinRate.Unwrap(), 0, 100)
	}

	if hints.NetProfit.IsSome() {
		metrics.NetProfit = hints.NetProfit.Unwrap()
	}

	if hints.ProfitFactor.IsSome() {
		metrics.ProfitFactor = clamp(hints.ProfitFactor.Unwrap(), 0, MaxProfitFactor)
	}

	if hints.MaxDrawdown.IsSome() {
		metrics.MaxDrawdown = clamp(math.Abs(hints.MaxDrawdown.Unwrap()), 0, 100)
	}

	return metrics
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(value, high))
}
