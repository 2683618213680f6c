package oracle

import (
	"context"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/utils"
	"go.uber.org/zap"
)

const (
	// pipPriceThreshold separates quotes like 145.20 (pip 0.01) from quotes
	// like 1.0850 (pip 0.0001) when no pip size is configured.
	pipPriceThreshold = 20.0
	largePip          = 0.01
	smallPip          = 0.0001
)

type RuleBasedConfig struct {
	// PipSize converts stop loss and take profit pips into prices. Zero derives
	// it from the price level of the view.
	PipSize float64 `yaml:"pip_size" json:"pipSize" validate:"gte=0"`
}

// RuleBased is a deterministic decision oracle. It enters BUY when RSI crosses
// up through the oversold level with the close above the MA, and SELL when
// RSI crosses down through the overbought level with the close below the MA.
// Positions exit at stop loss, take profit or the last candle of the view.
// The strategy text is ignored.
type RuleBased struct {
	config RuleBasedConfig
	log    *logger.Logger
}

func NewRuleBased(config RuleBasedConfig, log *logger.Logger) *RuleBased {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &RuleBased{config: config, log: log}
}

// PipSizeForSymbol returns 0.01 for JPY crosses and 0.0001 otherwise.
func PipSizeForSymbol(symbol string) float64 {
	if strings.Contains(strings.ToUpper(symbol), "JPY") {
		return largePip
	}

	return smallPip
}

type position struct {
	tradeType  types.TradeType
	entryIndex int
	entryPrice float64
}

func (r *RuleBased) ProposeTrades(ctx context.Context, v *view.View, _ string, risk types.RiskParams) (types.OracleResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.OracleResponse{}, ClassifyError(err, "rule evaluation")
	}

	response := types.OracleResponse{Trades: []types.TradeProposal{}}

	n := v.Len()
	if n < 2 {
		return response, nil
	}

	pip := r.pipSize(v)
	settings := v.Settings()

	var open *position

	for i := 1; i < n; i++ {
		candle, _ := v.Candle(i)

		if open != nil {
			exitPrice, closed := r.checkExit(*open, candle, risk, pip)
			if !closed && i == n-1 {
				exitPrice, closed = candle.Close, true
			}

			if closed {
				response.Trades = append(response.Trades, proposal(*open, i, exitPrice, pip))
				open = nil
			}

			continue
		}

		if i == n-1 {
			break
		}

		tradeType, ok := r.signal(v, i, settings)
		if !ok {
			continue
		}

		open = &position{tradeType: tradeType, entryIndex: i, entryPrice: candle.Close}
	}

	r.log.Debug("Rule evaluation completed",
		zap.Int("candles", n),
		zap.Int("trades", len(response.Trades)),
		zap.Float64("pip_size", pip),
	)

	return response, nil
}

func (r *RuleBased) pipSize(v *view.View) float64 {
	if r.config.PipSize > 0 {
		return r.config.PipSize
	}

	last, ok := v.Candle(v.Len() - 1)
	if ok && last.Close >= pipPriceThreshold {
		return largePip
	}

	return smallPip
}

func (r *RuleBased) signal(v *view.View, i int, settings types.IndicatorSettings) (types.TradeType, bool) {
	prev, cur, ma := v.RSI(i-1), v.RSI(i), v.MA(i)
	if prev.IsNone() || cur.IsNone() || ma.IsNone() {
		return "", false
	}

	candle, _ := v.Candle(i)
	prevRSI, curRSI, maValue := prev.Unwrap(), cur.Unwrap(), ma.Unwrap()

	if prevRSI < settings.RSIOversold && curRSI >= settings.RSIOversold && candle.Close > maValue {
		return types.TradeTypeBuy, true
	}

	if prevRSI > settings.RSIOverbought && curRSI <= settings.RSIOverbought && candle.Close < maValue {
		return types.TradeTypeSell, true
	}

	return "", false
}

// checkExit tests the stop loss before the take profit so a candle touching
// both closes the position at a loss.
func (r *RuleBased) checkExit(p position, candle types.Candle, risk types.RiskParams, pip float64) (float64, bool) {
	sl := risk.StopLoss * pip
	tp := risk.TakeProfit * pip

	if p.tradeType == types.TradeTypeBuy {
		if sl > 0 && candle.Low <= p.entryPrice-sl {
			return p.entryPrice - sl, true
		}

		if tp > 0 && candle.High >= p.entryPrice+tp {
			return p.entryPrice + tp, true
		}

		return 0, false
	}

	if sl > 0 && candle.High >= p.entryPrice+sl {
		return p.entryPrice + sl, true
	}

	if tp > 0 && candle.Low <= p.entryPrice-tp {
		return p.entryPrice - tp, true
	}

	return 0, false
}

func proposal(p position, exitIndex int, exitPrice, pip float64) types.TradeProposal {
	move := exitPrice - p.entryPrice
	if p.tradeType == types.TradeTypeSell {
		move = -move
	}

	profit := utils.RoundToDecimalPrecision(move/pip, 1)

	return types.TradeProposal{
		Type:       optional.Some(p.tradeType),
		EntryIndex: optional.Some(p.entryIndex),
		ExitIndex:  optional.Some(exitIndex),
		EntryPrice: optional.Some(utils.RoundToDecimalPrecision(p.entryPrice, 5)),
		ExitPrice:  optional.Some(utils.RoundToDecimalPrecision(exitPrice, 5)),
		Profit:     optional.Some(profit),
	}
}
