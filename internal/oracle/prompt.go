package oracle

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/internal/view"
)

// BacktestPrompt asks the model to simulate strategy over the rendered view.
// The configured parameters are stated to take precedence over the strategy text.
func BacktestPrompt(v *view.View, strategy string, risk types.RiskParams, schema string) string {
	settings := v.Settings()

	var b strings.Builder

	b.WriteString("Act as a high-precision trading backtesting engine.\n\n")
	fmt.Fprintf(&b, "Strategy: %s\n\n", strategy)
	b.WriteString("Risk settings:\n")
	fmt.Fprintf(&b, "- TP: %g pips\n", risk.TakeProfit)
	fmt.Fprintf(&b, "- SL: %g pips\n\n", risk.StopLoss)
	b.WriteString("Indicator parameters:\n")
	fmt.Fprintf(&b, "- RSI Period: %d (levels %g/%g)\n", settings.RSIPeriod, settings.RSIOversold, settings.RSIOverbought)
	fmt.Fprintf(&b, "- MA: %d (%s)\n", settings.MAPeriod, settings.MAType)
	fmt.Fprintf(&b, "- MACD: %d/%d/%d\n\n", settings.MACDFast, settings.MACDSlow, settings.MACDSignal)
	b.WriteString("Use the indicator parameters and risk settings above strictly, even if they conflict with the strategy text.\n\n")
	fmt.Fprintf(&b, "Market data (last %d periods with pre-calculated indicators):\n", v.Len())
	b.WriteString(v.Text())
	b.WriteString("\n\n")
	b.WriteString("Task:\n")
	b.WriteString("1. Identify entry points (BUY or SELL) from the strategy logic and the indicator values.\n")
	b.WriteString("2. Determine exit points from TP/SL or the strategy exit logic.\n")
	b.WriteString("3. Calculate profit or loss in pips.\n\n")
	fmt.Fprintf(&b, "Indices refer to the Idx column, 0 to %d. exitIndex must be greater than entryIndex.\n", v.Len()-1)
	b.WriteString("Return only a JSON object matching this schema:\n")
	b.WriteString(schema)

	return b.String()
}

// BotPrompt asks the model for complete platform source code.
func BotPrompt(cfg types.StrategyConfig, schema string) string {
	ind := cfg.Indicators
	lang := cfg.Platform.Language()

	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert algorithmic trading developer specializing in %s.\n\n", lang)
	b.WriteString("Create a complete, compile-ready Expert Advisor with these specifications:\n")
	fmt.Fprintf(&b, "- Platform: %s (%s)\n", cfg.Platform, lang)
	fmt.Fprintf(&b, "- Bot name: %s\n", cfg.Name)
	fmt.Fprintf(&b, "- Strategy type: %s\n", cfg.Category)
	fmt.Fprintf(&b, "- Target symbol: %s\n", cfg.Symbol)
	fmt.Fprintf(&b, "- Timeframe: %s\n", cfg.Timeframe)
	fmt.Fprintf(&b, "- Initial lot size: %g\n", cfg.LotSize)
	fmt.Fprintf(&b, "- Stop loss: %g pips\n", cfg.StopLoss)
	fmt.Fprintf(&b, "- Take profit: %g pips\n\n", cfg.TakeProfit)
	b.WriteString("Indicator parameters, declared as input variables:\n")
	fmt.Fprintf(&b, "- RSI period: %d (levels %g/%g)\n", ind.RSIPeriod, ind.RSIOversold, ind.RSIOverbought)
	fmt.Fprintf(&b, "- Moving average: %d (%s)\n", ind.MAPeriod, ind.MAType)
	fmt.Fprintf(&b, "- MACD: %d fast, %d slow, %d signal\n\n", ind.MACDFast, ind.MACDSlow, ind.MACDSignal)
	fmt.Fprintf(&b, "Strategy logic:\n%s\n\n", cfg.Description)

	if cfg.Signal != "" {
		fmt.Fprintf(&b, "Direction bias: %s\n\n", cfg.Signal)
	}

	b.WriteString("Requirements:\n")
	b.WriteString("1. The code must be complete with no placeholders.\n")
	b.WriteString("2. Include input variables and the OnTick event loop.\n")
	b.WriteString("3. Check every order execution for errors.\n")
	b.WriteString("4. Treat stop loss and take profit inputs as pips and convert them to points for 3 and 5 digit brokers.\n")
	b.WriteString("5. Comment the trading logic.\n\n")
	b.WriteString("Return only a JSON object matching this schema:\n")
	b.WriteString(schema)

	return b.String()
}

// ChartPrompt asks the model to draft a strategy from an attached chart image.
func ChartPrompt(schema string) string {
	var b strings.Builder

	b.WriteString("You are an expert trading analyst. Analyze the attached chart for:\n")
	b.WriteString("1. Market structure such as trends, liquidity sweeps and order blocks.\n")
	b.WriteString("2. The volatility profile, to choose stop loss and take profit in pips.\n")
	b.WriteString("3. Indicator periods tuned to this price action instead of defaults.\n\n")
	b.WriteString("Describe the trading style as the category and write the strategy logic as a technical description for a trading bot.\n")
	b.WriteString("Return only a JSON object matching this schema:\n")
	b.WriteString(schema)

	return b.String()
}
