package marketdata

import (
	"strings"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
)

var binanceQuotes = []string{"USDT", "BTC", "ETH", "BNB", "FDUSD", "USDC", "DAI"}

// NormalizeBinanceSymbol turns user input such as "btc/usdt" or "SOL" into a
// Binance pair. Symbols without a known quote asset are quoted in USDT. A bare
// quote asset such as "BTC" counts as a base coin.
func NormalizeBinanceSymbol(symbol string) string {
	pair := strings.ToUpper(strings.TrimSpace(symbol))
	pair = strings.ReplaceAll(pair, "/", "")
	pair = strings.ReplaceAll(pair, "-", "")

	for _, quote := range binanceQuotes {
		if len(pair) > len(quote) && strings.HasSuffix(pair, quote) {
			return pair
		}
	}

	return pair + "USDT"
}

// DisplaySymbol renders a USDT pair the way tickers show it: BTCUSDT → BTC/USD.
func DisplaySymbol(pair string) string {
	return strings.Replace(pair, "USDT", "/USD", 1)
}

// BinanceInterval maps a timeframe to a Binance kline interval. Unknown
// timeframes fall back to one hour.
func BinanceInterval(timeframe types.Timeframe) string {
	switch timeframe {
	case types.TimeframeM1:
		return "1m"
	case types.TimeframeM5:
		return "5m"
	case types.TimeframeM15:
		return "15m"
	case types.TimeframeM30:
		return "30m"
	case types.TimeframeH1:
		return "1h"
	case types.TimeframeH4:
		return "4h"
	case types.TimeframeD1:
		return "1d"
	default:
		return "1h"
	}
}

// PolygonTimespan maps a timeframe to a Polygon multiplier and timespan.
func PolygonTimespan(timeframe types.Timeframe) (int, models.Timespan) {
	switch timeframe {
	case types.TimeframeM1:
		return 1, models.Minute
	case types.TimeframeM5:
		return 5, models.Minute
	case types.TimeframeM15:
		return 15, models.Minute
	case types.TimeframeM30:
		return 30, models.Minute
	case types.TimeframeH4:
		return 4, models.Hour
	case types.TimeframeD1:
		return 1, models.Day
	default:
		return 1, models.Hour
	}
}

// Duration is the length of one bar of the timeframe.
func Duration(timeframe types.Timeframe) time.Duration {
	switch timeframe {
	case types.TimeframeM1:
		return time.Minute
	case types.TimeframeM5:
		return 5 * time.Minute
	case types.TimeframeM15:
		return 15 * time.Minute
	case types.TimeframeM30:
		return 30 * time.Minute
	case types.TimeframeH4:
		return 4 * time.Hour
	case types.TimeframeD1:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}
