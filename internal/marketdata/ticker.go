package marketdata

import (
	"context"
	"strconv"
	"sync"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"go.uber.org/zap"
)

// DefaultTickerSymbols are the pairs shown by the ticker stream.
var DefaultTickerSymbols = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "BNBUSDT", "XRPUSDT"}

type TickerFeed interface {
	// Tickers returns a 24h snapshot of every symbol that could be fetched.
	Tickers(ctx context.Context, symbols []string) ([]types.Ticker, error)
}

// BinanceTickerFeed reads Binance 24h price change statistics.
type BinanceTickerFeed struct {
	client *binance.Client
	logger *logger.Logger
}

func NewBinanceTickerFeed(log *logger.Logger) *BinanceTickerFeed {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceTickerFeed{
		client: binance.NewClient("", ""),
		logger: log,
	}
}

// SetBaseURL points the underlying client at another REST endpoint.
func (f *BinanceTickerFeed) SetBaseURL(url string) {
	f.client.BaseURL = url
}

// Tickers queries each symbol concurrently. Symbols that fail to fetch or
// parse are skipped; the result keeps the order of symbols.
func (f *BinanceTickerFeed) Tickers(ctx context.Context, symbols []string) ([]types.Ticker, error) {
	results := make([]*types.Ticker, len(symbols))

	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)

		go func(i int, symbol string) {
			defer wg.Done()

			results[i] = f.fetch(ctx, NormalizeBinanceSymbol(symbol))
		}(i, symbol)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tickers := make([]types.Ticker, 0, len(symbols))
	for _, t := range results {
		if t != nil {
			tickers = append(tickers, *t)
		}
	}

	return tickers, nil
}

func (f *BinanceTickerFeed) fetch(ctx context.Context, pair string) *types.Ticker {
	stats, err := f.client.NewListPriceChangeStatsService().Symbol(pair).Do(ctx)
	if err != nil || len(stats) == 0 {
		f.logger.Debug("Failed to fetch ticker", zap.String("symbol", pair), zap.Error(err))

		return nil
	}

	price, err := strconv.ParseFloat(stats[0].LastPrice, 64)
	if err != nil {
		return nil
	}

	change, err := strconv.ParseFloat(stats[0].PriceChangePercent, 64)
	if err != nil {
		return nil
	}

	return &types.Ticker{
		Symbol:        DisplaySymbol(stats[0].Symbol),
		Price:         price,
		ChangePercent: change,
	}
}
