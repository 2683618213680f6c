package marketdata

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// BinanceKlinesService is the subset of the klines service the provider uses.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	Limit(limit int) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient abstracts the Binance REST client so tests can substitute it.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesAdapter{service: a.client.NewKlinesService()}
}

type binanceKlinesAdapter struct {
	service *binance.KlinesService
}

func (s *binanceKlinesAdapter) Symbol(symbol string) BinanceKlinesService {
	s.service.Symbol(symbol)

	return s
}

func (s *binanceKlinesAdapter) Interval(interval string) BinanceKlinesService {
	s.service.Interval(interval)

	return s
}

func (s *binanceKlinesAdapter) Limit(limit int) BinanceKlinesService {
	s.service.Limit(limit)

	return s
}

func (s *binanceKlinesAdapter) Do(ctx context.Context) ([]*binance.Kline, error) {
	return s.service.Do(ctx)
}

// BinanceProvider reads public spot klines. No API key is needed.
type BinanceProvider struct {
	client    *binance.Client
	apiClient BinanceAPIClient
}

func NewBinanceProvider() *BinanceProvider {
	client := binance.NewClient("", "")

	return &BinanceProvider{
		client:    client,
		apiClient: &binanceAPIAdapter{client: client},
	}
}

// NewBinanceProviderWithAPI creates a provider over a custom API client.
func NewBinanceProviderWithAPI(apiClient BinanceAPIClient) *BinanceProvider {
	return &BinanceProvider{
		apiClient: apiClient,
	}
}

// SetBaseURL points the underlying client at another REST endpoint.
func (p *BinanceProvider) SetBaseURL(url string) {
	if p.client != nil {
		p.client.BaseURL = url
	}
}

func (p *BinanceProvider) Name() ProviderType {
	return ProviderBinance
}

func (p *BinanceProvider) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (types.CandleSeries, error) {
	pair := NormalizeBinanceSymbol(symbol)

	klines, err := p.apiClient.NewKlinesService().
		Symbol(pair).
		Interval(BinanceInterval(timeframe)).
		Limit(limitOrDefault(limit)).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines from Binance", pair)
	}

	if len(klines) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "binance returned no klines for %s", pair)
	}

	return convertKlines(klines)
}

// convertKlines converts Binance klines, timestamped at their open time.
func convertKlines(klines []*binance.Kline) (types.CandleSeries, error) {
	series := make(types.CandleSeries, 0, len(klines))

	for _, k := range klines {
		if k == nil {
			continue
		}

		values := make([]float64, 5)
		for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline value %q", raw)
			}

			values[i] = v
		}

		series = append(series, types.Candle{
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return series, nil
}
