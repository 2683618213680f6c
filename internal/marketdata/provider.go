// Package marketdata fetches OHLCV candle series and 24h tickers.
package marketdata

import (
	"context"

	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderBinance   ProviderType = "binance"
	ProviderPolygon   ProviderType = "polygon"
	ProviderSynthetic ProviderType = "synthetic"
	ProviderParquet   ProviderType = "parquet"
)

// DefaultLimit is the number of candles requested when the caller passes 0.
const DefaultLimit = 200

type Provider interface {
	// Name returns the provider type.
	Name() ProviderType
	// Candles returns up to limit of the most recent candles, oldest first.
	// The context can be used to cancel the request.
	Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (types.CandleSeries, error)
}

// ProviderConfig carries the settings any provider may need.
type ProviderConfig struct {
	PolygonAPIKey string `yaml:"polygon_api_key" json:"-"`
	BinanceURL    string `yaml:"binance_url" json:"binanceUrl,omitempty"`
	SyntheticSeed int64  `yaml:"synthetic_seed" json:"syntheticSeed"`
	// DataPath is the Parquet file read by the parquet provider.
	DataPath string `yaml:"data_path" json:"dataPath,omitempty"`
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerType ProviderType, config ProviderConfig) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		client := NewBinanceProvider()
		if config.BinanceURL != "" {
			client.SetBaseURL(config.BinanceURL)
		}

		return client, nil
	case ProviderPolygon:
		return NewPolygonProvider(config.PolygonAPIKey)
	case ProviderSynthetic:
		return NewSyntheticProvider(config.SyntheticSeed), nil
	case ProviderParquet:
		return NewParquetProvider(config.DataPath)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}

	return limit
}
