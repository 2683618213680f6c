package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"github.com/rxtech-lab/argo-strategy-lab/pkg/errors"
)

// PolygonAggsIterator is the iterator returned by ListAggs.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient abstracts the Polygon REST client so tests can substitute it.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

type PolygonProvider struct {
	apiClient PolygonAPIClient
	now       func() time.Time
}

func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "polygon provider requires an API key")
	}

	return NewPolygonProviderWithAPI(&polygonAPIAdapter{client: polygon.New(apiKey)}), nil
}

// NewPolygonProviderWithAPI creates a provider over a custom API client.
func NewPolygonProviderWithAPI(apiClient PolygonAPIClient) *PolygonProvider {
	return &PolygonProvider{
		apiClient: apiClient,
		now:       time.Now,
	}
}

func (p *PolygonProvider) Name() ProviderType {
	return ProviderPolygon
}

// Candles lists aggregates over a window ending now that is wide enough for
// limit bars, then keeps the most recent limit of them. The window is doubled
// to cover market closures.
func (p *PolygonProvider) Candles(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (types.CandleSeries, error) {
	limit = limitOrDefault(limit)
	multiplier, timespan := PolygonTimespan(timeframe)
	end := p.now()
	start := end.Add(-2 * time.Duration(limit) * Duration(timeframe))

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithOrder(models.Asc).WithLimit(50000)

	iter := p.apiClient.ListAggs(ctx, params)

	series := types.CandleSeries{}
	for iter.Next() {
		agg := iter.Item()
		series = append(series, types.Candle{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to list %s aggregates from Polygon", symbol)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "polygon returned no aggregates for %s", symbol)
	}

	return series.Tail(limit), nil
}
