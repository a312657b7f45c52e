package market

import (
	"context"
	"fmt"
	"net/http"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/shanehull/movers/internal/types"
)

const polygonMaxBars = 50000

// PolygonFetcher reads the last 24 hours of minute aggregates from Polygon.
type PolygonFetcher struct {
	client *polygon.Client
	now    func() time.Time
}

func NewPolygonFetcher(apiKey string, httpClient *http.Client) *PolygonFetcher {
	return &PolygonFetcher{
		client: polygon.NewWithClient(apiKey, httpClient),
		now:    time.Now,
	}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func (f *PolygonFetcher) FetchIntradayBars(ctx context.Context, ticker string) ([]types.PriceBar, error) {
	now := f.now()

	params := &models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Minute,
		From:       models.Millis(now.Add(-24 * time.Hour)),
		To:         models.Millis(now.Add(time.Minute)),
	}
	limit := polygonMaxBars
	order := models.Asc
	adjusted := true
	params.Limit = &limit
	params.Order = &order
	params.Adjusted = &adjusted

	iter := f.client.ListAggs(ctx, params)
	var bars []types.PriceBar
	for iter.Next() {
		a := iter.Item()
		bars = append(bars, types.PriceBar{
			Time:   time.Time(a.Timestamp).UTC(),
			Open:   a.Open,
			High:   a.High,
			Low:    a.Low,
			Close:  a.Close,
			Volume: a.Volume,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list aggregates for %s: %w", ticker, err)
	}

	return bars, nil
}
