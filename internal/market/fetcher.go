/*
Package market provides intraday bar providers and exchange calendar helpers.
*/
package market

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shanehull/movers/internal/types"
)

const defaultTimeout = 30 * time.Second

// BarFetcher returns one trading day of one-minute bars for a ticker.
// An empty slice with a nil error means the provider has no data for the symbol.
type BarFetcher interface {
	FetchIntradayBars(ctx context.Context, ticker string) ([]types.PriceBar, error)
	Name() string
}

// NewFetcher builds the provider selected by name.
func NewFetcher(provider, polygonAPIKey string) (BarFetcher, error) {
	client := &http.Client{Timeout: defaultTimeout}

	switch provider {
	case "", "yahoo":
		return NewYahooFetcher(client), nil
	case "polygon":
		if polygonAPIKey == "" {
			return nil, fmt.Errorf("polygon provider requires an API key")
		}
		return NewPolygonFetcher(polygonAPIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}
