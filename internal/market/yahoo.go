package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shanehull/movers/internal/types"
)

const (
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooChartPath = "/v8/finance/chart/%s?interval=1m&range=1d&includePrePost=false"
	yahooUserAgent = "Mozilla/5.0"
)

// YahooFetcher reads minute bars from the Yahoo Finance chart API.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
}

func NewYahooFetcher(client *http.Client) *YahooFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &YahooFetcher{Client: client, BaseURL: yahooBaseURL}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchIntradayBars(ctx context.Context, ticker string) ([]types.PriceBar, error) {
	u := f.BaseURL + fmt.Sprintf(yahooChartPath, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", ticker, err)
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart for %s: %w", ticker, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Warning: Failed to close response body for %s: %v", ticker, err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart body for %s: %w", ticker, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("received non-OK status code %d for %s", resp.StatusCode, ticker)
		}
		return nil, fmt.Errorf("failed to decode chart for %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s (%s)", ticker, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code %d for %s", resp.StatusCode, ticker)
	}

	return parseChart(chart), nil
}

// parseChart flattens the columnar chart payload, dropping bars with no open or close.
func parseChart(chart yahooChart) []types.PriceBar {
	if len(chart.Chart.Result) == 0 {
		return nil
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]types.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okOpen := at(quote.Open, i)
		c, okClose := at(quote.Close, i)
		if !okOpen || !okClose {
			continue
		}
		h, _ := at(quote.High, i)
		l, _ := at(quote.Low, i)
		v, _ := at(quote.Volume, i)

		bars = append(bars, types.PriceBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}
