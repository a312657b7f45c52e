/*
Package movers computes the opening-window price change of each ticker and ranks the
largest movers.
*/
package movers

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shanehull/movers/internal/market"
	"github.com/shanehull/movers/internal/types"
)

const DefaultTopN = 5

var (
	windowOpen  = clock{9, 30}
	windowClose = clock{10, 0}
	hundred     = decimal.NewFromInt(100)
)

type clock struct{ hour, minute int }

func (c clock) on(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, loc)
}

// Calculator ranks tickers by their open-to-10:00 move in exchange-local time.
type Calculator struct {
	Fetcher  market.BarFetcher
	Location *time.Location
	TopN     int
}

func NewCalculator(fetcher market.BarFetcher, loc *time.Location, topN int) *Calculator {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Calculator{Fetcher: fetcher, Location: loc, TopN: topN}
}

// Window returns the inclusive 09:30 to 10:00 window for the exchange-local date of now.
func (c *Calculator) Window(now time.Time) (start, end time.Time) {
	local := now.In(c.Location)
	return windowOpen.on(local, c.Location), windowClose.on(local, c.Location)
}

// Calculate processes tickers one at a time and returns the ranked report along with
// the outcome of every ticker. A failing ticker never aborts the batch.
func (c *Calculator) Calculate(ctx context.Context, tickers []string, now time.Time) (types.RankedReport, []types.TickerResult) {
	start, end := c.Window(now)
	report := types.RankedReport{
		Date:        time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.Location),
		WindowStart: start,
		WindowEnd:   end,
	}

	results := make([]types.TickerResult, 0, len(tickers))
	var records []types.ChangeRecord

	for i, ticker := range tickers {
		log.Printf("Processing... %d/%d (%s)", i+1, len(tickers), ticker)

		res := c.processTicker(ctx, ticker, start, end)
		results = append(results, res)

		switch {
		case res.Record != nil:
			records = append(records, *res.Record)
		case res.Err != nil:
			log.Printf("Error processing %s: %v", ticker, res.Err)
		default:
			log.Printf("Skipping %s: %s", ticker, res.Skip)
		}
	}

	report.Records = Rank(records, c.TopN)
	return report, results
}

func (c *Calculator) processTicker(ctx context.Context, ticker string, start, end time.Time) (res types.TickerResult) {
	res.Ticker = ticker
	defer func() {
		if r := recover(); r != nil {
			res = types.TickerResult{Ticker: ticker, Skip: types.SkipFetchError, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	bars, err := c.Fetcher.FetchIntradayBars(ctx, ticker)
	if err != nil {
		res.Skip = types.SkipFetchError
		res.Err = err
		return res
	}
	if len(bars) == 0 {
		res.Skip = types.SkipNoData
		return res
	}

	record, skip := ComputeChange(ticker, bars, start, end, c.Location)
	if skip != types.SkipNone {
		res.Skip = skip
		return res
	}
	res.Record = &record
	return res
}

// FilterWindow keeps the bars whose exchange-local timestamp lies in [start, end].
func FilterWindow(bars []types.PriceBar, start, end time.Time, loc *time.Location) []types.PriceBar {
	var out []types.PriceBar
	for _, b := range bars {
		t := b.Time.In(loc)
		if t.Before(start) || t.After(end) {
			continue
		}
		b.Time = t
		out = append(out, b)
	}
	return out
}

// ComputeChange derives a ChangeRecord from the first open and last close inside the
// window. It needs at least two bars in the window and a non-zero open.
func ComputeChange(ticker string, bars []types.PriceBar, start, end time.Time, loc *time.Location) (types.ChangeRecord, types.SkipReason) {
	window := FilterWindow(bars, start, end, loc)
	if len(window) < 2 {
		return types.ChangeRecord{}, types.SkipInsufficientWindow
	}

	open := decimal.NewFromFloat(window[0].Open)
	last := decimal.NewFromFloat(window[len(window)-1].Close)
	if open.IsZero() {
		return types.ChangeRecord{}, types.SkipZeroOpen
	}

	change := last.Sub(open)
	return types.ChangeRecord{
		Ticker:        ticker,
		Open:          open,
		WindowClose:   last,
		Change:        change,
		PercentChange: change.Div(open).Mul(hundred),
	}, types.SkipNone
}

// Rank stable-sorts records by descending absolute percent change and keeps the first
// topN. Equal magnitudes keep their input order.
func Rank(records []types.ChangeRecord, topN int) []types.ChangeRecord {
	if len(records) == 0 {
		return nil
	}
	ranked := make([]types.ChangeRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PercentChange.Abs().GreaterThan(ranked[j].PercentChange.Abs())
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
