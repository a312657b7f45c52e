package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar is one minute of OHLCV data for a ticker.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// ChangeRecord is the open-to-window-close move of a single ticker.
type ChangeRecord struct {
	Ticker        string
	Open          decimal.Decimal
	WindowClose   decimal.Decimal
	Change        decimal.Decimal
	PercentChange decimal.Decimal
}

// RankedReport holds the top movers ordered by descending absolute percent change.
type RankedReport struct {
	Date        time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Records     []ChangeRecord
}

// Empty reports whether no ticker produced a record.
func (r RankedReport) Empty() bool {
	return len(r.Records) == 0
}

type SkipReason string

const (
	SkipNone               SkipReason = ""
	SkipNoData             SkipReason = "no_data"
	SkipInsufficientWindow SkipReason = "insufficient_window"
	SkipZeroOpen           SkipReason = "zero_open"
	SkipFetchError         SkipReason = "fetch_error"
)

// TickerResult is the outcome of processing one ticker: either a Record or a Skip reason.
type TickerResult struct {
	Ticker string
	Record *ChangeRecord
	Skip   SkipReason
	Err    error
}
