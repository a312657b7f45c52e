/*
Package notify handles reporting of the top movers via console output and email notifications.
*/
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/shanehull/movers/internal/types"
)

// ReportMovers prints the ranked report as a table.
func ReportMovers(w io.Writer, report types.RankedReport) {
	if report.Empty() {
		fmt.Fprintln(w, "\n-------------------------------------------")
		fmt.Fprintln(w, "No stock data available. Market may be closed or data unavailable.")
		fmt.Fprintln(w, "-------------------------------------------")
		return
	}

	fmt.Fprintln(w, "\n===========================================")
	fmt.Fprintf(w, "Top %d Stock Movers (%s)\n", len(report.Records), windowLabel(report))
	fmt.Fprintln(w, "===========================================")

	var sb strings.Builder
	writeTable(&sb, buildRows(report.Records))
	fmt.Fprint(w, sb.String())

	fmt.Fprintln(w, "===========================================")
}

// SummarizeSkips returns one line per skipped ticker, grouped by reason.
func SummarizeSkips(results []types.TickerResult) []string {
	order := []types.SkipReason{
		types.SkipFetchError,
		types.SkipNoData,
		types.SkipInsufficientWindow,
		types.SkipZeroOpen,
	}
	byReason := make(map[types.SkipReason][]string)
	for _, r := range results {
		if r.Record != nil || r.Skip == types.SkipNone {
			continue
		}
		byReason[r.Skip] = append(byReason[r.Skip], r.Ticker)
	}

	var lines []string
	for _, reason := range order {
		if tickers := byReason[reason]; len(tickers) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", reason, strings.Join(tickers, ", ")))
		}
	}
	return lines
}
