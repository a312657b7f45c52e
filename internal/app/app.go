/*
Package app wires one report run: calculate the movers, print them, then email them.
*/
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/shanehull/movers/internal/ai"
	"github.com/shanehull/movers/internal/notify"
	"github.com/shanehull/movers/internal/types"
)

type Calculator interface {
	Calculate(ctx context.Context, tickers []string, now time.Time) (types.RankedReport, []types.TickerResult)
}

type Sender interface {
	Send(msg *notify.RenderedMessage) error
}

type Commentator interface {
	Enabled() bool
	Comment(ctx context.Context, report types.RankedReport) (*ai.Commentary, error)
}

type TradingCalendar interface {
	IsTradingDay(t time.Time) bool
}

// DeliveryError marks a failure to hand the report to the mail relay.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return "email delivery failed: " + e.Err.Error() }

func (e *DeliveryError) Unwrap() error { return e.Err }

// Result describes what a run did.
type Result struct {
	RunID        string
	Report       types.RankedReport
	Tickers      []types.TickerResult
	MarketClosed bool
	Emailed      bool
}

// Runner executes a single, fully sequential report run. Sender, Commentator and
// Calendar are optional.
type Runner struct {
	Calculator  Calculator
	Calendar    TradingCalendar
	Renderer    *notify.HTMLEmailRenderer
	Sender      Sender
	Commentator Commentator
	Tickers     []string
	Out         io.Writer
	Now         func() time.Time
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	res := Result{RunID: uuid.NewString()}
	log.Printf("Starting report run %s for %d tickers", res.RunID, len(r.Tickers))

	if r.Calendar != nil && !r.Calendar.IsTradingDay(now) {
		res.MarketClosed = true
		fmt.Fprintf(out, "Market is closed on %s. No report generated.\n", now.Format("2006-01-02"))
		return res, nil
	}

	fmt.Fprintln(out, "Fetching stock data...")
	res.Report, res.Tickers = r.Calculator.Calculate(ctx, r.Tickers, now)
	for _, line := range notify.SummarizeSkips(res.Tickers) {
		log.Printf("Skipped %s", line)
	}

	notify.ReportMovers(out, res.Report)
	if res.Report.Empty() {
		return res, nil
	}

	if r.Sender == nil {
		log.Printf("Email disabled. Run %s complete.", res.RunID)
		return res, nil
	}

	data := notify.ReportData{Report: res.Report, GeneratedAt: now}
	if r.Commentator != nil && r.Commentator.Enabled() {
		commentary, err := r.Commentator.Comment(ctx, res.Report)
		if err != nil {
			log.Printf("Warning: AI commentary failed: %v", err)
		} else {
			data.Commentary = commentary
		}
	}

	renderer := r.Renderer
	if renderer == nil {
		renderer = notify.NewHTMLEmailRenderer()
	}
	msg, err := renderer.Render(data)
	if err != nil {
		return res, fmt.Errorf("failed to render report email: %w", err)
	}

	fmt.Fprintln(out, "\nSending email...")
	if err := r.Sender.Send(msg); err != nil {
		return res, &DeliveryError{Err: err}
	}
	res.Emailed = true
	fmt.Fprintln(out, "Email sent successfully!")

	return res, nil
}
