package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shanehull/movers/internal/ai"
	"github.com/shanehull/movers/internal/app"
	"github.com/shanehull/movers/internal/config"
	"github.com/shanehull/movers/internal/market"
	"github.com/shanehull/movers/internal/movers"
	"github.com/shanehull/movers/internal/notify"
	"github.com/shanehull/movers/internal/scheduler"
)

const (
	exitOK          = 0
	exitRunFailed   = 1
	exitConfigError = 2
)

var (
	configPath = flag.String("config", "movers.yaml", "(-c) Path to an optional YAML config file")
	envFile    = flag.String("env-file", ".env", "Path to an optional .env file")
	noEmail    = flag.Bool("no-email", false, "(-n) Print the report without sending email")
	schedule   = flag.String("schedule", "", "Cron spec with seconds field; run as a daemon in exchange time (e.g. '0 1 10 * * 1-5')")
	tickerStr  = flag.String("tickers", "", "(-t) Comma-separated tickers overriding the configured list")
	topN       = flag.Int("top", 0, "Number of movers to report (default: 5)")
)

func init() {
	flag.StringVar(configPath, "c", "movers.yaml", "(-c) Path to an optional YAML config file (shorthand)")
	flag.BoolVar(noEmail, "n", false, "(-n) Print the report without sending email (shorthand)")
	flag.StringVar(tickerStr, "t", "", "(-t) Comma-separated tickers overriding the configured list (shorthand)")

	flag.Usage = func() {
		flagSet := flag.CommandLine
		fmt.Printf("Usage of %s:\n", "movers")

		order := []string{
			"config",
			"env-file",
			"no-email",
			"schedule",
			"tickers",
			"top",
		}

		for _, name := range order {
			f := flagSet.Lookup(name)
			if f != nil {
				fmt.Printf("  -%s\n", f.Name)
				fmt.Printf("    %s\n", f.Usage)
			}
		}
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	path := *configPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path, *envFile)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return exitConfigError
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return exitConfigError
	}
	if !*noEmail {
		if err := cfg.ValidateMail(); err != nil {
			fmt.Printf("Configuration error: %v\n", err)
			fmt.Println("Set SENDER_EMAIL, SENDER_PASSWORD and RECIPIENT_EMAIL, or pass -no-email.")
			return exitConfigError
		}
	}

	exchange, err := market.LoadExchange(cfg.Exchange)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return exitConfigError
	}

	fetcher, err := market.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.PolygonAPIKey)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return exitConfigError
	}
	log.Printf("Data source: %s, exchange: %s (%s)", fetcher.Name(), exchange.MIC, exchange.Location)

	runner := &app.Runner{
		Calculator: movers.NewCalculator(fetcher, exchange.Location, cfg.TopN),
		Calendar:   exchange,
		Renderer:   notify.NewHTMLEmailRenderer(),
		Tickers:    cfg.Tickers,
		Out:        os.Stdout,
	}
	if !*noEmail {
		runner.Sender = notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   cfg.Email.SMTPUser,
			SMTPPass:   cfg.Email.SMTPPass,
			FromEmail:  cfg.Email.FromEmail,
			ToEmail:    cfg.Email.ToEmail,
		})
	}
	if c := ai.NewCommentator(cfg.AI.GeminiAPIKey, cfg.AI.Model); c.Enabled() {
		runner.Commentator = c
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Schedule != "" {
		return runScheduled(ctx, cfg.Schedule, exchange, runner)
	}

	if _, err := runner.Run(ctx); err != nil {
		var derr *app.DeliveryError
		if errors.As(err, &derr) {
			fmt.Printf("Error sending email: %v\n", derr.Err)
		} else {
			fmt.Printf("Fatal error: %v\n", err)
		}
		return exitRunFailed
	}
	return exitOK
}

func applyFlags(cfg *config.Config) {
	if *tickerStr != "" {
		cfg.Tickers = config.ParseTickers(*tickerStr)
	}
	if *topN != 0 {
		cfg.TopN = *topN
	}
	if *schedule != "" {
		cfg.Schedule = *schedule
	}
}

func runScheduled(ctx context.Context, spec string, exchange *market.Exchange, runner *app.Runner) int {
	sched, err := scheduler.NewScheduler(ctx, spec, exchange.Location, func(ctx context.Context) error {
		_, err := runner.Run(ctx)
		return err
	})
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return exitConfigError
	}

	sched.Start()
	log.Printf("Next report at %s", sched.Next().In(exchange.Location).Format("2006-01-02 15:04:05 MST"))

	<-ctx.Done()
	log.Printf("Shutdown signal received, stopping...")
	sched.Stop()
	return exitOK
}
