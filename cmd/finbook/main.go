// Command finbook wires the transaction tracker against the configured
// backends, prints the current financial summary, and optionally stays
// subscribed to the currency broadcast.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finbook/internal/amqp"
	"finbook/internal/backend"
	"finbook/internal/config"
	"finbook/internal/core"
	"finbook/internal/currency"
	"finbook/internal/log"
	"finbook/internal/notify"
	"finbook/internal/prefs"
	"finbook/internal/session"
	"finbook/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "finbook:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env for local development (ignore errors in production).
	_ = godotenv.Load()

	var (
		user   = flag.String("user", os.Getenv("FINBOOK_USER"), "authenticated user id")
		from   = flag.String("from", "", "range start (YYYY-MM-DD, inclusive)")
		to     = flag.String("to", "", "range end (YYYY-MM-DD, inclusive)")
		listen = flag.Bool("listen", false, "stay subscribed to currency broadcasts until interrupted")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(log.ComponentApp, log.Config{Level: cfg.LogLevel})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dateRange, err := parseRange(*from, *to)
	if err != nil {
		return err
	}

	res, err := backend.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Cleanup()
	logger.Info("backend ready", log.FieldBackend, cfg.StoreBackend)

	prefStore, err := prefs.Open(cfg.PrefsDBPath)
	if err != nil {
		return err
	}
	defer prefStore.Close()

	cur, err := prefStore.DisplayCurrency(ctx)
	if err != nil {
		return err
	}
	logger.Info("display currency loaded", log.FieldCurrencyCode, cur.Code)

	tr := tracker.New(res.Store, res.Audit, notify.NewLogNotifier(logger), logger, cur)
	bus := currency.NewBroadcaster()
	tr.Start(bus)
	defer tr.Stop()

	if *user != "" {
		ctx = session.WithUser(ctx, *user)
	}
	if err := tr.Fetch(ctx, dateRange); err != nil {
		return err
	}
	printSummary(tr)

	if !*listen {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("connect currency broadcast: %w", err)
		}
		defer client.Close()

		g.Go(func() error {
			err := client.ConsumeCurrencyChanges(gctx, func(msg *amqp.CurrencyChangeMessage) error {
				bus.Publish(msg.Event())
				// Persist the choice so the next start renders the same way.
				if err := prefStore.SetDisplayCurrency(gctx, core.DisplayCurrency{
					Code:   msg.Code,
					Symbol: msg.Symbol,
				}); err != nil {
					logger.Warn("failed to persist currency preference", log.FieldError, err)
				}
				printSummary(tr)
				return nil
			})
			if err == context.Canceled {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled, currency events stay in-process")
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", log.FieldOperation, log.OpShutdown)
		return nil
	})

	return g.Wait()
}

func parseRange(from, to string) (core.DateRange, error) {
	var r core.DateRange
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return r, fmt.Errorf("parse -from: %w", err)
		}
		r.Start = core.Date{Time: t}
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return r, fmt.Errorf("parse -to: %w", err)
		}
		r.End = core.Date{Time: t}
	}
	return r, nil
}

func printSummary(tr *tracker.Tracker) {
	s := tr.Summary()
	fmt.Printf("income: %s  expenses: %s  balance: %s  (%d transactions)\n",
		s.IncomeFormatted, s.ExpensesFormatted, s.BalanceFormatted, len(tr.Transactions()))
}
