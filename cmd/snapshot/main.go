package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/climapyg/climapyg-dashboard/internal/app"
	"github.com/climapyg/climapyg-dashboard/internal/config"
	"github.com/climapyg/climapyg-dashboard/internal/logger"
)

var errPanelsFailed = errors.New("one or more panels failed")

func main() {
	var opts app.SnapshotOptions
	var interval time.Duration
	flag.StringVar(&opts.City, "city", "", "city to fetch the weather for (catalog value, e.g. encarnacion)")
	flag.StringVar(&opts.Currency, "currency", "", "source currency code converted to PYG (e.g. USD)")
	flag.StringVar(&opts.Amount, "amount", "", "amount of the source currency")
	flag.StringVar(&opts.BTCAmount, "btc", "", "amount of BTC converted to PYG")
	flag.DurationVar(&interval, "interval", 0, "repeat every interval until interrupted (e.g. 5m); 0 runs once")
	flag.Parse()

	if err := run(opts, interval); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
		os.Exit(1)
	}
}

func run(opts app.SnapshotOptions, interval time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the YAML snapshot
	if cfg.LogFile == "" {
		cfg.LogFile = "stderr"
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewSnapshotRunner(ctx, cfg, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize snapshot runner", "error", err)
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.ErrorObj("sink close failed", "error", err)
		}
	}()

	if interval > 0 {
		return runner.Watch(ctx, opts, interval)
	}

	snap, err := runner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("snapshot run: %w", err)
	}
	if snap.Failed() {
		return errPanelsFailed
	}
	return nil
}
