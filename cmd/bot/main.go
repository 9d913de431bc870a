package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"DipSentry/internal/config"
	"DipSentry/internal/exchange"
	"DipSentry/internal/marketdata"
	"DipSentry/internal/notifier"
	"DipSentry/internal/portfolio"
	"DipSentry/internal/recorder"
	"DipSentry/internal/scheduler"
	"DipSentry/internal/simulator"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		runBacktest(os.Args[2:])
	case "run":
		runLive(os.Args[2:])
	default:
		log.Printf("[ERROR] unknown command %q", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `DipSentry - fear & greed basket trading bot

Usage:
  bot backtest --days N [--config path]   replay the trailing N days of data
  bot run [--config path]                 run the live trading cycle
`)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	return cfg
}

func openRecorder(sqlitePath string) recorder.Recorder {
	if sqlitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(sqlitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return rec
}

func runBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	days := fs.Int("days", 30, "number of trailing days to replay")
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *days <= 0 {
		log.Fatalf("[FATAL] --days must be positive, got %d", *days)
	}

	rec := openRecorder(cfg.Database.SQLitePath)
	defer rec.Close()

	source := marketdata.NewFileSource(cfg.DataDir, cfg.Assets.CryptoSymbol, *days)
	result, err := simulator.NewRunner(cfg, source, rec).Run(*days)
	if err != nil {
		log.Fatalf("[FATAL] backtest: %v", err)
	}

	fmt.Println(notifier.FormatBacktestReport(result))

	if path, err := simulator.SaveResult(cfg.DataDir, result); err != nil {
		log.Printf("[ERROR] save result: %v", err)
	} else {
		log.Printf("[INFO] backtest result saved to %s", path)
	}
}

func runLive(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if cfg.Mode != config.ModeLive {
		log.Fatalf("[FATAL] run requires mode %q, config has %q", config.ModeLive, cfg.Mode)
	}

	// An unreadable or corrupt state file is fatal in live mode: resuming
	// from the wrong state would double-spend capital.
	mgr, err := portfolio.NewManager(cfg.StateFile, cfg.Assets.InitialFiatAmount, cfg.Assets.InitialCryptoAmount)
	if err != nil {
		log.Fatalf("[FATAL] init portfolio state: %v", err)
	}

	ex, err := buildExchange(cfg)
	if err != nil {
		log.Fatalf("[FATAL] init exchange: %v", err)
	}
	log.Printf("[INFO] exchange: %s (sandbox: %v)", ex.Name(), cfg.Exchange.Sandbox)

	rec := openRecorder(cfg.Database.SQLitePath)
	defer rec.Close()

	sim := simulator.New(cfg, mgr.State())
	tn := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	fg := marketdata.NewFearGreedClient(cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, cfg, ex, fg, mgr, sim, tn, rec)
	if err := sched.Register(cfg.Schedule.CycleCron); err != nil {
		log.Fatalf("[FATAL] register trading cycle: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] DipSentry is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}

// buildExchange selects the exchange client by configured name. Only the
// snapshot-backed mock exists today; a real client plugs in behind the same
// contract.
func buildExchange(cfg *config.Config) (exchange.Client, error) {
	switch cfg.Exchange.Name {
	case "mock":
		symbol := cfg.Assets.CryptoSymbol
		// Seed from the most recent historical data when present so sandbox
		// cycles have a price to quote.
		if snaps, err := marketdata.NewFileSource(cfg.DataDir, symbol, 30).Snapshots(); err == nil {
			c := exchange.NewBacktestClient(symbol, snaps)
			c.SetIndex(len(snaps) - 1)
			return c, nil
		}
		return exchange.NewBacktestClient(symbol, nil), nil
	default:
		return nil, fmt.Errorf("exchange %q not implemented", cfg.Exchange.Name)
	}
}
