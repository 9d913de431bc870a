package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"DipSentry/internal/config"
	"DipSentry/internal/exchange"
	"DipSentry/internal/marketdata"
	"DipSentry/internal/model"
	"DipSentry/internal/notifier"
	"DipSentry/internal/portfolio"
	"DipSentry/internal/recorder"
	"DipSentry/internal/simulator"
)

// Scheduler runs the live trading cycle on a cron schedule. Each cycle is
// one tick: fetch the current price and sentiment, advance the simulator,
// mirror committed trades to the exchange, persist, notify, record. The
// portfolio manager serializes every mutation, so a slow cycle can never
// overlap a fast one on the state.
type Scheduler struct {
	Cron      *cron.Cron
	Cfg       *config.Config
	Exchange  exchange.Client
	FearGreed *marketdata.FearGreedClient
	Manager   *portfolio.Manager
	Simulator *simulator.Simulator
	Notifier  *notifier.Telegram
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a scheduler wired to all live-mode collaborators.
func NewScheduler(ctx context.Context, cfg *config.Config, ex exchange.Client, fg *marketdata.FearGreedClient,
	mgr *portfolio.Manager, sim *simulator.Simulator, tn *notifier.Telegram, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cfg:       cfg,
		Exchange:  ex,
		FearGreed: fg,
		Manager:   mgr,
		Simulator: sim,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register schedules the trading cycle.
func (s *Scheduler) Register(cycleCron string) error {
	if _, err := s.Cron.AddFunc(cycleCron, s.RunCycleNow); err != nil {
		return fmt.Errorf("register trading cycle: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes one trading cycle immediately.
func (s *Scheduler) RunCycleNow() {
	if err := s.runCycle(); err != nil {
		log.Printf("[ERROR] trading cycle: %v", err)
	}
}

func (s *Scheduler) runCycle() error {
	select {
	case <-s.Ctx.Done():
		return s.Ctx.Err()
	default:
	}

	symbol := s.Cfg.Assets.CryptoSymbol
	log.Printf("[INFO] starting trading cycle for %s", symbol)

	prices, err := s.Exchange.GetPrices([]string{symbol})
	if err != nil {
		if exchange.IsTransient(err) {
			log.Printf("[WARN] transient exchange failure, cycle skipped: %v", err)
			return nil
		}
		return fmt.Errorf("get prices: %w", err)
	}
	if len(prices) == 0 {
		return fmt.Errorf("no price returned for %s", symbol)
	}

	snap := model.MarketSnapshot{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Price:     prices[0].Price,
		FearGreed: s.currentFearGreed(),
	}

	var events []model.TradeEvent
	err = s.Manager.Do(func(state *model.PortfolioState) error {
		events = s.Simulator.Tick(snap)
		return nil
	})
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	s.mirrorOrders(events)

	for i := range events {
		if err := s.Recorder.RecordTrade(&events[i]); err != nil {
			log.Printf("[ERROR] record trade: %v", err)
		}
		s.trySend(notifier.FormatTradeEvent(&events[i], symbol))
	}
	state := s.Manager.State()
	if err := s.Recorder.RecordTick(&recorder.TickRecord{
		Timestamp:      snap.Timestamp,
		Price:          snap.Price,
		FearGreed:      snap.FearGreed,
		PortfolioValue: state.TotalValue(snap.Price),
		FiatBalance:    state.FiatBalance,
		OpenBaskets:    state.OpenCount(),
	}); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}

	log.Printf("[INFO] trading cycle completed: %d trades, portfolio value %.2f",
		len(events), state.TotalValue(snap.Price))
	return nil
}

// currentFearGreed fetches the live index, falling back to the default fear
// value when the API is unreachable so a sentiment outage never stalls the
// cycle.
func (s *Scheduler) currentFearGreed() int {
	idx, err := s.FearGreed.Current()
	if err != nil {
		log.Printf("[WARN] fear & greed fetch failed, using default %d: %v", marketdata.DefaultFearGreed, err)
		return marketdata.DefaultFearGreed
	}
	log.Printf("[INFO] fear & greed index: %d (%s)", idx.Value, idx.Classification)
	return idx.Value
}

// mirrorOrders places the tick's committed trades on the exchange. Failures
// are logged with their transient/permanent classification; retry policy
// belongs to the exchange implementation, not here.
func (s *Scheduler) mirrorOrders(events []model.TradeEvent) {
	symbol := s.Cfg.Assets.CryptoSymbol
	for i := range events {
		evt := &events[i]
		var err error
		switch evt.Side {
		case model.TradeBuy:
			_, err = s.Exchange.Buy(symbol, evt.Amount)
		case model.TradeSell:
			_, err = s.Exchange.Sell(symbol, evt.Quantity)
		}
		if err != nil {
			if exchange.IsTransient(err) {
				log.Printf("[WARN] transient order failure for basket %d: %v", evt.BasketID, err)
			} else {
				log.Printf("[ERROR] order rejected for basket %d: %v", evt.BasketID, err)
			}
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
