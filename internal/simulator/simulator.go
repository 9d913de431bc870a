package simulator

import (
	"log"

	"DipSentry/internal/calculator"
	"DipSentry/internal/config"
	"DipSentry/internal/ledger"
	"DipSentry/internal/model"
	"DipSentry/internal/strategy"
)

// Simulator advances the portfolio by exactly one snapshot per Tick. Within
// a tick, sell conditions are settled before the buy evaluation, so freed
// capital is available to the same tick's buy. The simulator is the only
// writer of the portfolio state during a run; it is single-threaded by
// design and must stay that way for replays to be reproducible.
type Simulator struct {
	cfg    *config.Config
	state  *model.PortfolioState
	ledger *ledger.Ledger
	window *calculator.RollingHigh
	trades []model.TradeEvent
}

// New creates a simulator over the given state. The rolling price window
// starts empty; dip detection warms up as ticks arrive.
func New(cfg *config.Config, state *model.PortfolioState) *Simulator {
	return &Simulator{
		cfg:    cfg,
		state:  state,
		ledger: ledger.New(state, cfg.Trading.BasketCount, cfg.Trading.ProfitThresholdPercent),
		window: calculator.NewRollingHigh(cfg.Trading.DipWindowHours),
		trades: []model.TradeEvent{},
	}
}

// State returns the portfolio state the simulator mutates.
func (s *Simulator) State() *model.PortfolioState {
	return s.state
}

// Trades returns the full trade-event log accumulated so far.
func (s *Simulator) Trades() []model.TradeEvent {
	return s.trades
}

// Tick processes one snapshot to completion and returns the trades it
// committed. Order within a tick: advance the price window, close every
// open basket whose target is met, then evaluate the buy signal.
func (s *Simulator) Tick(snap model.MarketSnapshot) []model.TradeEvent {
	s.window.Push(snap.Price)

	var events []model.TradeEvent

	for _, b := range s.ledger.EvaluateClosures(snap.Price, snap.Timestamp) {
		proceeds := b.Quantity * snap.Price
		s.state.FiatBalance += proceeds
		s.state.TotalProfit += b.RealizedProfit
		s.state.Metrics.ObserveTrade(b.RealizedProfit)

		log.Printf("[INFO] sold basket %d at %.4f (bought at %.4f, profit %.4f)",
			b.ID, snap.Price, b.BuyPrice, b.RealizedProfit)

		events = append(events, model.TradeEvent{
			Timestamp:      snap.Timestamp,
			Side:           model.TradeSell,
			BasketID:       b.ID,
			Price:          snap.Price,
			Quantity:       b.Quantity,
			Amount:         proceeds,
			RealizedProfit: b.RealizedProfit,
			FearGreed:      snap.FearGreed,
		})
	}

	if evt, ok := s.evaluateBuy(snap); ok {
		events = append(events, evt)
	}

	s.state.Metrics.ObserveValue(s.state.TotalValue(snap.Price))
	s.state.LastUpdate = snap.Timestamp
	s.trades = append(s.trades, events...)
	return events
}

// evaluateBuy opens a new basket if the signal is active and both a slot and
// capital are available. Capacity and capital shortfalls skip the signal for
// this tick; they are not errors.
func (s *Simulator) evaluateBuy(snap model.MarketSnapshot) (model.TradeEvent, bool) {
	sig := strategy.EvaluateSignal(snap, s.window.High(), &s.cfg.Trading)
	if !sig.Active {
		return model.TradeEvent{}, false
	}

	if sig.SentimentTriggered {
		log.Printf("[INFO] fear & greed buy signal: %d < %d", snap.FearGreed, s.cfg.Trading.FearGreedThreshold)
	}
	if sig.DipTriggered {
		log.Printf("[INFO] buy the dip signal: %.2f%% below recent high (threshold %.2f%%)",
			sig.DipMagnitude*100, s.cfg.Trading.BuyTheDipPercent)
	}

	if !s.ledger.CanOpenNew() {
		log.Printf("[INFO] buy skipped: all basket slots occupied (%d/%d)",
			s.ledger.OpenCount(), s.cfg.Trading.BasketCount)
		return model.TradeEvent{}, false
	}

	// Fraction of the current fiat balance, not of the original capital, so
	// realized profit compounds into later buys.
	fraction := strategy.InvestmentFraction(sig.DipMagnitude, &s.cfg.Trading)
	amount := s.state.FiatBalance * fraction
	if amount > s.state.FiatBalance {
		amount = s.state.FiatBalance
	}
	if amount <= 0 {
		log.Printf("[INFO] buy skipped: no available capital")
		return model.TradeEvent{}, false
	}

	basket, err := s.ledger.Open(snap.Price, amount, snap.Timestamp)
	if err != nil {
		// CanOpenNew was checked above; reaching this means a bug, not a race.
		log.Printf("[ERROR] open basket: %v", err)
		return model.TradeEvent{}, false
	}
	s.state.FiatBalance -= amount
	s.state.TotalInvested += amount

	log.Printf("[INFO] opened basket %d: %.6f @ %.4f (invested %.4f, target %.4f)",
		basket.ID, basket.Quantity, basket.BuyPrice, amount, basket.TargetSellPrice)

	return model.TradeEvent{
		Timestamp:    snap.Timestamp,
		Side:         model.TradeBuy,
		BasketID:     basket.ID,
		Price:        snap.Price,
		Quantity:     basket.Quantity,
		Amount:       amount,
		FearGreed:    snap.FearGreed,
		DipMagnitude: sig.DipMagnitude,
	}, true
}
