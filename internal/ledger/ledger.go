package ledger

import (
	"errors"
	"fmt"
	"time"

	"DipSentry/internal/model"
)

// ErrCapacityExceeded is returned by Open when every basket slot is taken.
// Callers are expected to check CanOpenNew first; the simulator is
// single-threaded, so this is a precondition failure, not a race.
var ErrCapacityExceeded = errors.New("basket capacity exceeded")

// Ledger owns the basket collection of a portfolio state for the duration of
// a run. It is the only writer of basket lifecycle transitions: baskets are
// created by Open and move Open -> Closed only via EvaluateClosures.
type Ledger struct {
	state           *model.PortfolioState
	capacity        int
	profitThreshold float64 // percent
}

// New creates a Ledger over the given state with the configured capacity
// ceiling and profit threshold.
func New(state *model.PortfolioState, capacity int, profitThresholdPercent float64) *Ledger {
	return &Ledger{state: state, capacity: capacity, profitThreshold: profitThresholdPercent}
}

// OpenCount returns the number of open baskets.
func (l *Ledger) OpenCount() int {
	return l.state.OpenCount()
}

// CanOpenNew reports whether a basket slot is free.
func (l *Ledger) CanOpenNew() bool {
	return l.state.OpenCount() < l.capacity
}

// Open creates a new basket at the given buy price. The profit target is
// fixed at creation: target = buy_price * (1 + profit_threshold/100).
func (l *Ledger) Open(buyPrice, investmentAmount float64, now time.Time) (*model.Basket, error) {
	if !l.CanOpenNew() {
		return nil, fmt.Errorf("open basket: %w", ErrCapacityExceeded)
	}
	if buyPrice <= 0 {
		return nil, fmt.Errorf("open basket: buy price must be positive, got %g", buyPrice)
	}

	basket := model.Basket{
		ID:              l.state.NextBasketID,
		BuyPrice:        buyPrice,
		Quantity:        investmentAmount / buyPrice,
		InvestedAmount:  investmentAmount,
		TargetSellPrice: buyPrice * (1 + l.profitThreshold/100),
		OpenedAt:        now,
		Status:          model.BasketOpen,
	}
	l.state.NextBasketID++
	l.state.Baskets = append(l.state.Baskets, basket)
	return &l.state.Baskets[len(l.state.Baskets)-1], nil
}

// EvaluateClosures closes every open basket whose target is met at the
// current price, full lot only, and returns the newly closed baskets.
// Baskets are scanned and closed in ascending id order (= ascending open
// time), so realized-profit accounting is reproducible when several close on
// the same tick.
func (l *Ledger) EvaluateClosures(currentPrice float64, now time.Time) []*model.Basket {
	var closed []*model.Basket
	for i := range l.state.Baskets {
		b := &l.state.Baskets[i]
		if b.Status != model.BasketOpen || !b.ShouldSell(currentPrice) {
			continue
		}
		closedAt := now
		b.Status = model.BasketClosed
		b.ClosedAt = &closedAt
		b.SellPrice = currentPrice
		b.RealizedProfit = b.Quantity*currentPrice - b.InvestedAmount
		closed = append(closed, b)
	}
	return closed
}
