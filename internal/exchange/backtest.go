package exchange

import (
	"fmt"
	"sync"

	"DipSentry/internal/model"
)

// BacktestClient satisfies the Client contract from a preloaded snapshot
// series. Orders fill instantly at the snapshot price of the current index,
// with no fees, slippage, or partial fills.
type BacktestClient struct {
	mu        sync.Mutex
	symbol    string
	snapshots []model.MarketSnapshot
	index     int
	orderSeq  int64
}

// NewBacktestClient creates a client serving prices for one symbol from the
// given ordered snapshots.
func NewBacktestClient(symbol string, snapshots []model.MarketSnapshot) *BacktestClient {
	return &BacktestClient{symbol: symbol, snapshots: snapshots}
}

func (c *BacktestClient) Name() string { return "backtest" }

// SetIndex positions the client at the given snapshot, clamped to the series.
func (c *BacktestClient) SetIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.snapshots); i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	c.index = i
}

func (c *BacktestClient) current() (model.MarketSnapshot, error) {
	if len(c.snapshots) == 0 {
		return model.MarketSnapshot{}, &Error{Op: "get_prices", Transient: false, Err: fmt.Errorf("no snapshot data loaded")}
	}
	return c.snapshots[c.index], nil
}

func (c *BacktestClient) GetPrices(symbols []string) ([]Price, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	prices := make([]Price, 0, len(symbols))
	for _, s := range symbols {
		if s != c.symbol {
			continue
		}
		prices = append(prices, Price{Symbol: s, Price: snap.Price, Timestamp: snap.Timestamp})
	}
	return prices, nil
}

func (c *BacktestClient) Buy(symbol string, amount float64) (OrderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.current()
	if err != nil {
		return OrderResult{}, err
	}
	if symbol != c.symbol {
		return OrderResult{}, &Error{Op: "buy", Transient: false, Err: fmt.Errorf("unknown symbol %q", symbol)}
	}
	if amount <= 0 {
		return OrderResult{}, &Error{Op: "buy", Transient: false, Err: fmt.Errorf("amount must be positive, got %g", amount)}
	}
	c.orderSeq++
	return OrderResult{
		OrderID:   fmt.Sprintf("backtest_buy_%d", c.orderSeq),
		Symbol:    symbol,
		Side:      SideBuy,
		Quantity:  amount / snap.Price,
		Price:     snap.Price,
		Timestamp: snap.Timestamp,
	}, nil
}

func (c *BacktestClient) Sell(symbol string, quantity float64) (OrderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.current()
	if err != nil {
		return OrderResult{}, err
	}
	if symbol != c.symbol {
		return OrderResult{}, &Error{Op: "sell", Transient: false, Err: fmt.Errorf("unknown symbol %q", symbol)}
	}
	if quantity <= 0 {
		return OrderResult{}, &Error{Op: "sell", Transient: false, Err: fmt.Errorf("quantity must be positive, got %g", quantity)}
	}
	c.orderSeq++
	return OrderResult{
		OrderID:   fmt.Sprintf("backtest_sell_%d", c.orderSeq),
		Symbol:    symbol,
		Side:      SideSell,
		Quantity:  quantity,
		Price:     snap.Price,
		Timestamp: snap.Timestamp,
	}, nil
}
