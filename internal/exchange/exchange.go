package exchange

import (
	"errors"
	"fmt"
	"time"
)

// Price is one quoted price for a symbol.
type Price struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSide marks an order as a buy or a sell.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// OrderResult describes an executed order.
type OrderResult struct {
	OrderID   string    `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Side      OrderSide `json:"side"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Fee       float64   `json:"fee"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is the capability contract the trading core depends on. In backtest
// mode it is satisfied by the snapshot-driven BacktestClient with no network
// I/O; a live implementation owns its own retry policy.
type Client interface {
	GetPrices(symbols []string) ([]Price, error)
	Buy(symbol string, amount float64) (OrderResult, error)
	Sell(symbol string, quantity float64) (OrderResult, error)
	Name() string
}

// Error is a typed exchange failure. Transient failures (network, rate
// limits) may be retried by the caller; permanent ones (rejected order,
// insufficient exchange balance) must not.
type Error struct {
	Op        string
	Transient bool
	Err       error
}

func (e *Error) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("exchange %s: %s: %v", e.Op, kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransient reports whether err is a transient exchange failure.
func IsTransient(err error) bool {
	var ee *Error
	return errors.As(err, &ee) && ee.Transient
}
