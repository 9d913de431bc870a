package model

import "time"

// BuySignal is the output of the signal evaluator for one tick.
// DipMagnitude is the fractional decline from the recent high, clamped to
// [dip_threshold, 1]; it is zero when only the sentiment trigger fired, so
// no dip-based scaling applies in that case.
type BuySignal struct {
	Active             bool
	DipMagnitude       float64
	SentimentTriggered bool
	DipTriggered       bool
}

// TradeSide marks a trade event as a buy or a sell.
type TradeSide string

const (
	TradeBuy  TradeSide = "BUY"
	TradeSell TradeSide = "SELL"
)

// TradeEvent records one committed buy or sell against the portfolio.
// The sequence of trade events of a run is its reproducible audit log.
type TradeEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	Side           TradeSide `json:"side"`
	BasketID       int64     `json:"basket_id"`
	Price          float64   `json:"price"`
	Quantity       float64   `json:"quantity"`
	Amount         float64   `json:"amount"`
	RealizedProfit float64   `json:"realized_profit,omitempty"`
	FearGreed      int       `json:"fear_greed"`
	DipMagnitude   float64   `json:"dip_magnitude,omitempty"`
}
