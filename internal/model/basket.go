package model

import "time"

// BasketStatus is the lifecycle state of a basket. A basket opens once,
// closes at most once, and Closed is terminal.
type BasketStatus string

const (
	BasketOpen   BasketStatus = "OPEN"
	BasketClosed BasketStatus = "CLOSED"
)

// Basket is a single trade lot: bought in one piece at BuyPrice and sold in
// one piece once the price reaches TargetSellPrice. All fields except Status
// and the close fields are fixed at creation.
type Basket struct {
	ID              int64        `json:"id"`
	BuyPrice        float64      `json:"buy_price"`
	Quantity        float64      `json:"quantity"`
	InvestedAmount  float64      `json:"invested_amount"`
	TargetSellPrice float64      `json:"target_sell_price"`
	OpenedAt        time.Time    `json:"opened_at"`
	Status          BasketStatus `json:"status"`

	// Set exactly once when the basket closes.
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	SellPrice      float64    `json:"sell_price,omitempty"`
	RealizedProfit float64    `json:"realized_profit,omitempty"`
}

// ShouldSell reports whether the profit target is met at the given price.
func (b *Basket) ShouldSell(currentPrice float64) bool {
	return currentPrice >= b.TargetSellPrice
}

// CurrentValue is the market value of the lot at the given price.
func (b *Basket) CurrentValue(currentPrice float64) float64 {
	return b.Quantity * currentPrice
}

// ProfitAt is the unrealized profit of the lot at the given price.
func (b *Basket) ProfitAt(currentPrice float64) float64 {
	return b.CurrentValue(currentPrice) - b.InvestedAmount
}

// ProfitPercentAt is the unrealized profit relative to the buy price.
func (b *Basket) ProfitPercentAt(currentPrice float64) float64 {
	if b.BuyPrice == 0 {
		return 0
	}
	return (currentPrice - b.BuyPrice) / b.BuyPrice * 100
}
