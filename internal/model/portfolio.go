package model

import "time"

// PortfolioState is the full persisted state of a run: balances, every basket
// ever opened (open and closed, in id order), and the cumulative metrics.
// It is created once per run and mutated exactly once per tick, by a single
// owner.
type PortfolioState struct {
	FiatBalance   float64            `json:"fiat_balance"`
	CryptoBalance float64            `json:"crypto_balance"`
	Baskets       []Basket           `json:"baskets"`
	NextBasketID  int64              `json:"next_basket_id"`
	TotalInvested float64            `json:"total_invested"`
	TotalProfit   float64            `json:"total_profit"`
	Metrics       PerformanceMetrics `json:"metrics"`
	LastUpdate    time.Time          `json:"last_update"`
}

// NewPortfolioState creates a fresh state with the configured starting
// balances and no baskets.
func NewPortfolioState(initialFiat, initialCrypto float64) *PortfolioState {
	return &PortfolioState{
		FiatBalance:   initialFiat,
		CryptoBalance: initialCrypto,
		Baskets:       []Basket{},
		NextBasketID:  1,
	}
}

// OpenCount returns the number of baskets currently open.
func (s *PortfolioState) OpenCount() int {
	n := 0
	for i := range s.Baskets {
		if s.Baskets[i].Status == BasketOpen {
			n++
		}
	}
	return n
}

// TotalValue is the portfolio valuation at the given price: fiat plus the
// free crypto balance plus every open basket marked to market.
func (s *PortfolioState) TotalValue(currentPrice float64) float64 {
	total := s.FiatBalance + s.CryptoBalance*currentPrice
	for i := range s.Baskets {
		if s.Baskets[i].Status == BasketOpen {
			total += s.Baskets[i].CurrentValue(currentPrice)
		}
	}
	return total
}

// PortfolioStatistics summarizes the trade history of a state.
type PortfolioStatistics struct {
	TotalTrades      int
	ProfitableTrades int
	WinRate          float64
	TotalProfit      float64
	AvgProfitPercent float64
	OpenBasketCount  int
}

// Statistics recomputes trade statistics from the basket history.
func (s *PortfolioState) Statistics() PortfolioStatistics {
	stats := PortfolioStatistics{
		TotalProfit:     s.TotalProfit,
		OpenBasketCount: s.OpenCount(),
	}
	var profitPctSum float64
	for i := range s.Baskets {
		b := &s.Baskets[i]
		if b.Status != BasketClosed {
			continue
		}
		stats.TotalTrades++
		if b.RealizedProfit > 0 {
			stats.ProfitableTrades++
		}
		profitPctSum += b.ProfitPercentAt(b.SellPrice)
	}
	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.ProfitableTrades) / float64(stats.TotalTrades) * 100
		stats.AvgProfitPercent = profitPctSum / float64(stats.TotalTrades)
	}
	return stats
}
