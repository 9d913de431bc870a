package model

// PerformanceMetrics accumulates run statistics tick by tick. It is derived
// data: everything here is recomputable from the basket history and the
// portfolio value series.
type PerformanceMetrics struct {
	InitialPortfolioValue float64 `json:"initial_portfolio_value"`
	PeakPortfolioValue    float64 `json:"peak_portfolio_value"`
	TotalReturnPercent    float64 `json:"total_return_percent"`
	MaxDrawdown           float64 `json:"max_drawdown"`
	MaxDrawdownPercent    float64 `json:"max_drawdown_percent"`
	TradeCount            int     `json:"trade_count"`
	WinCount              int     `json:"win_count"`
}

// ObserveValue feeds one portfolio valuation into the return and drawdown
// tracking. The first observation fixes the initial value.
func (m *PerformanceMetrics) ObserveValue(value float64) {
	if m.InitialPortfolioValue == 0 {
		m.InitialPortfolioValue = value
	}
	if value > m.PeakPortfolioValue {
		m.PeakPortfolioValue = value
	} else if m.PeakPortfolioValue > 0 {
		drawdown := m.PeakPortfolioValue - value
		if drawdown > m.MaxDrawdown {
			m.MaxDrawdown = drawdown
			m.MaxDrawdownPercent = drawdown / m.PeakPortfolioValue * 100
		}
	}
	if m.InitialPortfolioValue > 0 {
		m.TotalReturnPercent = (value - m.InitialPortfolioValue) / m.InitialPortfolioValue * 100
	}
}

// ObserveTrade records one completed sell and whether it was profitable.
func (m *PerformanceMetrics) ObserveTrade(realizedProfit float64) {
	m.TradeCount++
	if realizedProfit > 0 {
		m.WinCount++
	}
}

// WinRate returns the percentage of completed trades that were profitable.
func (m *PerformanceMetrics) WinRate() float64 {
	if m.TradeCount == 0 {
		return 0
	}
	return float64(m.WinCount) / float64(m.TradeCount) * 100
}
