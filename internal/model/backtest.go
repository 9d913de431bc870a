package model

import "time"

// BacktestConfig echoes the strategy parameters a backtest ran with, so a
// saved result is self-describing.
type BacktestConfig struct {
	BasketCount            int     `json:"basket_count"`
	ProfitThresholdPercent float64 `json:"profit_threshold_percent"`
	MinInvestmentPercent   float64 `json:"min_investment_percent"`
	MaxInvestmentPercent   float64 `json:"max_investment_percent"`
	FearGreedThreshold     int     `json:"fear_greed_threshold"`
	BuyTheDipPercent       float64 `json:"buy_the_dip_percent"`
	DipWindowHours         int     `json:"dip_window_hours"`
}

// BacktestResult is the final output of a backtest run.
type BacktestResult struct {
	PeriodDays            int            `json:"period_days"`
	StartDate             time.Time      `json:"start_date"`
	EndDate               time.Time      `json:"end_date"`
	InitialPortfolioValue float64        `json:"initial_portfolio_value"`
	FinalPortfolioValue   float64        `json:"final_portfolio_value"`
	TotalReturn           float64        `json:"total_return"`
	TotalReturnPercent    float64        `json:"total_return_percent"`
	TotalTrades           int            `json:"total_trades"`
	ProfitableTrades      int            `json:"profitable_trades"`
	WinRate               float64        `json:"win_rate"`
	MaxDrawdown           float64        `json:"max_drawdown"`
	MaxDrawdownPercent    float64        `json:"max_drawdown_percent"`
	TicksProcessed        int            `json:"ticks_processed"`
	DataGaps              int            `json:"data_gaps"`
	Trades                []TradeEvent   `json:"trades"`
	ConfigUsed            BacktestConfig `json:"config_used"`
}
