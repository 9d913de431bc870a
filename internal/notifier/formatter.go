package notifier

import (
	"fmt"
	"strings"

	"DipSentry/internal/model"
)

// FormatTradeEvent renders one committed trade for a live notification.
func FormatTradeEvent(evt *model.TradeEvent, symbol string) string {
	switch evt.Side {
	case model.TradeBuy:
		msg := fmt.Sprintf("🛒 <b>Basket %d opened</b>\n\n%s: %.6f @ %.2f\nInvested: %.2f\nF&amp;G: %d",
			evt.BasketID, symbol, evt.Quantity, evt.Price, evt.Amount, evt.FearGreed)
		if evt.DipMagnitude > 0 {
			msg += fmt.Sprintf("\nDip: %.2f%% below recent high", evt.DipMagnitude*100)
		}
		return msg
	case model.TradeSell:
		return fmt.Sprintf("💰 <b>Basket %d closed</b>\n\n%s: %.6f @ %.2f\nProceeds: %.2f\nProfit: %+.2f",
			evt.BasketID, symbol, evt.Quantity, evt.Price, evt.Amount, evt.RealizedProfit)
	default:
		return fmt.Sprintf("trade %s basket %d @ %.2f", evt.Side, evt.BasketID, evt.Price)
	}
}

// FormatPortfolioStatus renders balances, open baskets, and trade statistics.
func FormatPortfolioStatus(state *model.PortfolioState, currentPrice float64, cryptoSymbol string) string {
	stats := state.Statistics()
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>Portfolio</b>\n\n")
	fmt.Fprintf(&b, "Value: %.2f\n", state.TotalValue(currentPrice))
	fmt.Fprintf(&b, "Fiat: %.2f | %s: %.6f\n", state.FiatBalance, cryptoSymbol, state.CryptoBalance)
	fmt.Fprintf(&b, "Open baskets: %d\n", stats.OpenBasketCount)

	for i := range state.Baskets {
		basket := &state.Baskets[i]
		if basket.Status != model.BasketOpen {
			continue
		}
		fmt.Fprintf(&b, "  • #%d: %.6f @ %.2f → target %.2f (P&amp;L %+.2f)\n",
			basket.ID, basket.Quantity, basket.BuyPrice, basket.TargetSellPrice,
			basket.ProfitAt(currentPrice))
	}

	fmt.Fprintf(&b, "\nTrades: %d | Wins: %d (%.1f%%)\n", stats.TotalTrades, stats.ProfitableTrades, stats.WinRate)
	fmt.Fprintf(&b, "Total profit: %+.2f", stats.TotalProfit)
	return b.String()
}

// FormatBacktestReport renders a finished backtest for console or chat.
func FormatBacktestReport(res *model.BacktestResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== BACKTEST RESULTS ===\n")
	fmt.Fprintf(&b, "Period: %d days (%s to %s)\n", res.PeriodDays,
		res.StartDate.Format("2006-01-02"), res.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Ticks: %d (%d data gaps)\n", res.TicksProcessed, res.DataGaps)
	fmt.Fprintf(&b, "Initial portfolio value: %.2f\n", res.InitialPortfolioValue)
	fmt.Fprintf(&b, "Final portfolio value:   %.2f\n", res.FinalPortfolioValue)
	fmt.Fprintf(&b, "Total return: %+.2f (%+.2f%%)\n", res.TotalReturn, res.TotalReturnPercent)
	fmt.Fprintf(&b, "Trades: %d | Profitable: %d | Win rate: %.2f%%\n",
		res.TotalTrades, res.ProfitableTrades, res.WinRate)
	fmt.Fprintf(&b, "Max drawdown: %.2f (%.2f%%)\n", res.MaxDrawdown, res.MaxDrawdownPercent)
	fmt.Fprintf(&b, "========================")
	return b.String()
}
