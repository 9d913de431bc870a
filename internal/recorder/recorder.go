package recorder

import (
	"time"

	"DipSentry/internal/model"
)

// TickRecord is one per-tick observation of the portfolio.
type TickRecord struct {
	Timestamp      time.Time
	Price          float64
	FearGreed      int
	PortfolioValue float64
	FiatBalance    float64
	OpenBaskets    int
}

// Recorder persists trade history for later analysis. Recording failures are
// logged by callers, never fatal: the recorder is an observer, not a
// participant, of the simulation.
type Recorder interface {
	RecordTrade(evt *model.TradeEvent) error
	RecordTick(rec *TickRecord) error
	RecordBacktestResult(res *model.BacktestResult) error
	Close() error
}
