package simulator

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"DipSentry/internal/config"
	"DipSentry/internal/marketdata"
	"DipSentry/internal/model"
	"DipSentry/internal/recorder"
)

// Runner drives the tick loop over an ordered snapshot sequence and rolls
// the per-tick observations up into a BacktestResult. Given the same source
// and configuration, two runs produce identical trade logs and metrics.
type Runner struct {
	cfg      *config.Config
	source   marketdata.Source
	recorder recorder.Recorder
}

// NewRunner creates a runner. A nil recorder falls back to the noop recorder.
func NewRunner(cfg *config.Config, source marketdata.Source, rec recorder.Recorder) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{cfg: cfg, source: source, recorder: rec}
}

// Run replays the full snapshot sequence against a fresh portfolio.
func (r *Runner) Run(periodDays int) (*model.BacktestResult, error) {
	snapshots, err := r.source.Snapshots()
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no historical data loaded")
	}

	state := model.NewPortfolioState(r.cfg.Assets.InitialFiatAmount, r.cfg.Assets.InitialCryptoAmount)
	sim := New(r.cfg, state)

	// The expected tick interval comes from the first spacing; anything more
	// than twice that is a data gap. A gap is logged and skipped over, it
	// does not abort the run.
	expected := time.Hour
	if len(snapshots) > 1 {
		if d := snapshots[1].Timestamp.Sub(snapshots[0].Timestamp); d > 0 {
			expected = d
		}
	}

	log.Printf("[INFO] starting backtest: %d ticks from %s to %s",
		len(snapshots),
		snapshots[0].Timestamp.Format(time.RFC3339),
		snapshots[len(snapshots)-1].Timestamp.Format(time.RFC3339))

	gaps := 0
	ticksPerDay := int(24 * time.Hour / expected)
	if ticksPerDay < 1 {
		ticksPerDay = 1
	}

	for i, snap := range snapshots {
		if i > 0 {
			if d := snap.Timestamp.Sub(snapshots[i-1].Timestamp); d > 2*expected {
				gaps++
				log.Printf("[WARN] data gap: %s between %s and %s, continuing",
					d, snapshots[i-1].Timestamp.Format(time.RFC3339), snap.Timestamp.Format(time.RFC3339))
			}
		}

		events := sim.Tick(snap)
		for j := range events {
			if err := r.recorder.RecordTrade(&events[j]); err != nil {
				log.Printf("[ERROR] record trade: %v", err)
			}
		}
		if err := r.recorder.RecordTick(&recorder.TickRecord{
			Timestamp:      snap.Timestamp,
			Price:          snap.Price,
			FearGreed:      snap.FearGreed,
			PortfolioValue: state.TotalValue(snap.Price),
			FiatBalance:    state.FiatBalance,
			OpenBaskets:    state.OpenCount(),
		}); err != nil {
			log.Printf("[ERROR] record tick: %v", err)
		}

		if i%ticksPerDay == 0 {
			log.Printf("[INFO] day %d: portfolio value %.2f, open baskets %d",
				i/ticksPerDay, state.TotalValue(snap.Price), state.OpenCount())
		}
	}

	finalPrice := snapshots[len(snapshots)-1].Price
	result := r.buildResult(periodDays, snapshots, sim, finalPrice)
	result.DataGaps = gaps

	if err := r.recorder.RecordBacktestResult(result); err != nil {
		log.Printf("[ERROR] record backtest result: %v", err)
	}
	log.Printf("[INFO] backtest completed: return %.2f%%, trades %d, win rate %.2f%%, max drawdown %.2f%%",
		result.TotalReturnPercent, result.TotalTrades, result.WinRate, result.MaxDrawdownPercent)
	return result, nil
}

func (r *Runner) buildResult(periodDays int, snapshots []model.MarketSnapshot, sim *Simulator, finalPrice float64) *model.BacktestResult {
	state := sim.State()
	m := &state.Metrics
	finalValue := state.TotalValue(finalPrice)

	return &model.BacktestResult{
		PeriodDays:            periodDays,
		StartDate:             snapshots[0].Timestamp,
		EndDate:               snapshots[len(snapshots)-1].Timestamp,
		InitialPortfolioValue: m.InitialPortfolioValue,
		FinalPortfolioValue:   finalValue,
		TotalReturn:           finalValue - m.InitialPortfolioValue,
		TotalReturnPercent:    m.TotalReturnPercent,
		TotalTrades:           m.TradeCount,
		ProfitableTrades:      m.WinCount,
		WinRate:               m.WinRate(),
		MaxDrawdown:           m.MaxDrawdown,
		MaxDrawdownPercent:    m.MaxDrawdownPercent,
		TicksProcessed:        len(snapshots),
		Trades:                sim.Trades(),
		ConfigUsed: model.BacktestConfig{
			BasketCount:            r.cfg.Trading.BasketCount,
			ProfitThresholdPercent: r.cfg.Trading.ProfitThresholdPercent,
			MinInvestmentPercent:   r.cfg.Trading.MinInvestmentPercent,
			MaxInvestmentPercent:   r.cfg.Trading.MaxInvestmentPercent,
			FearGreedThreshold:     r.cfg.Trading.FearGreedThreshold,
			BuyTheDipPercent:       r.cfg.Trading.BuyTheDipPercent,
			DipWindowHours:         r.cfg.Trading.DipWindowHours,
		},
	}
}

// SaveResult writes a backtest result next to the historical data.
func SaveResult(dir string, result *model.BacktestResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("backtest_result_%dd.json", result.PeriodDays))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}
