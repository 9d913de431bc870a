package simulator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentry/internal/marketdata"
	"DipSentry/internal/model"
)

func TestRunner_EndToEnd(t *testing.T) {
	cfg := testConfig()
	source := &marketdata.SliceSource{Data: series(
		[]float64{100, 94, 97, 96, 99},
		[]int{50, 50, 50, 50, 50},
	)}

	result, err := NewRunner(cfg, source, nil).Run(5)
	require.NoError(t, err)

	assert.Equal(t, 5, result.PeriodDays)
	assert.Equal(t, 5, result.TicksProcessed)
	assert.Equal(t, source.Data[0].Timestamp, result.StartDate)
	assert.Equal(t, source.Data[4].Timestamp, result.EndDate)
	assert.Equal(t, 1000.0, result.InitialPortfolioValue)
	assert.Equal(t, 1, result.TotalTrades)
	assert.Equal(t, 1, result.ProfitableTrades)
	assert.Equal(t, 100.0, result.WinRate)
	assert.Greater(t, result.FinalPortfolioValue, 1000.0)
	assert.InDelta(t, result.FinalPortfolioValue-1000, result.TotalReturn, 1e-9)
	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeBuy, result.Trades[0].Side)
	assert.Equal(t, model.TradeSell, result.Trades[1].Side)
	assert.Equal(t, 2, result.ConfigUsed.BasketCount)
}

func TestRunner_EmptySource(t *testing.T) {
	cfg := testConfig()
	_, err := NewRunner(cfg, &marketdata.SliceSource{}, nil).Run(30)
	assert.Error(t, err)
}

func TestRunner_CountsDataGaps(t *testing.T) {
	cfg := testConfig()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	data := []model.MarketSnapshot{
		{Timestamp: base, Price: 100, FearGreed: 50},
		{Timestamp: base.Add(time.Hour), Price: 100.5, FearGreed: 50},
		// five missing hours
		{Timestamp: base.Add(6 * time.Hour), Price: 101, FearGreed: 50},
		{Timestamp: base.Add(7 * time.Hour), Price: 101.2, FearGreed: 50},
	}

	result, err := NewRunner(cfg, &marketdata.SliceSource{Data: data}, nil).Run(1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DataGaps)
	assert.Equal(t, 4, result.TicksProcessed)
}

func TestRunner_DrawdownTracksPeakToTrough(t *testing.T) {
	cfg := testConfig()
	// Open a basket on fear at 100, then drop the price 10%: portfolio value
	// falls with the held position.
	source := &marketdata.SliceSource{Data: series(
		[]float64{100, 100, 90},
		[]int{50, 20, 50},
	)}

	result, err := NewRunner(cfg, source, nil).Run(1)
	require.NoError(t, err)

	// 80 invested at 100 is worth 72 at 90: an 8 drop from the 1000 peak.
	assert.InDelta(t, 8.0, result.MaxDrawdown, 1e-9)
	assert.InDelta(t, 0.8, result.MaxDrawdownPercent, 1e-9)
}

// Replaying the identical snapshot sequence with identical configuration
// from a fresh portfolio produces byte-identical trade logs and metrics.
func TestRunner_Deterministic(t *testing.T) {
	cfg := testConfig()
	prices := []float64{100, 96, 94, 91, 95, 99, 103, 100, 97, 102}
	fgis := []int{50, 40, 28, 15, 35, 55, 60, 45, 22, 50}

	run := func() []byte {
		source := &marketdata.SliceSource{Data: series(prices, fgis)}
		result, err := NewRunner(cfg, source, nil).Run(10)
		require.NoError(t, err)
		data, err := json.Marshal(result)
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, string(first), string(second))
}
