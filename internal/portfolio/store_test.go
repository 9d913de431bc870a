package portfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentry/internal/model"
)

func sampleState() *model.PortfolioState {
	opened := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	closed := opened.Add(26 * time.Hour)
	state := model.NewPortfolioState(1000, 0.5)
	state.FiatBalance = 845.2
	state.TotalInvested = 160
	state.TotalProfit = 2.9
	state.NextBasketID = 3
	state.LastUpdate = closed
	state.Metrics = model.PerformanceMetrics{
		InitialPortfolioValue: 1000,
		PeakPortfolioValue:    1012.4,
		TotalReturnPercent:    0.84,
		MaxDrawdown:           14.1,
		MaxDrawdownPercent:    1.39,
		TradeCount:            1,
		WinCount:              1,
	}
	state.Baskets = []model.Basket{
		{
			ID: 1, BuyPrice: 94, Quantity: 80.0 / 94, InvestedAmount: 80,
			TargetSellPrice: 94 * 1.03, OpenedAt: opened, Status: model.BasketClosed,
			ClosedAt: &closed, SellPrice: 97, RealizedProfit: 80.0 / 94 * 97 - 80,
		},
		{
			ID: 2, BuyPrice: 95.5, Quantity: 80.0 / 95.5, InvestedAmount: 80,
			TargetSellPrice: 95.5 * 1.03, OpenedAt: opened.Add(time.Hour), Status: model.BasketOpen,
		},
	}
	return state
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "bot_state.json")
	state := sampleState()

	require.NoError(t, SaveState(path, state))
	loaded, err := LoadState(path)
	require.NoError(t, err)

	assert.Equal(t, state, loaded)
}

func TestLoadOrInit_FreshState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	state, err := LoadOrInit(path, 1000, 0.25)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, state.FiatBalance)
	assert.Equal(t, 0.25, state.CryptoBalance)
	assert.Empty(t, state.Baskets)
	assert.Equal(t, int64(1), state.NextBasketID)
}

func TestLoadState_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestManager_DoPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 500, 0)
	require.NoError(t, err)

	err = m.Do(func(s *model.PortfolioState) error {
		s.FiatBalance -= 100
		s.TotalInvested += 100
		return nil
	})
	require.NoError(t, err)

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, 400.0, loaded.FiatBalance)
	assert.Equal(t, 100.0, loaded.TotalInvested)
}

func TestManager_SnapshotIsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 500, 0)
	require.NoError(t, err)

	snap := m.Snapshot()
	snap.FiatBalance = 0
	assert.Equal(t, 500.0, m.State().FiatBalance)
}
