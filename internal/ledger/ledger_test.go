package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentry/internal/model"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestOpen_AssignsSequentialIDs(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 3, 3)

	b1, err := l.Open(100, 80, t0)
	require.NoError(t, err)
	b2, err := l.Open(95, 80, t0.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(1), b1.ID)
	assert.Equal(t, int64(2), b2.ID)
	assert.Equal(t, model.BasketOpen, b1.Status)
	assert.Equal(t, 2, l.OpenCount())
}

func TestOpen_BasketInvariants(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 1, 3)

	b, err := l.Open(94, 80, t0)
	require.NoError(t, err)

	assert.InDelta(t, 80.0/94.0, b.Quantity, 1e-12)
	assert.InDelta(t, 80, b.InvestedAmount, 1e-12)
	assert.InDelta(t, b.BuyPrice*b.Quantity, b.InvestedAmount, 1e-9)
	assert.InDelta(t, 94*1.03, b.TargetSellPrice, 1e-12)
}

func TestOpen_CapacityExceeded(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 1, 3)

	_, err := l.Open(100, 80, t0)
	require.NoError(t, err)
	require.False(t, l.CanOpenNew())

	_, err = l.Open(90, 80, t0.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 1, l.OpenCount())
}

func TestOpen_RejectsNonPositivePrice(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 1, 3)
	_, err := l.Open(0, 80, t0)
	assert.Error(t, err)
}

func TestEvaluateClosures_TargetMet(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 2, 3)

	b, err := l.Open(94, 80, t0)
	require.NoError(t, err)
	target := b.TargetSellPrice

	// Below target: nothing closes.
	assert.Empty(t, l.EvaluateClosures(target-0.01, t0.Add(time.Hour)))
	assert.Equal(t, model.BasketOpen, b.Status)

	// At target: full-lot close.
	closed := l.EvaluateClosures(target, t0.Add(2*time.Hour))
	require.Len(t, closed, 1)
	assert.Equal(t, model.BasketClosed, closed[0].Status)
	assert.Equal(t, target, closed[0].SellPrice)
	require.NotNil(t, closed[0].ClosedAt)
	assert.Equal(t, t0.Add(2*time.Hour), *closed[0].ClosedAt)
	assert.InDelta(t, closed[0].Quantity*target-80, closed[0].RealizedProfit, 1e-12)
	assert.GreaterOrEqual(t, closed[0].RealizedProfit, 80*0.03-1e-9)
	assert.Equal(t, 0, l.OpenCount())
}

func TestEvaluateClosures_AscendingIDOrder(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 3, 3)

	_, err := l.Open(90, 50, t0)
	require.NoError(t, err)
	_, err = l.Open(92, 50, t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = l.Open(94, 50, t0.Add(2*time.Hour))
	require.NoError(t, err)

	closed := l.EvaluateClosures(100, t0.Add(3*time.Hour))
	require.Len(t, closed, 3)
	for i := 1; i < len(closed); i++ {
		assert.Greater(t, closed[i].ID, closed[i-1].ID)
	}
}

func TestEvaluateClosures_ClosedIsTerminal(t *testing.T) {
	state := model.NewPortfolioState(1000, 0)
	l := New(state, 1, 3)

	_, err := l.Open(94, 80, t0)
	require.NoError(t, err)
	first := l.EvaluateClosures(100, t0.Add(time.Hour))
	require.Len(t, first, 1)
	firstClosedAt := *first[0].ClosedAt

	// A later qualifying price must not touch the closed basket again.
	again := l.EvaluateClosures(120, t0.Add(2*time.Hour))
	assert.Empty(t, again)
	assert.Equal(t, firstClosedAt, *state.Baskets[0].ClosedAt)
	assert.Equal(t, 100.0, state.Baskets[0].SellPrice)
}
