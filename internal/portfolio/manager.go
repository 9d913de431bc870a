package portfolio

import (
	"sync"

	"DipSentry/internal/model"
)

// Manager enforces the single-writer discipline a live run needs: every
// mutation of the portfolio state goes through Do, which serializes the
// change and persists it. The backtest core does not use it; the simulation
// loop is the sole owner there.
type Manager struct {
	mu       sync.Mutex
	state    *model.PortfolioState
	filePath string
}

// NewManager loads the persisted state or initializes a fresh one, and saves
// it so the file exists from the first cycle on.
func NewManager(filePath string, initialFiat, initialCrypto float64) (*Manager, error) {
	state, err := LoadOrInit(filePath, initialFiat, initialCrypto)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath}
	if err := SaveState(filePath, state); err != nil {
		return nil, err
	}
	return m, nil
}

// State returns the owned state. Mutations must go through Do.
func (m *Manager) State() *model.PortfolioState {
	return m.state
}

// Snapshot returns a copy of the current state for read-only reporting.
func (m *Manager) Snapshot() model.PortfolioState {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := *m.state
	snap.Baskets = append([]model.Basket(nil), m.state.Baskets...)
	return snap
}

// Do runs fn under the lock and persists the state afterwards.
func (m *Manager) Do(fn func(state *model.PortfolioState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := fn(m.state); err != nil {
		return err
	}
	return SaveState(m.filePath, m.state)
}
