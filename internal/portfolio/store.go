package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"DipSentry/internal/model"
)

// LoadState reads a portfolio state from a JSON file. A missing or corrupt
// file is an error; callers that can start fresh use LoadOrInit.
func LoadState(filePath string) (*model.PortfolioState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var state model.PortfolioState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", filePath, err)
	}
	if state.Baskets == nil {
		state.Baskets = []model.Basket{}
	}
	return &state, nil
}

// LoadOrInit returns the persisted state if the file exists, otherwise a
// fresh state with the given starting balances.
func LoadOrInit(filePath string, initialFiat, initialCrypto float64) (*model.PortfolioState, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return model.NewPortfolioState(initialFiat, initialCrypto), nil
	}
	return LoadState(filePath)
}

// SaveState writes the portfolio state to a JSON file, creating the parent
// directory if needed.
func SaveState(filePath string, state *model.PortfolioState) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
