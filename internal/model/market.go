package model

import "time"

// MarketSnapshot is one observation of the traded pair: the price and the
// Fear & Greed index value aligned to the same timestamp. Snapshots are
// immutable and strictly ordered by timestamp, one per tick.
type MarketSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	FearGreed int       `json:"fear_greed"`
}

// FearGreedIndex is a single reading of the market sentiment index.
// Lower values mean more fear.
type FearGreedIndex struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	Timestamp      time.Time `json:"timestamp"`
}
