package recorder

import "DipSentry/internal/model"

// NoopRecorder discards everything. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrade(*model.TradeEvent) error              { return nil }
func (n *NoopRecorder) RecordTick(*TickRecord) error                     { return nil }
func (n *NoopRecorder) RecordBacktestResult(*model.BacktestResult) error { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
